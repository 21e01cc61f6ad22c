package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

func newShowCmd(a *app) *cobra.Command {
	var format, group string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board once and exit",
		Example: `  ticketboard show
  ticketboard show -g user -s title
  ticketboard show --format json
  ticketboard show -g priority --group 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return usagef("unknown format %q (want text, json or yaml)", format)
			}
			if err := a.load(cmd, false); err != nil {
				return err
			}
			src, err := a.source()
			if err != nil {
				return err
			}

			ctx, cancel := a.fetchContext(cmd.Context())
			defer cancel()
			tickets, err := src.Fetch(ctx)
			if err != nil {
				a.logger.Error("ticket fetch failed", "source", src.Describe(), "error", err)
				ui.Fail(a.stderr, board.FailureMessage)
				return errReported
			}

			res := board.GroupAndSort(tickets, a.cfg.GroupBy(), a.cfg.SortBy())
			if group != "" {
				only, ok := res.Only(group)
				if !ok {
					return fmt.Errorf("no group %q on the board (groups: %s)", group, strings.Join(res.Keys(), ", "))
				}
				res = only
			}
			switch format {
			case "json":
				return writeJSON(a.stdout, res)
			case "yaml":
				return writeYAML(a.stdout, res)
			}
			printBoard(a, res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&group, "group", "", "print only the group with this key")
	return cmd
}

func printBoard(a *app, res board.Result) {
	t := ui.Current()
	w, _ := widthHeight(a.stdout)

	fmt.Fprintln(a.stdout, t.Title.Render("Kanban Tickets Board"))
	fmt.Fprintln(a.stdout, ui.Controls(a.cfg.GroupBy(), a.cfg.SortBy()))
	fmt.Fprintln(a.stdout)
	if len(res.Groups) == 0 {
		fmt.Fprintln(a.stdout, t.Muted.Render("No tickets."))
		return
	}
	fmt.Fprintln(a.stdout, ui.Wrap(ui.Columns(res, a.cfg.UI.ColumnWidth), w))
	fmt.Fprintln(a.stdout, t.Muted.Render(fmt.Sprintf("%d tickets in %d groups", res.Len(), len(res.Groups))))
}

func writeJSON(w io.Writer, res board.Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeYAML(w io.Writer, res board.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// widthHeight returns the terminal size behind w, or 80x24 when w is not
// a terminal.
func widthHeight(w io.Writer) (int, int) {
	width, height := 80, 24
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = tw, th
		}
	}
	return width, height
}
