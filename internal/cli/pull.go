package cli

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/store/jsonstore"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

func newPullCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Save the current feed to a local snapshot file",
		Long: `pull fetches the ticket feed once and writes the normalized tickets to a
JSON file that --file can read later, e.g. to work offline or to watch
while editing.`,
		Example: `  ticketboard pull -o tickets.json
  ticketboard --file tickets.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return usagef("pull needs an output file (-o)")
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

			if err := jsonstore.Save(out, tickets); err != nil {
				return err
			}
			size := ""
			if fi, err := os.Stat(out); err == nil {
				size = " (" + humanize.Bytes(uint64(fi.Size())) + ")"
			}
			ui.OK(a.stdout, humanize.Comma(int64(len(tickets)))+" tickets saved to "+out+size)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "snapshot file to write")
	return cmd
}
