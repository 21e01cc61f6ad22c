package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/ticketboard/internal/tui"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	var watch bool

	root := &cobra.Command{
		Use:   "ticketboard",
		Short: "Kanban board for a remote ticket feed",
		Long: `ticketboard fetches tickets from an HTTP endpoint (or a local snapshot),
groups them by status, user or priority, sorts each group by priority or
title, and shows the result as a multi-column board.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd, true); err != nil {
				return err
			}
			defer a.close()

			src, err := a.source()
			if err != nil {
				return err
			}
			watchPath := ""
			if watch || a.cfg.Source.Watch {
				if a.cfg.Source.File == "" {
					return usagef("--watch needs a file source")
				}
				watchPath = a.cfg.Source.File
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return tui.Run(ctx, tui.Options{
				Source:      src,
				GroupBy:     a.cfg.GroupBy(),
				SortBy:      a.cfg.SortBy(),
				ColumnWidth: a.cfg.UI.ColumnWidth,
				Logger:      a.logger,
				Debounce:    a.cfg.Source.Debounce.Duration,
			}, watchPath)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetContext(context.Background())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file path (default ~/.config/ticketboard/config.toml)")
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "ticket feed URL")
	pf.StringVar(&a.flags.file, "file", "", "read tickets from a local JSON snapshot instead of the feed")
	pf.StringVarP(&a.flags.groupBy, "group-by", "g", "", "group field: status, user or priority")
	pf.StringVarP(&a.flags.sortBy, "sort-by", "s", "", "sort field: priority or title")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colors")
	root.Flags().BoolVarP(&watch, "watch", "w", false, "re-fetch when the --file snapshot changes")

	root.AddCommand(
		newShowCmd(a),
		newPullCmd(a),
		newServeCmd(a),
		newAuthCmd(a),
	)
	return root
}
