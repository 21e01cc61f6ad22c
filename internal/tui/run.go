package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/ticketboard/internal/source"
)

// Run starts the board on the alternate screen and blocks until the user
// quits. When watch names a file, changes to it trigger a re-fetch.
func Run(ctx context.Context, opts Options, watch string) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch != "" {
		w, err := source.NewWatcher(watch, func() { p.Send(ReloadMsg{}) }, opts.Logger)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if opts.Debounce > 0 {
			w.SetDebounce(opts.Debounce)
		}
		w.Start(ctx)
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
