package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

// View renders the board
func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("Kanban Tickets Board"))
	b.WriteString("\n")
	b.WriteString(ui.Controls(m.groupBy, m.sortBy))
	b.WriteString("\n\n")

	switch m.state.Phase {
	case board.PhaseLoading:
		b.WriteString(m.spinner.View() + " Loading...")
	case board.PhaseFailed:
		b.WriteString(t.Error.Render(m.state.Message))
	case board.PhaseReady:
		if len(m.columns) == 0 {
			b.WriteString(t.Muted.Render("No tickets."))
		} else {
			b.WriteString(ui.Row(m.columns, m.width, m.offset))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	t := ui.Current()
	var parts []string

	if m.state.Phase == board.PhaseReady {
		parts = append(parts, fmt.Sprintf("%d tickets in %d groups", m.result.Len(), len(m.result.Groups)))
		if n := len(m.columns); n > 0 {
			visible := ui.VisibleColumns(m.colWidth, m.width)
			last := min(m.offset+visible, n)
			parts = append(parts, fmt.Sprintf("columns %d-%d of %d", m.offset+1, last, n))
		}
		parts = append(parts, "updated "+humanize.Time(m.state.FetchedAt))
	}
	if m.fetching && m.state.Phase != board.PhaseLoading {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	if src := m.describeSource(); src != "" {
		parts = append(parts, src)
	}
	return t.Muted.Render(strings.Join(parts, " · "))
}
