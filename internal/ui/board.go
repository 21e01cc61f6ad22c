package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/model"
)

// MinColumnWidth is the narrowest column a card still fits in.
const MinColumnWidth = 16

const columnGap = 1

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	t := Current()
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Controls renders the two selection controls with the active value marked.
func Controls(groupBy model.GroupField, sortBy model.SortField) string {
	t := Current()
	opts := func(names []string, active string) string {
		parts := make([]string, len(names))
		for i, n := range names {
			if n == active {
				parts[i] = t.Selected.Render(" " + n + " ")
			} else {
				parts[i] = t.Muted.Render(" " + n + " ")
			}
		}
		return strings.Join(parts, "")
	}
	groups := make([]string, len(model.GroupFields))
	for i, f := range model.GroupFields {
		groups[i] = string(f)
	}
	sorts := make([]string, len(model.SortFields))
	for i, f := range model.SortFields {
		sorts[i] = string(f)
	}
	return t.Accent.Render("Group by:") + " " + opts(groups, string(groupBy)) +
		"   " + t.Accent.Render("Sort by:") + " " + opts(sorts, string(sortBy))
}

// Columns renders one column per group, in result order, each width cells
// wide including its border.
func Columns(res board.Result, width int) []string {
	if width < MinColumnWidth {
		width = MinColumnWidth
	}
	t := Current()
	total := res.Len()
	inner := width - 4 // column border + padding

	colStyle := lipgloss.NewStyle().
		Border(t.ColumnBorder).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(width - 2)
	cardStyle := lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(inner - 2)

	cols := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		lines := []string{
			t.Title.Render(truncate(g.Key, inner-6)) + " " + t.Muted.Render(fmt.Sprintf("(%d)", len(g.Tickets))),
			t.Muted.Render(ProgressBar(len(g.Tickets), total, inner-5)),
		}
		for _, ticket := range g.Tickets {
			lines = append(lines, cardStyle.Render(card(ticket, inner-4)))
		}
		cols = append(cols, colStyle.Render(strings.Join(lines, "\n")))
	}
	return cols
}

func card(ticket model.Ticket, width int) string {
	t := Current()
	title := ticket.Title
	if title == "" {
		title = "(untitled)"
	}
	priority := "-"
	if ticket.HasPriority() {
		priority = model.FormatPriority(*ticket.Priority)
	}
	lines := []string{
		t.Title.Render(truncate(title, width)),
		t.Muted.Render(truncate(ticket.ID, width)),
		truncate("Priority: "+priority, width),
		truncate("Status: "+orMissing(ticket.Status), width),
		truncate("User: "+orMissing(ticket.User), width),
	}
	return strings.Join(lines, "\n")
}

func orMissing(s string) string {
	if s == "" {
		return model.MissingKey
	}
	return s
}

// VisibleColumns returns how many columns of the given rendered width fit
// in a terminal width. At least one column is always shown.
func VisibleColumns(colWidth, termWidth int) int {
	if colWidth <= 0 {
		return 1
	}
	n := (termWidth + columnGap) / (colWidth + columnGap)
	if n < 1 {
		n = 1
	}
	return n
}

// Row joins the columns that fit in width, starting at offset.
func Row(cols []string, width, offset int) string {
	if len(cols) == 0 {
		return ""
	}
	n := VisibleColumns(lipgloss.Width(cols[0]), width)
	if offset > len(cols)-1 {
		offset = len(cols) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + n
	if end > len(cols) {
		end = len(cols)
	}
	return join(cols[offset:end])
}

// Wrap lays out every column, starting a new row whenever width runs out.
func Wrap(cols []string, width int) string {
	if len(cols) == 0 {
		return ""
	}
	n := VisibleColumns(lipgloss.Width(cols[0]), width)
	var rows []string
	for start := 0; start < len(cols); start += n {
		end := start + n
		if end > len(cols) {
			end = len(cols)
		}
		rows = append(rows, join(cols[start:end]))
	}
	return strings.Join(rows, "\n")
}

func join(cols []string) string {
	parts := make([]string, 0, 2*len(cols))
	gap := strings.Repeat(" ", columnGap)
	for i, c := range cols {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
