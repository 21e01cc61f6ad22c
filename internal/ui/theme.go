package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected                                      lipgloss.Style

	ColumnBorder, CardBorder lipgloss.Border
	BorderColor              lipgloss.TerminalColor

	SymOK, SymFail    string
	BarFull, BarEmpty string
}

var current = classic()

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		ColumnBorder: lipgloss.RoundedBorder(),
		CardBorder:   lipgloss.NormalBorder(),
		BorderColor:  lipgloss.Color("8"),
		SymOK:        "✔", SymFail: "✖",
		BarFull: "█", BarEmpty: "░",
	}
}

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
		t.ColumnBorder = lipgloss.ThickBorder()
		t.CardBorder = lipgloss.RoundedBorder()
		t.BorderColor = lipgloss.Color("13")
		current = t
	case "mono":
		DisableColor()
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Selected:     lipgloss.NewStyle().Underline(true),
			ColumnBorder: asciiBorder,
			CardBorder:   asciiBorder,
			BorderColor:  lipgloss.NoColor{},
			SymOK:        "ok", SymFail: "error:",
			BarFull: "#", BarEmpty: "-",
		}
	default: // classic
		current = classic()
	}
}

// DisableColor forces plain output, e.g. for NO_COLOR or piped output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Expose what renderers need
func Current() Theme { return current }
