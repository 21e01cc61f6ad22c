package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Group   key.Binding
	Sort    key.Binding
	Refresh key.Binding
	Left    key.Binding
	Right   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Group:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group by")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Group, k.Sort, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Group, k.Sort, k.Refresh},
		{k.Left, k.Right},
		{k.Help, k.Quit},
	}
}
