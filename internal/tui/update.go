package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/ticketboard/internal/board"
)

// Update handles messages and key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReloadMsg:
		m.logger.Debug("reload requested")
		return m.refetch()

	case fetchedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.fetching = false
		m.state = board.Ready(msg.tickets, msg.at)
		m.regroup()
		m.logger.Info("board ready", "tickets", len(msg.tickets), "groups", len(m.result.Groups))
		return m, nil

	case fetchFailedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.fetching = false
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.state = board.Failed(msg.err)
		m.regroup()
		m.logger.Error("ticket fetch failed", "source", m.describeSource(), "error", msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Group):
		m.groupBy = m.groupBy.Next()
		m.offset = 0
		m.regroup()
		m.logger.Debug("group field changed", "group_by", m.groupBy)

	case key.Matches(msg, m.keys.Sort):
		m.sortBy = m.sortBy.Next()
		m.regroup()
		m.logger.Debug("sort field changed", "sort_by", m.sortBy)

	case key.Matches(msg, m.keys.Refresh):
		if m.fetching {
			return m, nil
		}
		return m.refetch()

	case key.Matches(msg, m.keys.Left):
		if m.offset > 0 {
			m.offset--
		}

	case key.Matches(msg, m.keys.Right):
		if m.offset < len(m.columns)-1 {
			m.offset++
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) describeSource() string {
	if m.src == nil {
		return ""
	}
	return m.src.Describe()
}
