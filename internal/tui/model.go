// Package tui is the interactive ticket board.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/logging"
	"github.com/idilsaglam/ticketboard/internal/model"
	"github.com/idilsaglam/ticketboard/internal/source"
	"github.com/idilsaglam/ticketboard/internal/ui"
)

// Options holds the initial board configuration.
type Options struct {
	Source      source.Source
	GroupBy     model.GroupField
	SortBy      model.SortField
	ColumnWidth int
	Logger      *slog.Logger

	// Debounce overrides how long the file watcher waits for writes to settle.
	Debounce time.Duration
}

// Model is the bubbletea model of the board. Every change to the tickets,
// the grouping field or the sort field rebuilds result from state.
type Model struct {
	src    source.Source
	logger *slog.Logger

	state    board.State
	groupBy  model.GroupField
	sortBy   model.SortField
	result   board.Result
	columns  []string
	colWidth int

	// UI state
	width    int
	height   int
	offset   int
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	fetching bool

	// seq identifies the latest fetch; older responses are dropped.
	seq    int
	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time
}

// ReloadMsg asks the board to fetch tickets again.
type ReloadMsg struct{}

type fetchedMsg struct {
	seq     int
	tickets []model.Ticket
	at      time.Time
}

type fetchFailedMsg struct {
	seq int
	err error
}

// New creates a board in the loading state.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	colWidth := opts.ColumnWidth
	if colWidth < ui.MinColumnWidth {
		colWidth = 30
	}
	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		src:      opts.Source,
		logger:   logger,
		state:    board.Loading(),
		groupBy:  opts.GroupBy,
		sortBy:   opts.SortBy,
		colWidth: colWidth,
		width:    80,
		height:   24,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.Current().Accent)),
		help:     help.New(),
		keys:     defaultKeys(),
		fetching: true,
		seq:      1,
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	src, ctx, seq, now := m.src, m.ctx, m.seq, m.now
	return func() tea.Msg {
		tickets, err := src.Fetch(ctx)
		if err != nil {
			return fetchFailedMsg{seq: seq, err: err}
		}
		return fetchedMsg{seq: seq, tickets: tickets, at: now()}
	}
}

// refetch starts a new fetch and invalidates any in flight.
func (m Model) refetch() (Model, tea.Cmd) {
	m.seq++
	m.fetching = true
	return m, tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *Model) regroup() {
	m.result = m.state.Group(m.groupBy, m.sortBy)
	m.columns = ui.Columns(m.result, m.colWidth)
	if m.offset > len(m.columns)-1 {
		m.offset = max(len(m.columns)-1, 0)
	}
}

// State returns the current fetch state.
func (m Model) State() board.State { return m.state }

// Result returns the grouped tickets currently on screen.
func (m Model) Result() board.Result { return m.result }

// Close cancels any fetch still in flight.
func (m Model) Close() { m.cancel() }
