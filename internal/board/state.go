package board

import (
	"time"

	"github.com/idilsaglam/ticketboard/internal/model"
)

// FailureMessage is the only text shown to the user when tickets cannot be
// fetched, whatever the cause.
const FailureMessage = "Failed to fetch tickets. Please try again later."

// Phase is the lifecycle of a ticket fetch.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State is an immutable snapshot of the fetched data. Only a Ready state
// carries tickets; a Failed state keeps the cause for logs and a static
// message for display.
type State struct {
	Phase     Phase
	Tickets   []model.Ticket
	FetchedAt time.Time
	Message   string
	Err       error
}

// Loading is the state before the first response arrives.
func Loading() State { return State{Phase: PhaseLoading} }

// Ready wraps a successful fetch.
func Ready(tickets []model.Ticket, at time.Time) State {
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return State{Phase: PhaseReady, Tickets: tickets, FetchedAt: at}
}

// Failed wraps a fetch error. Partial data is discarded.
func Failed(err error) State {
	return State{Phase: PhaseFailed, Message: FailureMessage, Err: err}
}

// Group runs GroupAndSort over the state's tickets. Non-ready states yield
// an empty result.
func (s State) Group(groupBy model.GroupField, sortBy model.SortField) Result {
	if s.Phase != PhaseReady {
		return Result{}
	}
	return GroupAndSort(s.Tickets, groupBy, sortBy)
}
