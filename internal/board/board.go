// Package board turns a flat ticket list into the grouped, sorted model the
// board renders.
package board

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/idilsaglam/ticketboard/internal/model"
)

// Group is one board column.
type Group struct {
	Key     string         `json:"key" yaml:"key"`
	Tickets []model.Ticket `json:"tickets" yaml:"tickets"`
}

// Result holds the groups in first-occurrence order of their keys.
type Result struct {
	Groups []Group
}

// GroupAndSort partitions tickets by groupBy and orders every group by
// sortBy. Groups appear in the order their key is first seen. The input is
// never modified.
//
// Priority sorts descending with missing priorities last. Title sorts
// ascending under the root collation. Both sorts are stable. Any other sort
// field keeps input order.
func GroupAndSort(tickets []model.Ticket, groupBy model.GroupField, sortBy model.SortField) Result {
	var res Result
	index := make(map[string]int)
	for _, t := range tickets {
		key := t.Field(groupBy)
		i, ok := index[key]
		if !ok {
			i = len(res.Groups)
			index[key] = i
			res.Groups = append(res.Groups, Group{Key: key})
		}
		res.Groups[i].Tickets = append(res.Groups[i].Tickets, t)
	}

	less := comparator(sortBy)
	if less == nil {
		return res
	}
	for i := range res.Groups {
		slices.SortStableFunc(res.Groups[i].Tickets, less)
	}
	return res
}

func comparator(sortBy model.SortField) func(a, b model.Ticket) int {
	switch sortBy {
	case model.SortByPriority:
		return func(a, b model.Ticket) int {
			return cmp.Compare(b.PriorityOr(math.Inf(-1)), a.PriorityOr(math.Inf(-1)))
		}
	case model.SortByTitle:
		// collators keep scratch buffers, so each call gets its own
		c := collate.New(language.Und)
		return func(a, b model.Ticket) int {
			return c.CompareString(a.Title, b.Title)
		}
	}
	return nil
}

// Keys returns the group keys in board order.
func (r Result) Keys() []string {
	keys := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		keys[i] = g.Key
	}
	return keys
}

// Get returns the tickets of the group with the given key.
func (r Result) Get(key string) ([]model.Ticket, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g.Tickets, true
		}
	}
	return nil, false
}

// Only narrows the result to the single group with the given key.
func (r Result) Only(key string) (Result, bool) {
	tickets, ok := r.Get(key)
	if !ok {
		return Result{}, false
	}
	return Result{Groups: []Group{{Key: key, Tickets: tickets}}}, true
}

// Len returns the number of tickets across all groups.
func (r Result) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Tickets)
	}
	return n
}

// Flatten concatenates the groups in board order.
func (r Result) Flatten() []model.Ticket {
	out := make([]model.Ticket, 0, r.Len())
	for _, g := range r.Groups {
		out = append(out, g.Tickets...)
	}
	return out
}
