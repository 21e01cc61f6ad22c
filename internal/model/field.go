package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a group or sort field is not one of the
// supported names.
var ErrUnknownField = errors.New("unknown field")

// GroupField names the ticket field used to partition the board.
type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByUser     GroupField = "user"
	GroupByPriority GroupField = "priority"
)

// GroupFields lists the grouping fields in control order.
var GroupFields = []GroupField{GroupByStatus, GroupByUser, GroupByPriority}

// SortField names the ticket field used to order each group.
type SortField string

const (
	SortByPriority SortField = "priority"
	SortByTitle    SortField = "title"
)

// SortFields lists the sort fields in control order.
var SortFields = []SortField{SortByPriority, SortByTitle}

// ParseGroupField validates a user supplied grouping field.
func ParseGroupField(s string) (GroupField, error) {
	f := GroupField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range GroupFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("group by %q: %w (want status, user or priority)", s, ErrUnknownField)
}

// ParseSortField validates a user supplied sort field.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("sort by %q: %w (want priority or title)", s, ErrUnknownField)
}

// Next returns the following grouping field, wrapping around.
func (f GroupField) Next() GroupField {
	for i, known := range GroupFields {
		if known == f {
			return GroupFields[(i+1)%len(GroupFields)]
		}
	}
	return GroupFields[0]
}

// Next returns the following sort field, wrapping around.
func (f SortField) Next() SortField {
	for i, known := range SortFields {
		if known == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}
