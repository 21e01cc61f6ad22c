package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MissingKey is the group key for tickets that carry no value for the
// grouping field.
const MissingKey = "(none)"

// Ticket is the domain model for a board entry.
type Ticket struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Status   string   `json:"status,omitempty" yaml:"status,omitempty"`
	User     string   `json:"user,omitempty" yaml:"user,omitempty"`
	UserID   string   `json:"userId,omitempty" yaml:"userId,omitempty"`
	Priority *float64 `json:"priority,omitempty" yaml:"priority,omitempty"`
	Tags     []string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// HasPriority reports whether the feed supplied a numeric priority.
func (t Ticket) HasPriority() bool { return t.Priority != nil }

// PriorityOr returns the ticket priority, or def when it is missing.
func (t Ticket) PriorityOr(def float64) float64 {
	if t.Priority == nil {
		return def
	}
	return *t.Priority
}

// Field returns the string form of a grouping field, or MissingKey.
func (t Ticket) Field(f GroupField) string {
	var v string
	switch f {
	case GroupByStatus:
		v = t.Status
	case GroupByUser:
		v = t.User
	case GroupByPriority:
		if t.Priority != nil {
			v = FormatPriority(*t.Priority)
		}
	}
	if strings.TrimSpace(v) == "" {
		return MissingKey
	}
	return v
}

// FormatPriority renders a priority without trailing zeros, so 3 stays "3"
// and 3.5 stays "3.5".
func FormatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// wireTicket mirrors the loose JSON the feed produces. id may be a string
// or a number and priority may be missing or of the wrong type.
type wireTicket struct {
	ID       json.RawMessage `json:"id"`
	Title    any             `json:"title"`
	Status   any             `json:"status"`
	User     any             `json:"user"`
	UserID   json.RawMessage `json:"userId"`
	Priority any             `json:"priority"`
	Tags     any             `json:"tag"`
}

// UnmarshalJSON accepts loosely typed tickets. Fields of an unexpected type
// are treated as missing instead of failing the whole payload.
func (t *Ticket) UnmarshalJSON(b []byte) error {
	var w wireTicket
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Ticket{
		ID:     scalarString(w.ID),
		Title:  asString(w.Title),
		Status: asString(w.Status),
		User:   asString(w.User),
		UserID: scalarString(w.UserID),
	}
	if n, ok := w.Priority.(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		t.Priority = &n
	}
	switch tags := w.Tags.(type) {
	case string:
		t.Tags = []string{tags}
	case []any:
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				t.Tags = append(t.Tags, s)
			}
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// scalarString renders a JSON string or number as a plain string.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
