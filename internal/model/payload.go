package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// payload is the object form of the feed: {"tickets": [...], "users": [...]}.
type payload struct {
	Tickets json.RawMessage `json:"tickets"`
	Users   []struct {
		ID   json.RawMessage `json:"id"`
		Name string          `json:"name"`
	} `json:"users"`
}

// DecodeTickets normalizes a feed body into a ticket list.
//
// A JSON array is taken as the list itself. An object contributes its
// "tickets" array, and its "users" array is used to resolve userId into a
// display name. Anything else decodes to an empty list. Only malformed
// JSON is an error.
func DecodeTickets(data []byte) ([]Ticket, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("decode tickets: malformed json")
	}
	switch data[0] {
	case '[':
		tickets, err := decodeList(data)
		if err != nil {
			return nil, err
		}
		return resolveUsers(tickets, nil), nil
	case '{':
		var p payload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode tickets: %w", err)
		}
		raw := bytes.TrimSpace(p.Tickets)
		if len(raw) == 0 || raw[0] != '[' {
			return []Ticket{}, nil
		}
		tickets, err := decodeList(raw)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(p.Users))
		for _, u := range p.Users {
			names[scalarString(u.ID)] = u.Name
		}
		return resolveUsers(tickets, names), nil
	default:
		return []Ticket{}, nil
	}
}

// decodeList decodes a JSON array of tickets. Entries that are not objects
// are skipped.
func decodeList(data []byte) ([]Ticket, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	tickets := make([]Ticket, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var t Ticket
		if err := json.Unmarshal(item, &t); err != nil {
			return nil, fmt.Errorf("decode tickets: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func resolveUsers(tickets []Ticket, names map[string]string) []Ticket {
	if tickets == nil {
		return []Ticket{}
	}
	for i := range tickets {
		t := &tickets[i]
		if t.User != "" || t.UserID == "" {
			continue
		}
		if name, ok := names[t.UserID]; ok && name != "" {
			t.User = name
		} else {
			t.User = t.UserID
		}
	}
	return tickets
}
