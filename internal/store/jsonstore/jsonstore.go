package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/ticketboard/internal/model"
)

// JSON snapshot of a ticket feed. Single file, human-readable, portable.
// Load accepts every payload shape the remote feed does; Save always writes
// a plain array.

func Load(path string) ([]model.Ticket, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	tickets, err := model.DecodeTickets(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tickets, nil
}

func Save(path string, tickets []model.Ticket) error {
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	b, err := json.MarshalIndent(tickets, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
