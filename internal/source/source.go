// Package source fetches the raw ticket list the board is built from.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/idilsaglam/ticketboard/internal/config"
	"github.com/idilsaglam/ticketboard/internal/model"
	"github.com/idilsaglam/ticketboard/internal/store/jsonstore"
)

// ErrNoEndpoint is returned when neither an endpoint nor a file is set.
var ErrNoEndpoint = errors.New("no ticket endpoint configured")

// Source yields the current ticket list.
type Source interface {
	Fetch(ctx context.Context) ([]model.Ticket, error)
	// Describe names the source for status lines and logs.
	Describe() string
}

// New picks a file source when a file is configured and the HTTP feed
// otherwise. token may be empty.
func New(cfg config.SourceConfig, token string, logger *slog.Logger) (Source, error) {
	if cfg.File != "" {
		return &File{Path: cfg.File}, nil
	}
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewHTTP(cfg.Endpoint, token, &http.Client{Timeout: timeout}, logger), nil
}

// File reads tickets from a local snapshot.
type File struct {
	Path string
}

func (f *File) Fetch(ctx context.Context) ([]model.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tickets, err := jsonstore.Load(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return tickets, nil
}

func (f *File) Describe() string { return f.Path }
