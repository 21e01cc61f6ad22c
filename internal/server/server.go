// Package server exposes the grouped board over a read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/idilsaglam/ticketboard/internal/logging"
	"github.com/idilsaglam/ticketboard/internal/model"
	"github.com/idilsaglam/ticketboard/internal/source"
)

const shutdownTimeout = 10 * time.Second

const (
	codeInvalidField     = "invalid_field"
	codeUpstreamFailed   = "upstream_failed"
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codeUnknownGroup     = "unknown_group"
)

// Server is the HTTP API server
type Server struct {
	src     source.Source
	groupBy model.GroupField
	sortBy  model.SortField
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New creates a server answering from src. groupBy and sortBy are used
// when a request does not name its own.
func New(src source.Source, groupBy model.GroupField, sortBy model.SortField, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		src:     src,
		groupBy: groupBy,
		sortBy:  sortBy,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.healthHandler())
	s.mux.HandleFunc("/api/board", s.boardHandler())
	s.mux.HandleFunc("/api/tickets", s.ticketsHandler())
	s.mux.HandleFunc("/", s.notFoundHandler())
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return requestLogger(s.mux, s.logger)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving board api", "addr", addr, "source", s.src.Describe())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("board api stopped")
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}
