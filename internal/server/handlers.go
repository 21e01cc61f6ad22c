package server

import (
	"fmt"
	"net/http"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/model"
)

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// boardHandler serves GET /api/board?group_by=&sort_by=&group=
func (s *Server) boardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		groupBy, sortBy := s.groupBy, s.sortBy
		q := r.URL.Query()
		if v := q.Get("group_by"); v != "" {
			f, err := model.ParseGroupField(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidField, err.Error())
				return
			}
			groupBy = f
		}
		if v := q.Get("sort_by"); v != "" {
			f, err := model.ParseSortField(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidField, err.Error())
				return
			}
			sortBy = f
		}

		tickets, ok := s.fetch(w, r)
		if !ok {
			return
		}
		res := board.GroupAndSort(tickets, groupBy, sortBy)
		if key := q.Get("group"); key != "" {
			only, ok := res.Only(key)
			if !ok {
				writeError(w, http.StatusNotFound, codeUnknownGroup, fmt.Sprintf("no group %q", key))
				return
			}
			res = only
		}
		writeJSON(w, res)
	}
}

// ticketsHandler serves GET /api/tickets, the normalized feed.
func (s *Server) ticketsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		tickets, ok := s.fetch(w, r)
		if !ok {
			return
		}
		writeJSON(w, tickets)
	}
}

func (s *Server) notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	}
}

// fetch loads tickets for one request. On failure it has already written
// the response.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) ([]model.Ticket, bool) {
	tickets, err := s.src.Fetch(r.Context())
	if err != nil {
		s.logger.Error("ticket fetch failed", "source", s.src.Describe(), "error", err)
		writeError(w, http.StatusBadGateway, codeUpstreamFailed, board.FailureMessage)
		return nil, false
	}
	return tickets, true
}
