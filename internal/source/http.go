package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/ticketboard/internal/logging"
	"github.com/idilsaglam/ticketboard/internal/model"
)

// maxBody caps how much of a response is read.
const maxBody = 32 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// HTTP fetches tickets with a GET on a fixed endpoint.
type HTTP struct {
	url    string
	token  string
	client *http.Client
	logger *slog.Logger
}

// NewHTTP creates an HTTP source. A nil client uses http.DefaultClient.
func NewHTTP(url, token string, client *http.Client, logger *slog.Logger) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTTP{url: url, token: token, client: client, logger: logger}
}

func (h *HTTP) Describe() string { return h.url }

func (h *HTTP) Fetch(ctx context.Context) ([]model.Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("ticket fetch failed", "url", h.url, "error", err)
		return nil, fmt.Errorf("get %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		h.logger.Warn("ticket fetch rejected", "url", h.url, "status", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	tickets, err := model.DecodeTickets(body)
	if err != nil {
		h.logger.Warn("ticket feed undecodable", "url", h.url, "error", err)
		return nil, err
	}

	h.logger.Info("tickets fetched",
		"url", h.url,
		"count", len(tickets),
		"size", humanize.Bytes(uint64(len(body))),
		"duration", time.Since(start),
	)
	return tickets, nil
}
