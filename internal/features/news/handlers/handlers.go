package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
)

// Aggregator is the part of the aggregator service the handlers need
type Aggregator interface {
	Aggregate(ctx context.Context, limit int) *models.NewsResult
}

// Handlers contains the news feature HTTP handlers
type Handlers struct {
	logger       *core.Logger
	aggregator   Aggregator
	defaultLimit int
	maxLimit     int
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, aggregator Aggregator, defaultLimit, maxLimit int) *Handlers {
	return &Handlers{
		logger:       logger,
		aggregator:   aggregator,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// GetNews handles GET /api/news?limit=<n>. A missing limit uses the default;
// a limit above the configured maximum is clamped to it before it is used as
// both the per-feed cap and the final truncation bound. Non-integer or
// negative values are rejected with 400.
func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	limit, err := h.parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.logger.WithContext(r.Context()).Debug("Rejected news request", "error", err)
		core.HandleError(w, err)
		return
	}

	result := h.aggregator.Aggregate(r.Context(), limit)
	if err := core.WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to write news response", "error", err)
	}
}

func (h *Handlers) parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError("limit must be an integer", err)
	}
	if limit < 0 {
		return 0, core.NewValidationError("limit must not be negative", nil)
	}

	return min(limit, h.maxLimit), nil
}
