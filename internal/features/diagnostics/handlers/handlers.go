package handlers

import (
	"context"
	"net/http"

	"newswire/internal/core"
	"newswire/internal/features/diagnostics/models"
)

// Prober produces a diagnostics report
type Prober interface {
	Probe(ctx context.Context) *models.Report
}

// Handlers contains the diagnostics HTTP handlers
type Handlers struct {
	logger *core.Logger
	prober Prober
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, prober Prober) *Handlers {
	return &Handlers{
		logger: logger,
		prober: prober,
	}
}

// GetReport handles GET /test. It always answers 200.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	report := h.prober.Probe(r.Context())
	if err := core.WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to write diagnostics response", "error", err)
	}
}
