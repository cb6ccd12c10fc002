package handlers

import (
	"net/http"

	"newswire/internal/core"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// SystemHandler serves the endpoints that belong to no feature
type SystemHandler struct {
	logger   *core.Logger
	registry *core.Registry
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(logger *core.Logger, registry *core.Registry) *SystemHandler {
	return &SystemHandler{
		logger:   logger,
		registry: registry,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status   string                        `json:"status"`
	Service  string                        `json:"service"`
	Version  string                        `json:"version"`
	Features map[string]core.FeatureStatus `json:"features"`
}

// RootHandler returns the static greeting
func (h *SystemHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, messageResponse{Message: "Hello from the newswire backend!"})
}

// HelloHandler returns the API greeting
func (h *SystemHandler) HelloHandler(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, messageResponse{Message: "Hello from the backend API!"})
}

// HealthCheckHandler provides a health check endpoint
func (h *SystemHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, healthResponse{
		Status:   "ok",
		Service:  "newswire",
		Version:  Version,
		Features: h.registry.GetFeatureStatus(),
	})
}

// NotFoundHandler answers unknown routes with the JSON error envelope
func (h *SystemHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	core.HandleError(w, core.NewNotFoundError("no route for "+r.URL.Path, nil))
}

func (h *SystemHandler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	core.HandleError(w, core.NewMethodNotAllowedError(r.Method+" is not supported on "+r.URL.Path))
}

func (h *SystemHandler) write(w http.ResponseWriter, r *http.Request, body any) {
	if err := core.WriteJSON(w, http.StatusOK, body); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to write response", "path", r.URL.Path, "error", err)
	}
}
