package diagnostics

import (
	"newswire/internal/core"
	"newswire/internal/features/diagnostics/handlers"
	"newswire/internal/features/diagnostics/services"
)

// Feature reports backend and database connectivity on /test
type Feature struct {
	*core.BaseFeature
	probeService *services.ProbeService
	handlers     *handlers.Handlers
}

// NewFeature creates a new diagnostics feature. db may be nil, and openErr
// carries any failure from opening it at startup.
func NewFeature(logger *core.Logger, db *core.Database, openErr error, config *Config) *Feature {
	base := core.NewBaseFeature("diagnostics", "Database connectivity report", config.Enabled, logger)
	probeService := services.NewProbeService(db, openErr, config.DatabaseURLSet, config.DatabaseNameSet, base.Logger())

	return &Feature{
		BaseFeature:  base,
		probeService: probeService,
		handlers:     handlers.NewHandlers(base.Logger(), probeService),
	}
}

// Routes returns the HTTP routes for the diagnostics feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: "GET", Path: "/test", Handler: f.handlers.GetReport},
	}
}

// GetProbeService returns the probe service
func (f *Feature) GetProbeService() *services.ProbeService {
	return f.probeService
}
