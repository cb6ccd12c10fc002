package diagnostics

import "newswire/internal/core"

// Config represents diagnostics feature configuration
type Config struct {
	Enabled         bool
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// NewConfig creates diagnostics config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		Enabled:         coreConfig.Features.Diagnostics.Enabled,
		DatabaseURLSet:  coreConfig.Database.URL != "",
		DatabaseNameSet: coreConfig.Database.Name != "",
	}
}
