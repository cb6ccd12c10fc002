package news

import (
	"fmt"
	"time"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
)

// Config represents news feature configuration
type Config struct {
	Enabled              bool
	Feeds                []string
	DefaultLimit         int
	MaxLimit             int
	FetchTimeout         time.Duration
	MaxConcurrentFetches int
	UserAgent            string
}

// NewConfig creates news config from core config
func NewConfig(coreConfig *core.Config) *Config {
	news := coreConfig.Features.News
	feeds := make([]string, len(news.Feeds))
	copy(feeds, news.Feeds)

	return &Config{
		Enabled:              news.Enabled,
		Feeds:                feeds,
		DefaultLimit:         news.DefaultLimit,
		MaxLimit:             news.MaxLimit,
		FetchTimeout:         news.FetchTimeout,
		MaxConcurrentFetches: news.MaxConcurrentFetches,
		UserAgent:            news.UserAgent,
	}
}

// Validate validates the news configuration
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("at least one feed URL is required")
	}

	if c.DefaultLimit < 1 || c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("limits must satisfy 1 <= default (%d) <= max (%d)", c.DefaultLimit, c.MaxLimit)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}

	if c.MaxConcurrentFetches < 1 || c.MaxConcurrentFetches > 20 {
		return fmt.Errorf("max concurrent fetches must be between 1 and 20")
	}

	return nil
}

func (c *Config) fetcherConfig() *models.FetcherConfig {
	config := models.DefaultFetcherConfig()
	if c.UserAgent != "" {
		config.UserAgent = c.UserAgent
	}
	if c.FetchTimeout > 0 {
		config.Timeout = c.FetchTimeout
	}
	return config
}

func (c *Config) aggregatorConfig() *models.AggregatorConfig {
	return &models.AggregatorConfig{
		Feeds:                c.Feeds,
		MaxConcurrentFetches: c.MaxConcurrentFetches,
	}
}
