package models

import (
	"time"
)

// FeedAcceptHeader is sent on every feed request
const FeedAcceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// FetcherConfig holds configuration for the fetcher service
type FetcherConfig struct {
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
}

// AggregatorConfig holds configuration for the aggregator service
type AggregatorConfig struct {
	// Feeds are fetched concurrently but always merged in this order
	Feeds                []string `json:"feeds"`
	MaxConcurrentFetches int      `json:"max_concurrent_fetches"`
}

// DefaultFetcherConfig returns default fetcher configuration
func DefaultFetcherConfig() *FetcherConfig {
	return &FetcherConfig{
		UserAgent: "newswire/1.0",
		Timeout:   8 * time.Second,
	}
}
