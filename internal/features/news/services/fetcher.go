package services

import (
	"context"
	"fmt"
	"strings"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
	"newswire/internal/httpclient"
)

// FeedFetcher retrieves the raw bytes of a feed
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// FetcherService performs one bounded-timeout GET per feed
type FetcherService struct {
	client httpclient.Client
	logger *core.Logger
	config *models.FetcherConfig
}

// NewFetcherService creates a new fetcher service. A nil client gets a resty
// client using the configured timeout.
func NewFetcherService(client httpclient.Client, logger *core.Logger, config *models.FetcherConfig) *FetcherService {
	if config == nil {
		config = models.DefaultFetcherConfig()
	}
	if client == nil {
		client = httpclient.NewRestyClient(config.Timeout)
	}

	return &FetcherService{
		client: client,
		logger: logger,
		config: config,
	}
}

// Fetch returns the response body of feedURL. Transport errors, timeouts and
// non-2xx statuses all come back as errors; nothing is retried.
func (f *FetcherService) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url is empty")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	headers := map[string]string{
		"User-Agent": f.config.UserAgent,
		"Accept":     models.FeedAcceptHeader,
	}

	resp, err := f.client.Get(fetchCtx, feedURL, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("feed returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	f.logger.Debug("Fetched feed", "url", feedURL, "bytes", len(body), "duration", resp.Time())
	return body, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
