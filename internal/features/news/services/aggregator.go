package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
)

// AggregatorService merges headlines from a fixed, ordered list of feeds
type AggregatorService struct {
	fetcher FeedFetcher
	parser  *ParserService
	logger  *core.Logger
	config  *models.AggregatorConfig
}

// NewAggregatorService creates a new aggregator service
func NewAggregatorService(fetcher FeedFetcher, parser *ParserService, logger *core.Logger, config *models.AggregatorConfig) *AggregatorService {
	if config.MaxConcurrentFetches < 1 {
		config.MaxConcurrentFetches = 1
	}

	return &AggregatorService{
		fetcher: fetcher,
		parser:  parser,
		logger:  logger,
		config:  config,
	}
}

// Aggregate fetches every configured feed, keeps the first item seen for each
// link, orders by timestamp (newest first, undated last) and returns at most
// limit items. limit also caps how many items each feed may contribute.
// Failing feeds contribute nothing; Aggregate itself cannot fail.
func (a *AggregatorService) Aggregate(ctx context.Context, limit int) *models.NewsResult {
	if limit <= 0 {
		return models.NewNewsResult(nil)
	}

	start := time.Now()
	perFeed := a.collect(ctx, limit)

	var merged []models.Item
	for _, items := range perFeed {
		merged = append(merged, items...)
	}

	unique := dedupeByLink(merged)
	sortByPublishedDesc(unique)

	if len(unique) > limit {
		unique = unique[:limit]
	}

	a.logger.WithContext(ctx).Info("Aggregated headlines",
		"feeds", len(a.config.Feeds),
		"collected", len(merged),
		"unique", len(unique),
		"limit", limit,
		"duration", time.Since(start),
	)

	return models.NewNewsResult(unique)
}

// collect returns one slot per configured feed so the merge order never
// depends on which fetch finished first
func (a *AggregatorService) collect(ctx context.Context, limit int) [][]models.Item {
	results := make([][]models.Item, len(a.config.Feeds))
	logger := a.logger.WithContext(ctx)

	var g errgroup.Group
	g.SetLimit(a.config.MaxConcurrentFetches)

	for i, feedURL := range a.config.Feeds {
		i, feedURL := i, feedURL
		g.Go(func() error {
			body, err := a.fetcher.Fetch(ctx, feedURL)
			if err != nil {
				logger.Warn("Skipping feed", "url", feedURL, "error", err)
				return nil
			}

			results[i] = a.parser.Parse(body, feedURL, limit)
			logger.Debug("Parsed feed", "url", feedURL, "items", len(results[i]))
			return nil
		})
	}

	// Workers only ever return nil
	_ = g.Wait()

	return results
}

func dedupeByLink(items []models.Item) []models.Item {
	seen := make(map[string]struct{}, len(items))
	unique := make([]models.Item, 0, len(items))

	for _, item := range items {
		if item.Link == "" {
			continue
		}
		if _, dup := seen[item.Link]; dup {
			continue
		}
		seen[item.Link] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}

// sortByPublishedDesc is stable so equal timestamps keep merge order
func sortByPublishedDesc(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
