package news

import (
	"context"

	"newswire/internal/core"
	"newswire/internal/features/news/handlers"
	"newswire/internal/features/news/services"
	"newswire/internal/httpclient"
)

// Feature serves merged headlines from a fixed list of feeds
type Feature struct {
	*core.BaseFeature
	config            *Config
	fetcherService    *services.FetcherService
	parserService     *services.ParserService
	aggregatorService *services.AggregatorService
	handlers          *handlers.Handlers
}

// NewFeature creates a new news feature
func NewFeature(logger *core.Logger, config *Config) *Feature {
	base := core.NewBaseFeature("news", "Headline aggregation", config.Enabled, logger)
	featureLogger := base.Logger()

	fetcherConfig := config.fetcherConfig()
	client := httpclient.NewRestyClient(fetcherConfig.Timeout)

	fetcherService := services.NewFetcherService(client, featureLogger, fetcherConfig)
	parserService := services.NewParserService(featureLogger)
	aggregatorService := services.NewAggregatorService(fetcherService, parserService, featureLogger, config.aggregatorConfig())

	return &Feature{
		BaseFeature:       base,
		config:            config,
		fetcherService:    fetcherService,
		parserService:     parserService,
		aggregatorService: aggregatorService,
		handlers:          handlers.NewHandlers(featureLogger, aggregatorService, config.DefaultLimit, config.MaxLimit),
	}
}

// Init validates the configuration
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	f.Logger().Info("News feature initialized", "feeds", len(f.config.Feeds), "default_limit", f.config.DefaultLimit)
	return nil
}

// Routes returns the HTTP routes for the news feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: "GET", Path: "/api/news", Handler: f.handlers.GetNews},
	}
}

// GetAggregatorService returns the aggregator service
func (f *Feature) GetAggregatorService() *services.AggregatorService {
	return f.aggregatorService
}
