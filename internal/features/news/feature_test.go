package news

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/core"
	"newswire/internal/features/news/models"
)

const marketsFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Markets</title>
<item><title>Stocks rally</title><link>https://news.example/rally</link><pubDate>Tue, 02 Jan 2024 09:00:00 GMT</pubDate></item>
<item><title>Bonds slip</title><link>https://news.example/bonds</link><pubDate>Mon, 01 Jan 2024 09:00:00 GMT</pubDate></item>
</channel></rss>`

const schoolFeed = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>School</title>
<entry><title>Term starts</title><link href="https://edu.example/term"/><updated>2024-01-03T00:00:00Z</updated></entry>
<entry><title>Stocks rally (syndicated)</title><link href="https://news.example/rally"/><updated>2024-01-04T00:00:00Z</updated></entry>
</feed>`

func testConfig(feeds ...string) *Config {
	return &Config{
		Enabled:              true,
		Feeds:                feeds,
		DefaultLimit:         9,
		MaxLimit:             50,
		FetchTimeout:         time.Second,
		MaxConcurrentFetches: 2,
		UserAgent:            "newswire-test/1.0",
	}
}

func TestNewConfig(t *testing.T) {
	coreConfig := &core.Config{}
	coreConfig.Features.News = core.NewsConfig{
		Enabled:              true,
		Feeds:                []string{"https://a.example/rss"},
		DefaultLimit:         4,
		MaxLimit:             20,
		FetchTimeout:         3 * time.Second,
		MaxConcurrentFetches: 5,
		UserAgent:            "ua",
	}

	config := NewConfig(coreConfig)
	require.NoError(t, config.Validate())
	assert.Equal(t, []string{"https://a.example/rss"}, config.Feeds)
	assert.Equal(t, 4, config.DefaultLimit)
	assert.Equal(t, 3*time.Second, config.fetcherConfig().Timeout)
	assert.Equal(t, "ua", config.fetcherConfig().UserAgent)
	assert.Equal(t, 5, config.aggregatorConfig().MaxConcurrentFetches)

	coreConfig.Features.News.Feeds[0] = "mutated"
	assert.Equal(t, "https://a.example/rss", config.Feeds[0])
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"no feeds":          func(c *Config) { c.Feeds = nil },
		"zero default":      func(c *Config) { c.DefaultLimit = 0 },
		"max below default": func(c *Config) { c.MaxLimit = 3 },
		"zero timeout":      func(c *Config) { c.FetchTimeout = 0 },
		"too concurrent":    func(c *Config) { c.MaxConcurrentFetches = 21 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			config := testConfig("https://a.example/rss")
			mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestFeatureServesMergedHeadlines(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/markets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(marketsFeed))
	})
	mux.HandleFunc("/school", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(schoolFeed))
	})
	upstream := httptest.NewServer(mux)
	defer upstream.Close()

	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelDebug)
	feature := NewFeature(logger, testConfig(upstream.URL+"/markets", upstream.URL+"/school"))
	require.NoError(t, feature.Init(context.Background()))
	assert.Equal(t, "news", feature.Name())
	assert.True(t, feature.Enabled())

	routes := feature.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "/api/news", routes[0].Path)

	rec := httptest.NewRecorder()
	routes[0].Handler(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.NewsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 3, result.Count)

	// The markets copy of the rally story wins because that feed is listed first
	assert.Equal(t, "Term starts", result.Items[0].Title)
	assert.Equal(t, "Stocks rally", result.Items[1].Title)
	assert.Equal(t, upstream.URL+"/markets", result.Items[1].Source)
	assert.Equal(t, "Bonds slip", result.Items[2].Title)

	direct := feature.GetAggregatorService().Aggregate(context.Background(), 1)
	require.Len(t, direct.Items, 1)
	assert.Equal(t, "Term starts", direct.Items[0].Title)

	require.NoError(t, feature.Shutdown(context.Background()))
}

func TestFeatureInitRejectsBadConfig(t *testing.T) {
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelDebug)
	config := testConfig()
	feature := NewFeature(logger, config)

	assert.Error(t, feature.Init(context.Background()))
}
