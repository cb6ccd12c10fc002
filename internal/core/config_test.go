package core

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "LOG_LEVEL", "DATABASE_URL", "DATABASE_NAME",
		"ENABLE_NEWS", "ENABLE_DIAGNOSTICS", "NEWS_FEEDS", "NEWS_DEFAULT_LIMIT", "NEWS_MAX_LIMIT",
		"NEWS_FETCH_TIMEOUT", "NEWS_MAX_CONCURRENT_FETCHES", "NEWS_USER_AGENT"} {
		t.Setenv(key, "")
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.Port != 8000 {
		t.Errorf("Expected port 8000, got %d", config.Server.Port)
	}
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %q", config.Server.Host)
	}

	news := config.Features.News
	if !news.Enabled {
		t.Error("Expected news feature to be enabled by default")
	}
	if len(news.Feeds) != len(DefaultNewsFeeds) {
		t.Fatalf("Expected %d default feeds, got %d", len(DefaultNewsFeeds), len(news.Feeds))
	}
	for i := range DefaultNewsFeeds {
		if news.Feeds[i] != DefaultNewsFeeds[i] {
			t.Errorf("Feed %d = %q, want %q", i, news.Feeds[i], DefaultNewsFeeds[i])
		}
	}
	if news.DefaultLimit != 9 {
		t.Errorf("Expected default limit 9, got %d", news.DefaultLimit)
	}
	if news.FetchTimeout != 8*time.Second {
		t.Errorf("Expected fetch timeout 8s, got %v", news.FetchTimeout)
	}
	if !config.IsFeatureEnabled("diagnostics") {
		t.Error("Expected diagnostics feature to be enabled by default")
	}
	if config.IsFeatureEnabled("uptime") {
		t.Error("Unknown features must report disabled")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEWS_FEEDS", " https://a.example/rss , ,https://b.example/atom ")
	t.Setenv("NEWS_FETCH_TIMEOUT", "2.5")
	t.Setenv("NEWS_MAX_CONCURRENT_FETCHES", "1")
	t.Setenv("DATABASE_URL", "sqlite://./test.db")
	t.Setenv("DATABASE_NAME", "newswire")
	t.Setenv("ENABLE_DIAGNOSTICS", "off")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", config.Server.Port)
	}

	feeds := config.Features.News.Feeds
	if len(feeds) != 2 || feeds[0] != "https://a.example/rss" || feeds[1] != "https://b.example/atom" {
		t.Errorf("Unexpected feeds: %#v", feeds)
	}
	if config.Features.News.FetchTimeout != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s timeout, got %v", config.Features.News.FetchTimeout)
	}
	if config.Database.URL != "sqlite://./test.db" || config.Database.Name != "newswire" {
		t.Errorf("Unexpected database config: %+v", config.Database)
	}
	if config.IsFeatureEnabled("diagnostics") {
		t.Error("Expected diagnostics to be disabled")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"too many concurrent fetches", "NEWS_MAX_CONCURRENT_FETCHES", "50"},
		{"max below default", "NEWS_MAX_LIMIT", "3"},
		{"zero default limit", "NEWS_DEFAULT_LIMIT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("Expected error for %s=%s", tt.key, tt.value)
			}

			var appErr *AppError
			if !errors.As(err, &appErr) || appErr.Code != ErrCodeConfiguration {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}
}
