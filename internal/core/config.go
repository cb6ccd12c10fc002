package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultNewsFeeds is the feed list served when NEWS_FEEDS is not set
var DefaultNewsFeeds = []string{
	"https://www.nasdaq.com/feed/rssoutbound?category=Investing",
	"https://www.marketwatch.com/feeds/topstories",
	"https://www.edweek.org/feeds/index.rss",
}

// Config represents the main configuration for newswire
type Config struct {
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
	Database DatabaseConfig `json:"database"`
	Features FeatureConfig  `json:"features"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `json:"level"`
}

// DatabaseConfig is only consumed by the diagnostics feature
type DatabaseConfig struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	News        NewsConfig        `json:"news"`
	Diagnostics DiagnosticsConfig `json:"diagnostics"`
}

// NewsConfig contains headline aggregation configuration
type NewsConfig struct {
	Enabled              bool          `json:"enabled"`
	Feeds                []string      `json:"feeds"`
	DefaultLimit         int           `json:"default_limit"`
	MaxLimit             int           `json:"max_limit"`
	FetchTimeout         time.Duration `json:"fetch_timeout"`
	MaxConcurrentFetches int           `json:"max_concurrent_fetches"`
	UserAgent            string        `json:"user_agent"`
}

// DiagnosticsConfig contains diagnostics endpoint configuration
type DiagnosticsConfig struct {
	Enabled bool `json:"enabled"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("PORT", 8000),
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:  os.Getenv("DATABASE_URL"),
			Name: os.Getenv("DATABASE_NAME"),
		},
		Features: FeatureConfig{
			News: NewsConfig{
				Enabled:              getEnvAsBool("ENABLE_NEWS", true),
				Feeds:                getEnvAsList("NEWS_FEEDS", DefaultNewsFeeds),
				DefaultLimit:         getEnvAsInt("NEWS_DEFAULT_LIMIT", 9),
				MaxLimit:             getEnvAsInt("NEWS_MAX_LIMIT", 50),
				FetchTimeout:         getEnvAsDuration("NEWS_FETCH_TIMEOUT", 8*time.Second),
				MaxConcurrentFetches: getEnvAsInt("NEWS_MAX_CONCURRENT_FETCHES", 3),
				UserAgent:            getEnvOrDefault("NEWS_USER_AGENT", "newswire/1.0"),
			},
			Diagnostics: DiagnosticsConfig{
				Enabled: getEnvAsBool("ENABLE_DIAGNOSTICS", true),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("invalid configuration", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Features.News.Enabled {
		news := c.Features.News
		if len(news.Feeds) == 0 {
			return fmt.Errorf("at least one news feed is required when news is enabled")
		}
		if news.DefaultLimit < 1 {
			return fmt.Errorf("default news limit must be positive, got %d", news.DefaultLimit)
		}
		if news.MaxLimit < news.DefaultLimit {
			return fmt.Errorf("max news limit %d is below the default limit %d", news.MaxLimit, news.DefaultLimit)
		}
		if news.FetchTimeout <= 0 {
			return fmt.Errorf("news fetch timeout must be positive")
		}
		if news.MaxConcurrentFetches < 1 || news.MaxConcurrentFetches > 20 {
			return fmt.Errorf("max concurrent fetches must be between 1 and 20")
		}
	}

	return nil
}

// IsFeatureEnabled checks if a feature is enabled
func (c *Config) IsFeatureEnabled(featureName string) bool {
	switch strings.ToLower(featureName) {
	case "news":
		return c.Features.News.Enabled
	case "diagnostics":
		return c.Features.Diagnostics.Enabled
	default:
		return false
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("8s", "1500ms") or plain seconds ("8")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
