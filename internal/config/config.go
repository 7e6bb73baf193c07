package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration. The service is stateless: no
// database, no auth secrets. Everything it proxies lives upstream.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Upstream API credentials
	SpotifyClientID     string
	SpotifyClientSecret string
	LastFMAPIKey        string
	RedditUserAgent     string

	// Upstream behaviour
	UpstreamTimeout time.Duration

	// Observability
	SentryDSN string

	// CORS allow-list (comma separated origins; "*" for dev)
	CORSOrigins []string
}

const defaultUpstreamTimeoutMs = 10000

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		LastFMAPIKey:        getEnv("LASTFM_API_KEY", ""),
		RedditUserAgent:     getEnv("REDDIT_USER_AGENT", "frequency-api/1.0"),
		UpstreamTimeout:     time.Duration(getEnvInt("UPSTREAM_TIMEOUT_MS", defaultUpstreamTimeoutMs)) * time.Millisecond,
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		CORSOrigins:         splitOrigins(getEnv("CORS_ORIGINS", "*")),
	}
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SpotifyConfigured reports whether Spotify credentials are present.
func (c *Config) SpotifyConfigured() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// LastFMConfigured reports whether the Last.fm key is present.
func (c *Config) LastFMConfigured() bool {
	return c.LastFMAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
