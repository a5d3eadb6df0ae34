// Package feed provides a client for the external movie catalog feed API.
package feed

import (
	"os"
	"time"
)

// Config holds configuration for the catalog feed client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the feed (e.g. "https://feed.example.com/v1")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads catalog feed configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("CATALOG_FEED_API_KEY"),
		BaseURL: os.Getenv("CATALOG_FEED_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}
