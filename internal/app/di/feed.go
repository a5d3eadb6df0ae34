// Package di provides dependency injection factories for creating application components.
package di

import (
	"movie_browser/internal/feature/catalog/adapters/feed"
	infrahttp "movie_browser/internal/platform/http"
)

// NewCatalogFeed creates a fully configured catalog feed client with HTTP client.
func NewCatalogFeed() *feed.Client {
	cfg := feed.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return feed.NewClient(cfg, httpClient)
}
