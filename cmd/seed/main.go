package main

import (
	"context"
	"log"
	"time"

	"movie_browser/internal/app/di"
	catalogadapters "movie_browser/internal/feature/catalog/adapters"
	"movie_browser/internal/feature/catalog/usecase"
	infradb "movie_browser/internal/platform/db"
	"movie_browser/internal/shared/ratelimiter"
)

// フィードから一度に取り込むページ数の上限
const maxFeedPages = 50

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, database, err := infradb.Open(ctx, infradb.LoadConfig())
	if err != nil {
		log.Fatal("failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println("[ERROR] Failed to disconnect MongoDB client:", err)
		}
	}()

	if err := infradb.EnsureSchema(ctx, database); err != nil {
		log.Fatal("failed to ensure schema: ", err)
	}

	feedClient := di.NewCatalogFeed()
	movieRepo := catalogadapters.NewMovieMongo(database)
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)
	uc := usecase.NewImportUsecase(feedClient, movieRepo, limiter)

	imported, err := uc.ImportAll(ctx, maxFeedPages)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed ok: imported %d movies", imported)
}
