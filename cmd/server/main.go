package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"movie_browser/internal/app/di"
	"movie_browser/internal/app/router"
	authadapters "movie_browser/internal/feature/auth/adapters"
	authhandler "movie_browser/internal/feature/auth/transport/handler"
	authusecase "movie_browser/internal/feature/auth/usecase"
	catalogadapters "movie_browser/internal/feature/catalog/adapters"
	cataloghandler "movie_browser/internal/feature/catalog/transport/handler"
	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	ratingsadapters "movie_browser/internal/feature/ratings/adapters"
	ratingshandler "movie_browser/internal/feature/ratings/transport/handler"
	ratingsusecase "movie_browser/internal/feature/ratings/usecase"
	watchlistadapters "movie_browser/internal/feature/watchlist/adapters"
	watchlisthandler "movie_browser/internal/feature/watchlist/transport/handler"
	watchlistusecase "movie_browser/internal/feature/watchlist/usecase"
	"movie_browser/internal/platform/cache"
	infradb "movie_browser/internal/platform/db"
	jwt "movie_browser/internal/platform/jwt"
	infraredis "movie_browser/internal/platform/redis"
)

const accessTokenTTL = 15 * time.Minute

func main() {
	ctx := context.Background()

	// db
	client, database, err := infradb.Open(ctx, infradb.LoadConfig())
	if err != nil {
		log.Fatal("failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Println("[ERROR] Failed to disconnect MongoDB client:", err)
		}
	}()

	if err := infradb.EnsureSchema(ctx, database); err != nil {
		log.Fatal("failed to ensure schema: ", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMongo(database)
	sessionRepo := di.NewSessionRepository(rdb, database)
	movieRepo := catalogadapters.NewMovieMongo(database)
	ratingRepo := ratingsadapters.NewRatingMongo(database)
	watchlistRepo := watchlistadapters.NewWatchlistMongo(database)

	// Redisキャッシュでラップ
	cachedRatingRepo := cache.NewCachingRatingRepository(ratingRepo, rdb)

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwt.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwt.NewGenerator(secret, accessTokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen, accessTokenTTL)
	catalogUC := catalogusecase.NewCatalogUsecase(movieRepo, cachedRatingRepo)
	ratingsUC := ratingsusecase.NewRatingUsecase(cachedRatingRepo, movieRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, movieRepo, cachedRatingRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	catalogH := cataloghandler.NewCatalogHandler(catalogUC)
	ratingsH := ratingshandler.NewRatingHandler(ratingsUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)

	// ルータ生成
	router := router.NewRouter(authH, catalogH, ratingsH, watchlistH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
