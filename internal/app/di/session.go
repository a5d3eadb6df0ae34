package di

import (
	authadapters "movie_browser/internal/feature/auth/adapters"
	"movie_browser/internal/feature/auth/usecase"
	"movie_browser/internal/platform/session"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to MongoDB.
func NewSessionRepository(rdb *redis.Client, database *mongo.Database) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionMongo(database)
}
