package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// コレクション名の定義。オリジナルのデータセットと互換性を保つため大文字始まりです。
const (
	UsersCollection     = "Users"
	MoviesCollection    = "Movies"
	RatingsCollection   = "Ratings"
	WatchlistCollection = "Watchlist"
	SessionsCollection  = "Sessions"
)

// Config holds connection settings for the document store.
type Config struct {
	URI  string // Connection string (e.g. "mongodb://localhost:27017")
	Name string // Database name
}

// LoadConfig loads MongoDB configuration from environment variables.
// Missing values fall back to local development defaults.
func LoadConfig() Config {
	cfg := Config{
		URI:  os.Getenv("MONGO_URI"),
		Name: os.Getenv("MONGO_DB"),
	}
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Name == "" {
		cfg.Name = "movie_browser"
	}
	return cfg
}

// Open はドキュメントストアへ接続し、クライアントとデータベースハンドルを返します。
// コンテナ起動直後などで接続に失敗した場合、60秒を上限にリトライします。
// 接続失敗は呼び出し元に typed error として返し、プロセス終了の判断は呼び出し元に委ねます。
func Open(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	var (
		client *mongo.Client
		err    error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		client, err = mongo.Connect(options.Client().ApplyURI(cfg.URI))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}
		if time.Now().After(deadline) {
			return nil, nil, fmt.Errorf("mongo connect failed after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	return client, client.Database(cfg.Name), nil
}

// EnsureSchema は必要なコレクションとインデックスを冪等に作成します。
//   - Users: username / email にユニークインデックス
//   - Ratings / Watchlist: (userId, movieId) の複合ユニークインデックス
//     （check-then-insert の競合をストレージ側で排除するため）
//   - Sessions: expiresAt の TTL インデックスと userId インデックス
//
// 初回起動でストレージを構築し、2回目以降は no-op です。
func EnsureSchema(ctx context.Context, database *mongo.Database) error {
	existing, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range []string{UsersCollection, MoviesCollection, RatingsCollection, WatchlistCollection, SessionsCollection} {
		if present[name] {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	users := database.Collection(UsersCollection)
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	// ユーザーごと・映画ごとに1件だけ許可する複合ユニークインデックス
	pair := bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}}
	for _, name := range []string{RatingsCollection, WatchlistCollection} {
		_, err := database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    pair,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create (userId, movieId) index on %s: %w", name, err)
		}
	}

	sessions := database.Collection(SessionsCollection)
	sessionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := sessions.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("create session indexes: %w", err)
	}

	return nil
}
