// Package cache はRedisを使ったキャッシュ層を提供します。
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"movie_browser/internal/feature/ratings/domain/entity"
	"movie_browser/internal/feature/ratings/usecase"
)

// 平均評価キャッシュのデフォルトTTLです。
const defaultAverageTTL = 5 * time.Minute

// averageKeyPrefix はキャッシュキーの名前空間です。
const averageKeyPrefix = "rating:avg:"

// CachingRatingRepository はRatingRepositoryをラップし、
// 映画ごとの平均評価をRedisにキャッシュするデコレーターです。
// 新しい評価の登録時に該当映画のキャッシュを無効化します。
// Redisが利用できない場合はキャッシュをバイパスして委譲先をそのまま利用します。
type CachingRatingRepository struct {
	next usecase.RatingRepository
	rdb  *redis.Client
	ttl  time.Duration
}

var _ usecase.RatingRepository = (*CachingRatingRepository)(nil)

// NewCachingRatingRepository は新しい CachingRatingRepository を作成します。
// rdb に nil を渡した場合、キャッシュは無効になります。
func NewCachingRatingRepository(next usecase.RatingRepository, rdb *redis.Client) *CachingRatingRepository {
	return &CachingRatingRepository{next: next, rdb: rdb, ttl: defaultAverageTTL}
}

// Insert は評価を委譲先に保存し、成功時に該当映画の平均評価キャッシュを無効化します。
func (c *CachingRatingRepository) Insert(ctx context.Context, rating *entity.Rating) error {
	if err := c.next.Insert(ctx, rating); err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, averageKeyPrefix+rating.MovieID.Hex()).Err(); err != nil {
			// キャッシュの無効化失敗は評価登録の成否に影響させない
			slog.Warn("failed to invalidate average rating cache", "movieID", rating.MovieID.Hex(), "error", err)
		}
	}
	return nil
}

// ListByUser はキャッシュせずに委譲先をそのまま呼び出します。
func (c *CachingRatingRepository) ListByUser(ctx context.Context, userID string) ([]entity.Rating, error) {
	return c.next.ListByUser(ctx, userID)
}

// AverageForMovie はキャッシュ済みの平均評価があればそれを返し、
// なければ委譲先から取得してキャッシュに保存します。
func (c *CachingRatingRepository) AverageForMovie(ctx context.Context, movieID string) (float64, error) {
	if c.rdb == nil {
		return c.next.AverageForMovie(ctx, movieID)
	}

	key := averageKeyPrefix + movieID
	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		if avg, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return avg, nil
		}
		// 壊れたキャッシュは読み飛ばして再計算する
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("failed to read average rating cache", "movieID", movieID, "error", err)
	}

	avg, err := c.next.AverageForMovie(ctx, movieID)
	if err != nil {
		return 0, err
	}

	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(avg, 'f', -1, 64), c.ttl).Err(); err != nil {
		slog.Warn("failed to write average rating cache", "movieID", movieID, "error", err)
	}
	return avg, nil
}
