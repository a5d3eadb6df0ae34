// Package usecase はウォッチリスト機能のユースケースを定義します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogentity "movie_browser/internal/feature/catalog/domain/entity"
	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/watchlist/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// WatchlistRepository はウォッチリストの永続化を抽象化するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Insert はエントリを保存します。同じ (userId, movieId) の組み合わせが既に
	// 存在する場合は ErrAlreadyInWatchlist を返します。
	Insert(ctx context.Context, entry *entity.Entry) error
	// ListByUser は指定ユーザーのウォッチリストを追加日時の昇順で返します。
	ListByUser(ctx context.Context, userID string) ([]entity.Entry, error)
}

// MovieFinder は映画の存在確認と取得のためのインターフェイスです。
// カタログ機能のリポジトリが実装します。
type MovieFinder interface {
	FindByID(ctx context.Context, id string) (*catalogentity.Movie, error)
}

// RatingStats は映画の平均評価を取得するためのインターフェイスです。
type RatingStats interface {
	AverageForMovie(ctx context.Context, movieID string) (float64, error)
}

// WatchlistUsecase はウォッチリストの登録と一覧取得のユースケースを定義します。
type WatchlistUsecase struct {
	entries WatchlistRepository
	movies  MovieFinder
	stats   RatingStats
}

// NewWatchlistUsecase は新しい WatchlistUsecase を作成します。
func NewWatchlistUsecase(entries WatchlistRepository, movies MovieFinder, stats RatingStats) *WatchlistUsecase {
	return &WatchlistUsecase{entries: entries, movies: movies, stats: stats}
}

// AddToWatchlist は映画をユーザーのウォッチリストに登録します。
// - 対象の映画が存在しない場合は catalog の ErrMovieNotFound を返します。
// - 既に登録済みの場合は ErrAlreadyInWatchlist を返します。
func (wu *WatchlistUsecase) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	mid, err := bson.ObjectIDFromHex(movieID)
	if err != nil {
		return catalogusecase.ErrMovieNotFound
	}

	// 存在しない映画の登録を防ぐ
	if _, err := wu.movies.FindByID(ctx, movieID); err != nil {
		return err
	}

	e := &entity.Entry{
		UserID:    uid,
		MovieID:   mid,
		AddedDate: time.Now(),
	}
	return wu.entries.Insert(ctx, e)
}

// ListWatchlist は指定ユーザーのウォッチリストを平均評価付きで返します。
// 映画が削除されている等で参照先が見つからないエントリはスキップします。
func (wu *WatchlistUsecase) ListWatchlist(ctx context.Context, userID string) ([]catalogentity.MovieSummary, error) {
	entries, err := wu.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]catalogentity.MovieSummary, 0, len(entries))
	for _, e := range entries {
		movie, err := wu.movies.FindByID(ctx, e.MovieID.Hex())
		if err != nil {
			if errors.Is(err, catalogusecase.ErrMovieNotFound) {
				continue
			}
			return nil, err
		}
		avg, err := wu.stats.AverageForMovie(ctx, e.MovieID.Hex())
		if err != nil {
			return nil, err
		}
		out = append(out, catalogentity.MovieSummary{Movie: *movie, AverageRating: avg})
	}
	return out, nil
}
