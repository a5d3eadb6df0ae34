// Package usecase はレーティング機能のユースケースを定義します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogentity "movie_browser/internal/feature/catalog/domain/entity"
	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/ratings/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	minRating = 1
	maxRating = 10
)

// RatingRepository は評価の永続化を抽象化するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RatingRepository interface {
	// Insert は評価を保存します。同じ (userId, movieId) の組み合わせが既に
	// 存在する場合は ErrAlreadyRated を返します。
	Insert(ctx context.Context, rating *entity.Rating) error
	// ListByUser は指定ユーザーの評価一覧を評価日時の昇順で返します。
	ListByUser(ctx context.Context, userID string) ([]entity.Rating, error)
	// AverageForMovie は指定映画の平均評価を小数第1位に丸めて返します。
	// 評価が1件もない場合は 0.0 を返します。
	AverageForMovie(ctx context.Context, movieID string) (float64, error)
}

// MovieFinder は映画の存在確認と取得のためのインターフェイスです。
// カタログ機能のリポジトリが実装します。
type MovieFinder interface {
	FindByID(ctx context.Context, id string) (*catalogentity.Movie, error)
}

// RatingUsecase は評価の登録と一覧取得のユースケースを定義します。
type RatingUsecase struct {
	ratings RatingRepository
	movies  MovieFinder
}

// NewRatingUsecase は新しい RatingUsecase を作成します。
func NewRatingUsecase(ratings RatingRepository, movies MovieFinder) *RatingUsecase {
	return &RatingUsecase{ratings: ratings, movies: movies}
}

// RateMovie はユーザーによる映画の評価を登録します。
// - 評価値が1〜10の範囲外の場合は ErrInvalidRating を返します。
// - 対象の映画が存在しない場合は catalog の ErrMovieNotFound を返します。
// - 同じユーザーが同じ映画を既に評価している場合は ErrAlreadyRated を返します。
func (ru *RatingUsecase) RateMovie(ctx context.Context, userID, movieID string, rating int, review string) error {
	if rating < minRating || rating > maxRating {
		return ErrInvalidRating
	}

	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	mid, err := bson.ObjectIDFromHex(movieID)
	if err != nil {
		return catalogusecase.ErrMovieNotFound
	}

	// 存在しない映画への評価を防ぐ
	if _, err := ru.movies.FindByID(ctx, movieID); err != nil {
		return err
	}

	r := &entity.Rating{
		UserID:    uid,
		MovieID:   mid,
		Rating:    rating,
		Review:    strings.TrimSpace(review),
		RatedDate: time.Now(),
	}
	return ru.ratings.Insert(ctx, r)
}

// ListRatedMovies は指定ユーザーが評価した映画の一覧を返します。
// 映画が削除されている等で参照先が見つからない評価はスキップします。
func (ru *RatingUsecase) ListRatedMovies(ctx context.Context, userID string) ([]entity.RatedMovie, error) {
	ratings, err := ru.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.RatedMovie, 0, len(ratings))
	for _, r := range ratings {
		movie, err := ru.movies.FindByID(ctx, r.MovieID.Hex())
		if err != nil {
			if errors.Is(err, catalogusecase.ErrMovieNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, entity.RatedMovie{
			Movie:  *movie,
			Rating: r.Rating,
			Review: r.Review,
		})
	}
	return out, nil
}
