// Package handler はratingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/ratings/domain/entity"
	"movie_browser/internal/feature/ratings/transport/http/dto"
	"movie_browser/internal/feature/ratings/usecase"
	jwtmw "movie_browser/internal/platform/jwt"
)

// RatingUsecase は評価操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RatingUsecase interface {
	RateMovie(ctx context.Context, userID, movieID string, rating int, review string) error
	ListRatedMovies(ctx context.Context, userID string) ([]entity.RatedMovie, error)
}

// RatingHandler は評価操作のHTTPリクエストを処理します。
type RatingHandler struct {
	uc RatingUsecase
}

// NewRatingHandler は新しい RatingHandler を作成します。
func NewRatingHandler(uc RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// Create は映画の評価登録APIです。認証済みユーザーのみ利用できます。
// - バリデーションエラー時は400を返却
// - 対象の映画が存在しない場合は404を返却
// - 同じ映画を二重に評価した場合は409を返却
// - 成功時は201を返却
func (h *RatingHandler) Create(c *gin.Context) {
	var req dto.RateMovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(jwtmw.ContextUserID)
	movieID := c.Param("movieID")

	err := h.uc.RateMovie(c.Request.Context(), userID, movieID, req.Rating, req.Review)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrInvalidRating.Error()})
		case errors.Is(err, catalogusecase.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": catalogusecase.ErrMovieNotFound.Error()})
		case errors.Is(err, usecase.ErrAlreadyRated):
			c.JSON(http.StatusConflict, gin.H{"error": usecase.ErrAlreadyRated.Error()})
		default:
			slog.Error("rate movie failed", "error", err, "movieID", movieID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rate movie failed"})
		}
		return
	}
	c.Status(http.StatusCreated)
}

// List は認証済みユーザーが評価した映画の一覧APIです。
func (h *RatingHandler) List(c *gin.Context) {
	userID := c.GetString(jwtmw.ContextUserID)

	rated, err := h.uc.ListRatedMovies(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list rated movies failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list rated movies failed"})
		return
	}

	out := make([]dto.RatedMovieItem, 0, len(rated))
	for _, rm := range rated {
		out = append(out, dto.RatedMovieItem{
			MovieID:     rm.Movie.ID.Hex(),
			Title:       rm.Movie.Title,
			ReleaseDate: rm.Movie.ReleaseDate,
			Genre:       rm.Movie.Genre,
			Director:    rm.Movie.Director,
			Rating:      rm.Rating,
			Review:      rm.Review,
		})
	}
	c.JSON(http.StatusOK, out)
}
