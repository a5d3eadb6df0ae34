// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogentity "movie_browser/internal/feature/catalog/domain/entity"
	cataloghandler "movie_browser/internal/feature/catalog/transport/handler"
	catalogdto "movie_browser/internal/feature/catalog/transport/http/dto"
	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/watchlist/usecase"
	jwtmw "movie_browser/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	AddToWatchlist(ctx context.Context, userID, movieID string) error
	ListWatchlist(ctx context.Context, userID string) ([]catalogentity.MovieSummary, error)
}

// WatchlistHandler はウォッチリスト操作のHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// Add はウォッチリスト登録APIです。認証済みユーザーのみ利用できます。
// - 対象の映画が存在しない場合は404を返却
// - 既に登録済みの場合は409を返却
// - 成功時は201を返却
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID := c.GetString(jwtmw.ContextUserID)
	movieID := c.Param("movieID")

	err := h.uc.AddToWatchlist(c.Request.Context(), userID, movieID)
	if err != nil {
		switch {
		case errors.Is(err, catalogusecase.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": catalogusecase.ErrMovieNotFound.Error()})
		case errors.Is(err, usecase.ErrAlreadyInWatchlist):
			c.JSON(http.StatusConflict, gin.H{"error": usecase.ErrAlreadyInWatchlist.Error()})
		default:
			slog.Error("add to watchlist failed", "error", err, "movieID", movieID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "add to watchlist failed"})
		}
		return
	}
	c.Status(http.StatusCreated)
}

// List は認証済みユーザーのウォッチリスト一覧APIです。
// 結果には映画ごとの平均評価が含まれます。
func (h *WatchlistHandler) List(c *gin.Context) {
	userID := c.GetString(jwtmw.ContextUserID)

	summaries, err := h.uc.ListWatchlist(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list watchlist failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list watchlist failed"})
		return
	}

	out := make([]catalogdto.MovieItem, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, cataloghandler.ToMovieItem(s))
	}
	c.JSON(http.StatusOK, out)
}
