package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie_browser/internal/feature/catalog/domain/entity"
	"movie_browser/internal/feature/catalog/transport/http/dto"
	"movie_browser/internal/feature/catalog/usecase"
)

// CatalogUsecase はカタログ操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	AddMovie(ctx context.Context, title, releaseDate, genre, director string) (string, error)
	SearchMovies(ctx context.Context, term string) ([]entity.MovieSummary, error)
}

// CatalogHandler はカタログ操作のHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List はタイトル検索APIです。クエリパラメータ q が空の場合は全件を返します。
// Usecaseを呼び出して映画一覧（平均評価付き）を取得し、DTOに変換してJSONレスポンスとして返します。
func (h *CatalogHandler) List(c *gin.Context) {
	summaries, err := h.uc.SearchMovies(c.Request.Context(), c.Query("q"))
	if err != nil {
		slog.Error("movie search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	out := make([]dto.MovieItem, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ToMovieItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Create は映画登録APIです。
// - バリデーションエラー時は400を返却
// - 成功時は201と新規映画IDを返却
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.AddMovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.uc.AddMovie(c.Request.Context(), req.Title, req.ReleaseDate, req.Genre, req.Director)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrEmptyTitle.Error()})
			return
		}
		slog.Error("add movie failed", "error", err, "title", req.Title)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add movie failed"})
		return
	}
	c.JSON(http.StatusCreated, dto.AddMovieRes{ID: id})
}

// ToMovieItem は映画サマリーをレスポンスDTOに変換します。
// watchlistフィーチャーのハンドラーからも利用されます。
func ToMovieItem(s entity.MovieSummary) dto.MovieItem {
	return dto.MovieItem{
		ID:            s.ID.Hex(),
		Title:         s.Title,
		ReleaseDate:   s.ReleaseDate,
		Genre:         s.Genre,
		Director:      s.Director,
		AverageRating: s.AverageRating,
	}
}
