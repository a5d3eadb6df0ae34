package usecase

import (
	"context"
	"log/slog"
	"time"

	"movie_browser/internal/feature/catalog/domain/entity"
	"movie_browser/internal/shared/ratelimiter"
)

// CatalogFeed は外部カタログフィードから映画データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CatalogFeed interface {
	// FetchMovies は指定されたページの映画一覧を取得します。
	// 最終ページを超えた場合は空のスライスを返します。
	FetchMovies(ctx context.Context, page int) ([]entity.Movie, error)
}

// ImportUsecase は外部フィードから映画データを取得し、カタログに永続化するユースケースを定義します。
type ImportUsecase struct {
	feed        CatalogFeed
	movies      MovieRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewImportUsecase は新しい ImportUsecase を作成します。
func NewImportUsecase(feed CatalogFeed, movies MovieRepository, rateLimiter ratelimiter.RateLimiterInterface) *ImportUsecase {
	return &ImportUsecase{feed: feed, movies: movies, rateLimiter: rateLimiter}
}

// ImportAll は最大maxPagesページ分の映画をフィードから取得し、カタログに永続化します。
// フィードのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
// 1件の挿入エラーで処理を止めずにログに出力し、次の処理を続けます。
func (iu *ImportUsecase) ImportAll(ctx context.Context, maxPages int) (int, error) {
	imported := 0
	for page := 1; page <= maxPages; page++ {
		iu.rateLimiter.WaitIfNeeded()

		movies, err := iu.feed.FetchMovies(ctx, page)
		if err != nil {
			return imported, err
		}
		// 最終ページに到達
		if len(movies) == 0 {
			break
		}

		for i := range movies {
			movies[i].AddedDate = time.Now()
			if err := iu.movies.Insert(ctx, &movies[i]); err != nil {
				// 1件のエラーで処理を止めずにログに出力し、次の処理を続ける
				slog.Error("failed to import movie", "title", movies[i].Title, "page", page, "error", err)
				continue
			}
			imported++
		}
	}
	return imported, nil
}
