package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"movie_browser/internal/feature/catalog/adapters/feed/dto"
	"movie_browser/internal/feature/catalog/domain/entity"
	"movie_browser/internal/feature/catalog/usecase"
)

// Client は外部カタログフィードから映画データを取得するCatalogFeed実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCatalogFeedを実装していることをコンパイル時に検証します。
var _ usecase.CatalogFeed = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchMovies はフィードから指定ページの映画一覧を取得し、
// entity.Movieのスライスとして返します。
func (f *Client) FetchMovies(ctx context.Context, page int) ([]entity.Movie, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("page", strconv.Itoa(page))
	q.Set("api_key", f.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s/movies?%s", f.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog feed http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.MovieListResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("catalog feed: %s", body.Message)
	}

	movies := make([]entity.Movie, 0, len(body.Movies))
	for _, v := range body.Movies {
		movies = append(movies, entity.Movie{
			Title:       v.Title,
			ReleaseDate: v.ReleaseDate,
			Genre:       v.Genre,
			Director:    v.Director,
		})
	}
	return movies, nil
}
