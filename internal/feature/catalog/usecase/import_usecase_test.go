package usecase

import (
	"context"
	"errors"
	"testing"

	"movie_browser/internal/feature/catalog/domain/entity"
)

// mockCatalogFeed is a mock implementation of the CatalogFeed interface.
type mockCatalogFeed struct {
	FetchMoviesFunc func(ctx context.Context, page int) ([]entity.Movie, error)
}

func (m *mockCatalogFeed) FetchMovies(ctx context.Context, page int) ([]entity.Movie, error) {
	if m.FetchMoviesFunc != nil {
		return m.FetchMoviesFunc(ctx, page)
	}
	return nil, nil
}

// mockRateLimiter は待機処理を行わないレートリミッターのモックです。
type mockRateLimiter struct {
	waits int
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.waits++
}

func TestImportUsecase_ImportAll(t *testing.T) {
	ctx := context.Background()

	t.Run("imports all pages until the feed is empty", func(t *testing.T) {
		pages := map[int][]entity.Movie{
			1: {{Title: "The Matrix"}, {Title: "Inception"}},
			2: {{Title: "Alien"}},
		}
		feed := &mockCatalogFeed{
			FetchMoviesFunc: func(ctx context.Context, page int) ([]entity.Movie, error) {
				return pages[page], nil
			},
		}
		var inserted []string
		repo := &mockMovieRepository{
			InsertFunc: func(ctx context.Context, movie *entity.Movie) error {
				if movie.AddedDate.IsZero() {
					t.Errorf("AddedDate is not set for %q", movie.Title)
				}
				inserted = append(inserted, movie.Title)
				return nil
			},
		}
		limiter := &mockRateLimiter{}

		uc := NewImportUsecase(feed, repo, limiter)
		count, err := uc.ImportAll(ctx, 10)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 imported, got %d", count)
		}
		if len(inserted) != 3 {
			t.Errorf("expected 3 inserts, got %d", len(inserted))
		}
		// 1ページ目、2ページ目、空の3ページ目の3回待機する
		if limiter.waits != 3 {
			t.Errorf("expected 3 rate limiter waits, got %d", limiter.waits)
		}
	})

	t.Run("a failed insert is skipped and the rest is imported", func(t *testing.T) {
		feed := &mockCatalogFeed{
			FetchMoviesFunc: func(ctx context.Context, page int) ([]entity.Movie, error) {
				if page == 1 {
					return []entity.Movie{{Title: "The Matrix"}, {Title: "Broken"}, {Title: "Alien"}}, nil
				}
				return nil, nil
			},
		}
		repo := &mockMovieRepository{
			InsertFunc: func(ctx context.Context, movie *entity.Movie) error {
				if movie.Title == "Broken" {
					return errors.New("insert failed")
				}
				return nil
			},
		}

		uc := NewImportUsecase(feed, repo, &mockRateLimiter{})
		count, err := uc.ImportAll(ctx, 5)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 imported, got %d", count)
		}
	})

	t.Run("a feed error aborts the import", func(t *testing.T) {
		feed := &mockCatalogFeed{
			FetchMoviesFunc: func(ctx context.Context, page int) ([]entity.Movie, error) {
				if page == 1 {
					return []entity.Movie{{Title: "The Matrix"}}, nil
				}
				return nil, errors.New("feed unavailable")
			},
		}
		repo := &mockMovieRepository{
			InsertFunc: func(ctx context.Context, movie *entity.Movie) error { return nil },
		}

		uc := NewImportUsecase(feed, repo, &mockRateLimiter{})
		count, err := uc.ImportAll(ctx, 5)

		if err == nil {
			t.Fatal("expected error but got nil")
		}
		// 失敗前に取り込んだ件数は返す
		if count != 1 {
			t.Errorf("expected 1 imported before failure, got %d", count)
		}
	})

	t.Run("respects maxPages", func(t *testing.T) {
		calls := 0
		feed := &mockCatalogFeed{
			FetchMoviesFunc: func(ctx context.Context, page int) ([]entity.Movie, error) {
				calls++
				return []entity.Movie{{Title: "Endless"}}, nil
			},
		}
		repo := &mockMovieRepository{
			InsertFunc: func(ctx context.Context, movie *entity.Movie) error { return nil },
		}

		uc := NewImportUsecase(feed, repo, &mockRateLimiter{})
		count, err := uc.ImportAll(ctx, 3)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 feed calls, got %d", calls)
		}
		if count != 3 {
			t.Errorf("expected 3 imported, got %d", count)
		}
	})
}
