package usecase

import (
	"context"
	"strings"
	"time"

	"movie_browser/internal/feature/catalog/domain/entity"
)

// MovieRepository abstracts the persistence layer for movie documents.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MovieRepository interface {
	// Insert persists a new movie and sets the assigned id on the entity.
	Insert(ctx context.Context, movie *entity.Movie) error

	// FindByID retrieves a movie by its hex id.
	// It returns ErrMovieNotFound if no such movie exists.
	FindByID(ctx context.Context, id string) (*entity.Movie, error)

	// Search returns movies whose title contains term as a case-insensitive
	// substring. An empty term matches every movie. Results are ordered by
	// title, then id, so repeated searches are stable.
	Search(ctx context.Context, term string) ([]entity.Movie, error)
}

// RatingStatsRepository provides aggregate rating statistics.
type RatingStatsRepository interface {
	// AverageForMovie returns the movie's mean rating rounded to one decimal
	// place, or 0.0 if the movie has no ratings.
	AverageForMovie(ctx context.Context, movieID string) (float64, error)
}

// CatalogUsecase provides business logic for browsing and growing the movie catalog.
type CatalogUsecase struct {
	movies MovieRepository
	stats  RatingStatsRepository
}

// NewCatalogUsecase creates a new CatalogUsecase with the given repositories.
func NewCatalogUsecase(movies MovieRepository, stats RatingStatsRepository) *CatalogUsecase {
	return &CatalogUsecase{movies: movies, stats: stats}
}

// AddMovie persists a new movie and returns its id.
// The title must be non-blank; all other fields are free text.
func (u *CatalogUsecase) AddMovie(ctx context.Context, title, releaseDate, genre, director string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	movie := &entity.Movie{
		Title:       title,
		ReleaseDate: releaseDate,
		Genre:       genre,
		Director:    director,
		AddedDate:   time.Now(),
	}
	if err := u.movies.Insert(ctx, movie); err != nil {
		return "", err
	}
	return movie.ID.Hex(), nil
}

// SearchMovies returns movies matching term, each joined with its average rating.
// An empty or blank term returns the whole catalog.
func (u *CatalogUsecase) SearchMovies(ctx context.Context, term string) ([]entity.MovieSummary, error) {
	movies, err := u.movies.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}

	out := make([]entity.MovieSummary, 0, len(movies))
	for _, m := range movies {
		avg, err := u.stats.AverageForMovie(ctx, m.ID.Hex())
		if err != nil {
			return nil, err
		}
		out = append(out, entity.MovieSummary{Movie: m, AverageRating: avg})
	}
	return out, nil
}

// AverageRating returns the movie's mean rating (0.0 when unrated).
func (u *CatalogUsecase) AverageRating(ctx context.Context, movieID string) (float64, error) {
	return u.stats.AverageForMovie(ctx, movieID)
}
