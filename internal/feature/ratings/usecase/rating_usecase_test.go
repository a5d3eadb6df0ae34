package usecase

import (
	"context"
	"errors"
	"testing"

	catalogentity "movie_browser/internal/feature/catalog/domain/entity"
	catalogusecase "movie_browser/internal/feature/catalog/usecase"
	"movie_browser/internal/feature/ratings/domain/entity"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// mockRatingRepository is a mock implementation of the RatingRepository interface.
type mockRatingRepository struct {
	InsertFunc          func(ctx context.Context, rating *entity.Rating) error
	ListByUserFunc      func(ctx context.Context, userID string) ([]entity.Rating, error)
	AverageForMovieFunc func(ctx context.Context, movieID string) (float64, error)
}

func (m *mockRatingRepository) Insert(ctx context.Context, rating *entity.Rating) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, rating)
	}
	return nil
}

func (m *mockRatingRepository) ListByUser(ctx context.Context, userID string) ([]entity.Rating, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRatingRepository) AverageForMovie(ctx context.Context, movieID string) (float64, error) {
	if m.AverageForMovieFunc != nil {
		return m.AverageForMovieFunc(ctx, movieID)
	}
	return 0, nil
}

// mockMovieFinder is a mock implementation of the MovieFinder interface.
type mockMovieFinder struct {
	FindByIDFunc func(ctx context.Context, id string) (*catalogentity.Movie, error)
}

func (m *mockMovieFinder) FindByID(ctx context.Context, id string) (*catalogentity.Movie, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, catalogusecase.ErrMovieNotFound
}

func TestRatingUsecase_RateMovie(t *testing.T) {
	ctx := context.Background()
	userID := bson.NewObjectID()
	movieID := bson.NewObjectID()

	existingMovie := &catalogentity.Movie{ID: movieID, Title: "The Matrix"}

	t.Run("valid rating is stored with trimmed review", func(t *testing.T) {
		var stored *entity.Rating
		repo := &mockRatingRepository{
			InsertFunc: func(ctx context.Context, rating *entity.Rating) error {
				stored = rating
				return nil
			},
		}
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				return existingMovie, nil
			},
		}

		uc := NewRatingUsecase(repo, finder)
		err := uc.RateMovie(ctx, userID.Hex(), movieID.Hex(), 8, "  great movie  ")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored == nil {
			t.Fatal("rating was not stored")
		}
		if stored.UserID != userID || stored.MovieID != movieID {
			t.Error("stored rating has wrong user or movie id")
		}
		if stored.Rating != 8 {
			t.Errorf("expected rating 8, got %d", stored.Rating)
		}
		if stored.Review != "great movie" {
			t.Errorf("expected trimmed review, got %q", stored.Review)
		}
		if stored.RatedDate.IsZero() {
			t.Error("RatedDate is not set")
		}
	})

	t.Run("ratings outside 1..10 are rejected before any lookup", func(t *testing.T) {
		looked := false
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				looked = true
				return existingMovie, nil
			},
		}
		uc := NewRatingUsecase(&mockRatingRepository{}, finder)

		for _, rating := range []int{0, -1, 11, 100} {
			if err := uc.RateMovie(ctx, userID.Hex(), movieID.Hex(), rating, ""); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("rating %d: expected ErrInvalidRating, got: %v", rating, err)
			}
		}
		if looked {
			t.Error("movie lookup must not happen for invalid ratings")
		}
	})

	t.Run("boundary ratings 1 and 10 are accepted", func(t *testing.T) {
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				return existingMovie, nil
			},
		}
		uc := NewRatingUsecase(&mockRatingRepository{}, finder)

		for _, rating := range []int{1, 10} {
			if err := uc.RateMovie(ctx, userID.Hex(), movieID.Hex(), rating, ""); err != nil {
				t.Errorf("rating %d: unexpected error: %v", rating, err)
			}
		}
	})

	t.Run("unknown movie yields ErrMovieNotFound", func(t *testing.T) {
		uc := NewRatingUsecase(&mockRatingRepository{}, &mockMovieFinder{})

		err := uc.RateMovie(ctx, userID.Hex(), movieID.Hex(), 5, "")
		if !errors.Is(err, catalogusecase.ErrMovieNotFound) {
			t.Errorf("expected ErrMovieNotFound, got: %v", err)
		}
	})

	t.Run("duplicate rating error from the repository passes through", func(t *testing.T) {
		repo := &mockRatingRepository{
			InsertFunc: func(ctx context.Context, rating *entity.Rating) error {
				return ErrAlreadyRated
			},
		}
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				return existingMovie, nil
			},
		}

		uc := NewRatingUsecase(repo, finder)
		err := uc.RateMovie(ctx, userID.Hex(), movieID.Hex(), 5, "")
		if !errors.Is(err, ErrAlreadyRated) {
			t.Errorf("expected ErrAlreadyRated, got: %v", err)
		}
	})
}

func TestRatingUsecase_ListRatedMovies(t *testing.T) {
	ctx := context.Background()
	userID := bson.NewObjectID()

	matrixID := bson.NewObjectID()
	danglingID := bson.NewObjectID()

	t.Run("joins movie data and skips dangling references", func(t *testing.T) {
		repo := &mockRatingRepository{
			ListByUserFunc: func(ctx context.Context, uid string) ([]entity.Rating, error) {
				return []entity.Rating{
					{UserID: userID, MovieID: matrixID, Rating: 9, Review: "classic"},
					{UserID: userID, MovieID: danglingID, Rating: 3},
				}, nil
			},
		}
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				if id == matrixID.Hex() {
					return &catalogentity.Movie{ID: matrixID, Title: "The Matrix"}, nil
				}
				return nil, catalogusecase.ErrMovieNotFound
			},
		}

		uc := NewRatingUsecase(repo, finder)
		out, err := uc.ListRatedMovies(ctx, userID.Hex())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("expected 1 rated movie, got %d", len(out))
		}
		if out[0].Movie.Title != "The Matrix" || out[0].Rating != 9 || out[0].Review != "classic" {
			t.Errorf("unexpected joined result: %+v", out[0])
		}
	})

	t.Run("no ratings yields an empty slice", func(t *testing.T) {
		uc := NewRatingUsecase(&mockRatingRepository{}, &mockMovieFinder{})

		out, err := uc.ListRatedMovies(ctx, userID.Hex())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("expected empty slice, got %d entries", len(out))
		}
	})

	t.Run("unexpected movie lookup error aborts the listing", func(t *testing.T) {
		repo := &mockRatingRepository{
			ListByUserFunc: func(ctx context.Context, uid string) ([]entity.Rating, error) {
				return []entity.Rating{{UserID: userID, MovieID: matrixID, Rating: 5}}, nil
			},
		}
		finder := &mockMovieFinder{
			FindByIDFunc: func(ctx context.Context, id string) (*catalogentity.Movie, error) {
				return nil, errors.New("db down")
			},
		}

		uc := NewRatingUsecase(repo, finder)
		if _, err := uc.ListRatedMovies(ctx, userID.Hex()); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}
