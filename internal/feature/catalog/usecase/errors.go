// Package usecase implements the business logic for the catalog feature.
package usecase

import "errors"

var (
	// ErrMovieNotFound is returned when a movie cannot be found by ID.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrEmptyTitle is returned when attempting to add a movie without a title.
	ErrEmptyTitle = errors.New("movie title is required")
)
