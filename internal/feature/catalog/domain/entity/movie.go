// Package entity defines the domain entities for the catalog feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Movie represents a catalog entry.
type Movie struct {
	// ID is the unique identifier for the movie.
	ID bson.ObjectID `bson:"_id,omitempty"`

	// Title is the movie's title. No uniqueness is enforced.
	Title string `bson:"title"`

	// ReleaseDate is a free-text date string as entered ("YYYY-MM-DD" by convention).
	ReleaseDate string `bson:"releaseDate"`

	// Genre is a free-text genre label.
	Genre string `bson:"genre"`

	// Director is the movie's director.
	Director string `bson:"director"`

	// AddedDate is the timestamp when the movie was added to the catalog.
	AddedDate time.Time `bson:"addedDate"`
}

// MovieSummary is a movie joined with its aggregate rating.
// AverageRating is 0.0 when the movie has no ratings.
type MovieSummary struct {
	Movie
	AverageRating float64
}
