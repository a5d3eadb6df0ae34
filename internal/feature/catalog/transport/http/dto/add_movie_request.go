// Package dto defines data transfer objects for the catalog feature's HTTP transport layer.
package dto

// AddMovieReq represents the request body for creating a movie.
// Only the title is mandatory; the other fields are free text.
type AddMovieReq struct {
	Title       string `json:"title" binding:"required"`
	ReleaseDate string `json:"release_date"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
}

// AddMovieRes represents the response body for a successfully created movie.
type AddMovieRes struct {
	ID string `json:"id"`
}
