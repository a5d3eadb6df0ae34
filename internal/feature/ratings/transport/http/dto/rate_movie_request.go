// Package dto defines data transfer objects for the ratings feature's HTTP transport layer.
package dto

// RateMovieReq represents the request body for rating a movie.
// The rating is on a 1 to 10 scale and the review text is optional.
type RateMovieReq struct {
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
	Review string `json:"review"`
}

// RatedMovieItem is a rated movie as rendered to clients.
type RatedMovieItem struct {
	MovieID     string `json:"movie_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
}
