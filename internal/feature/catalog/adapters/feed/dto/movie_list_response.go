// Package dto defines the wire format of the catalog feed API.
package dto

// MovieListResponse is the response body of the feed's /movies endpoint.
type MovieListResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Page    int         `json:"page"`
	Movies  []MovieItem `json:"movies"`
}

// MovieItem is a single movie record in the feed.
type MovieItem struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
}
