package dto

// MovieItem is a movie row as rendered to clients, including the aggregate rating.
type MovieItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ReleaseDate   string  `json:"release_date"`
	Genre         string  `json:"genre"`
	Director      string  `json:"director"`
	AverageRating float64 `json:"average_rating"`
}
