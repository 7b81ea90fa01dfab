package models

import "time"

// Movie represents a movie stored in our database.
type Movie struct {
	ID               int       `json:"id"`
	TMDBId           int       `json:"tmdb_id"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	ReleaseDate      string    `json:"release_date"`
	Popularity       float64   `json:"popularity"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	PosterPath       string    `json:"poster_path"`
	BackdropPath     string    `json:"backdrop_path"`
	OriginalLanguage string    `json:"original_language"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Genre represents a movie genre.
type Genre struct {
	ID     int    `json:"id"`
	TMDBId int    `json:"tmdb_id"`
	Name   string `json:"name"`
}

// MovieResponse is the response shape for a movie. ReleaseDate is either
// null or formatted YYYY-MM-DD; Genres always serializes as a list.
type MovieResponse struct {
	ID           int      `json:"id"`
	TMDBId       int      `json:"tmdb_id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	ReleaseDate  *string  `json:"release_date"`
	VoteAverage  float64  `json:"vote_average"`
	VoteCount    int      `json:"vote_count"`
	Popularity   float64  `json:"popularity"`
	Genres       []Genre  `json:"genres"`
	PosterURL    string   `json:"poster_url,omitempty"`
	BackdropURL  string   `json:"backdrop_url,omitempty"`
}

// MovieListResponse is the paginated movie listing response.
type MovieListResponse struct {
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Results      []MovieResponse `json:"results"`
}

// MovieListParams holds query parameters for movie listing.
type MovieListParams struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Query    string `query:"query"`
	GenreID  int    `query:"genre_id"`
	SortBy   string `query:"sort_by"`
	Order    string `query:"order"`
}

// Validate sets defaults and clamps parameters.
func (p *MovieListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	if p.SortBy == "" {
		p.SortBy = "popularity"
	}
	validSorts := map[string]bool{"release_date": true, "title": true, "popularity": true, "vote_average": true}
	if !validSorts[p.SortBy] {
		p.SortBy = "popularity"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	TMDBImageBaseW780 = "https://image.tmdb.org/t/p/w780"
)

// NormalizeReleaseDate returns nil for an empty date so responses carry an
// explicit null instead of an empty string. Stored dates are already shaped
// YYYY-MM-DD by the query layer.
func NormalizeReleaseDate(date string) *string {
	if date == "" {
		return nil
	}
	return &date
}

// NullablePath returns nil for an empty image path.
func NullablePath(path string) *string {
	if path == "" {
		return nil
	}
	return &path
}
