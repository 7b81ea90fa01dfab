package models

import "time"

// Allowed rating bounds. The product never pinned these down, so they live
// here as constants rather than user configuration.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a user's rating of a movie. At most one row exists per
// (user, movie); re-rating replaces the value and bumps updated_at.
type Rating struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RateMovieRequest is the request body for creating or updating a rating.
type RateMovieRequest struct {
	MovieID int `json:"movie_id"`
	Rating  int `json:"rating"`
}

// Validate checks that the rating is within the allowed scale.
func (r *RateMovieRequest) Validate() error {
	if r.MovieID <= 0 {
		return &ValidationError{Field: "movie_id", Message: "is required"}
	}
	if r.Rating < RatingMin || r.Rating > RatingMax {
		return &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	return nil
}

// WatchlistEntry is a movie saved to a user's watchlist.
type WatchlistEntry struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	AddedAt    time.Time `json:"added_at"`
}

// HistoryEntry is one record in a user's watch history log.
type HistoryEntry struct {
	ID         int       `json:"id"`
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	WatchedAt  time.Time `json:"watched_at"`
}

// MovieRefRequest carries a bare movie reference (watchlist toggle, history
// append).
type MovieRefRequest struct {
	MovieID int `json:"movie_id"`
}

// Validate checks the movie reference.
func (r *MovieRefRequest) Validate() error {
	if r.MovieID <= 0 {
		return &ValidationError{Field: "movie_id", Message: "is required"}
	}
	return nil
}

// ToggleWatchlistResponse reports the watchlist state after a toggle.
type ToggleWatchlistResponse struct {
	MovieID     int  `json:"movie_id"`
	InWatchlist bool `json:"in_watchlist"`
}
