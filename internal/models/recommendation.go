package models

import "time"

// RecommendationRule defines a weighted scoring rule.
type RecommendationRule struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	RuleType  string    `json:"rule_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendationSnapshot stores a computed recommendation score.
type RecommendationSnapshot struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	MovieID     int       `json:"movie_id"`
	Score       float64   `json:"score"`
	GeneratedAt time.Time `json:"generated_at"`
}

// MovieRecommendation is the response shape for a recommended movie.
type MovieRecommendation struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate *string  `json:"release_date"`
	Genres      []Genre  `json:"genres"`
	Popularity  float64  `json:"popularity"`
	VoteAverage float64  `json:"vote_average"`
	PosterURL   string   `json:"poster_url,omitempty"`
	Score       float64  `json:"score"`
	Reason      string   `json:"reason"`
}

// RecommendationResponse wraps the recommendation list.
type RecommendationResponse struct {
	UserID          int                   `json:"user_id"`
	Recommendations []MovieRecommendation `json:"recommendations"`
	GeneratedAt     string                `json:"generated_at"`
}
