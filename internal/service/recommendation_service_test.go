package service

import (
	"math"
	"testing"
	"time"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

func defaultRules() []models.RecommendationRule {
	return []models.RecommendationRule{
		{RuleType: "popularity", Weight: 0.3, IsActive: true},
		{RuleType: "recency", Weight: 0.2, IsActive: true},
		{RuleType: "genre_match", Weight: 0.3, IsActive: true},
		{RuleType: "vote_average", Weight: 0.2, IsActive: true},
	}
}

func dateDaysAgo(days int) *string {
	d := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	return &d
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.02
}

func TestComputeRecencyScore(t *testing.T) {
	tests := []struct {
		name string
		date *string
		want float64
	}{
		{"nil date", nil, 0},
		{"released today", dateDaysAgo(0), 1.0},
		{"one year old", dateDaysAgo(365), 0.5},
		{"two years old", dateDaysAgo(730), 0.0},
		{"ancient", dateDaysAgo(5000), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRecencyScore(tt.date)
			if !approxEqual(got, tt.want) {
				t.Errorf("computeRecencyScore() = %v, want ~%v", got, tt.want)
			}
		})
	}

	bad := "not-a-date"
	if got := computeRecencyScore(&bad); got != 0 {
		t.Errorf("computeRecencyScore(malformed) = %v, want 0", got)
	}
}

func TestComputeGenreMatchScore(t *testing.T) {
	prefs := map[string]bool{"action": true, "thriller": true}

	tests := []struct {
		name   string
		genres []models.Genre
		want   float64
	}{
		{"no genres", nil, 0},
		{"full match", []models.Genre{{Name: "Action"}, {Name: "Thriller"}}, 1.0},
		{"half match", []models.Genre{{Name: "Action"}, {Name: "Comedy"}}, 0.5},
		{"no match", []models.Genre{{Name: "Comedy"}, {Name: "Romance"}}, 0},
		{"case insensitive", []models.Genre{{Name: "ACTION"}}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeGenreMatchScore(tt.genres, prefs)
			if got != tt.want {
				t.Errorf("computeGenreMatchScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreMoviesRanksPreferredGenresFirst(t *testing.T) {
	preferred := []models.Genre{{ID: 1, Name: "Action"}}
	movies := []models.MovieResponse{
		{
			ID: 1, Title: "Popular but off-genre",
			Popularity: 100, VoteAverage: 7.0,
			ReleaseDate: dateDaysAgo(3000),
			Genres:      []models.Genre{{Name: "Romance"}},
		},
		{
			ID: 2, Title: "Recent action hit",
			Popularity: 100, VoteAverage: 7.0,
			ReleaseDate: dateDaysAgo(30),
			Genres:      []models.Genre{{Name: "Action"}},
		},
	}

	scored := scoreMovies(movies, preferred, defaultRules())
	if len(scored) != 2 {
		t.Fatalf("scoreMovies() returned %d results, want 2", len(scored))
	}

	var offGenre, actionHit models.MovieRecommendation
	for _, rec := range scored {
		switch rec.ID {
		case 1:
			offGenre = rec
		case 2:
			actionHit = rec
		}
	}

	if actionHit.Score <= offGenre.Score {
		t.Errorf("preferred-genre recent movie scored %v, off-genre old movie scored %v", actionHit.Score, offGenre.Score)
	}
	if actionHit.Reason == "recommended for you" {
		t.Errorf("expected a specific reason, got %q", actionHit.Reason)
	}
}

func TestScoreMoviesNormalizesPopularity(t *testing.T) {
	movies := []models.MovieResponse{
		{ID: 1, Title: "Leader", Popularity: 400},
		{ID: 2, Title: "Trailer", Popularity: 100},
	}
	rules := []models.RecommendationRule{{RuleType: "popularity", Weight: 1.0, IsActive: true}}

	scored := scoreMovies(movies, nil, rules)
	byID := map[int]float64{}
	for _, rec := range scored {
		byID[rec.ID] = rec.Score
	}

	if !approxEqual(byID[1], 1.0) {
		t.Errorf("most popular movie score = %v, want 1.0", byID[1])
	}
	if !approxEqual(byID[2], 0.25) {
		t.Errorf("quarter-popularity movie score = %v, want 0.25", byID[2])
	}
}

func TestScoreMoviesWithoutRules(t *testing.T) {
	movies := []models.MovieResponse{{ID: 1, Title: "Anything", Popularity: 50, VoteAverage: 9.0}}

	scored := scoreMovies(movies, nil, nil)
	if len(scored) != 1 {
		t.Fatalf("scoreMovies() returned %d results, want 1", len(scored))
	}
	if scored[0].Score != 0 {
		t.Errorf("score without rules = %v, want 0", scored[0].Score)
	}
	if scored[0].Reason != "recommended for you" {
		t.Errorf("reason = %q, want fallback", scored[0].Reason)
	}
}

func TestScoreMoviesVoteAverageContribution(t *testing.T) {
	movies := []models.MovieResponse{{ID: 1, Title: "Acclaimed", Popularity: 10, VoteAverage: 8.5}}
	rules := []models.RecommendationRule{{RuleType: "vote_average", Weight: 1.0, IsActive: true}}

	scored := scoreMovies(movies, nil, rules)
	if !approxEqual(scored[0].Score, 0.85) {
		t.Errorf("vote-only score = %v, want 0.85", scored[0].Score)
	}
	if scored[0].Reason != "highly rated" {
		t.Errorf("reason = %q, want %q", scored[0].Reason, "highly rated")
	}
}

func TestScoreMoviesRoundsToFourDecimals(t *testing.T) {
	movies := []models.MovieResponse{{ID: 1, Title: "X", Popularity: 3, VoteAverage: 3.333}}
	rules := []models.RecommendationRule{{RuleType: "vote_average", Weight: 1.0, IsActive: true}}

	scored := scoreMovies(movies, nil, rules)
	got := scored[0].Score
	if got != math.Round(got*10000)/10000 {
		t.Errorf("score %v carries more than four decimal places", got)
	}
}
