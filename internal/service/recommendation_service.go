package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/repository"
)

const (
	recommendationCacheTTL = 10 * time.Minute
	candidatePoolSize      = 200
	recencyDecayDays       = 730.0
)

// RecommendationService scores candidate movies against a user's genre
// preferences and watch history.
type RecommendationService struct {
	repo   *repository.RecommendationRepository
	movies *repository.MovieRepository
	prefs  *repository.PreferenceRepository
	redis  *redis.Client
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	repo *repository.RecommendationRepository,
	movies *repository.MovieRepository,
	prefs *repository.PreferenceRepository,
	rdb *redis.Client,
) *RecommendationService {
	return &RecommendationService{
		repo:   repo,
		movies: movies,
		prefs:  prefs,
		redis:  rdb,
	}
}

// GetPersonalized generates recommendations for a user: candidate movies in
// the user's preferred genres (all genres when no preferences are set),
// excluding already-watched ones, scored by weighted rules.
func (s *RecommendationService) GetPersonalized(ctx context.Context, userID, limit int) (*models.RecommendationResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 12
	}

	cacheKey := fmt.Sprintf("recommendations:%d:%d", userID, limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var resp models.RecommendationResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			slog.Debug("recommendations cache hit", "user_id", userID)
			return &resp, nil
		}
	}

	preferred, err := s.prefs.GetPreferredGenres(userID)
	if err != nil {
		slog.Warn("could not fetch genre preferences, using defaults", "user_id", userID, "error", err)
		preferred = []models.Genre{}
	}

	genreIDs := make([]int, 0, len(preferred))
	for _, g := range preferred {
		genreIDs = append(genreIDs, g.ID)
	}

	candidates, err := s.movies.GetCandidateMovies(userID, genreIDs, candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	if len(candidates) == 0 {
		return &models.RecommendationResponse{
			UserID:          userID,
			Recommendations: []models.MovieRecommendation{},
			GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	rules, err := s.repo.GetActiveRules()
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	scored := scoreMovies(candidates, preferred, rules)

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	// Persist snapshots asynchronously
	go func() {
		_ = s.repo.ClearSnapshots(userID)
		for _, rec := range scored {
			_ = s.repo.UpsertSnapshot(userID, rec.ID, rec.Score)
		}
	}()

	resp := &models.RecommendationResponse{
		UserID:          userID,
		Recommendations: scored,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if data, err := json.Marshal(resp); err == nil {
		s.setCache(ctx, cacheKey, string(data), recommendationCacheTTL)
	}

	return resp, nil
}

// GetByGenre returns the top movies of one genre ranked by the same scoring
// rules, without personalization.
func (s *RecommendationService) GetByGenre(ctx context.Context, genreID, limit int) ([]models.MovieRecommendation, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	candidates, err := s.movies.GetCandidateMovies(0, []int{genreID}, candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	rules, err := s.repo.GetActiveRules()
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	scored := scoreMovies(candidates, nil, rules)
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// scoreMovies applies weighted scoring rules to each candidate.
func scoreMovies(
	movies []models.MovieResponse,
	preferred []models.Genre,
	rules []models.RecommendationRule,
) []models.MovieRecommendation {
	ruleWeights := make(map[string]float64)
	for _, r := range rules {
		ruleWeights[r.RuleType] = r.Weight
	}

	// Find max popularity for normalization
	var maxPop float64
	for _, m := range movies {
		if m.Popularity > maxPop {
			maxPop = m.Popularity
		}
	}
	if maxPop == 0 {
		maxPop = 1
	}

	prefGenreSet := make(map[string]bool)
	for _, g := range preferred {
		prefGenreSet[strings.ToLower(g.Name)] = true
	}

	results := make([]models.MovieRecommendation, 0, len(movies))
	for _, m := range movies {
		var totalScore float64
		var reasons []string

		if w, ok := ruleWeights["popularity"]; ok {
			popScore := m.Popularity / maxPop
			totalScore += popScore * w
			if popScore > 0.7 {
				reasons = append(reasons, "highly popular")
			}
		}

		if w, ok := ruleWeights["recency"]; ok {
			recencyScore := computeRecencyScore(m.ReleaseDate)
			totalScore += recencyScore * w
			if recencyScore > 0.7 {
				reasons = append(reasons, "recently released")
			}
		}

		if w, ok := ruleWeights["genre_match"]; ok && len(prefGenreSet) > 0 {
			genreScore := computeGenreMatchScore(m.Genres, prefGenreSet)
			totalScore += genreScore * w
			if genreScore > 0 {
				reasons = append(reasons, "matches your preferred genres")
			}
		}

		if w, ok := ruleWeights["vote_average"]; ok {
			voteScore := m.VoteAverage / 10.0
			totalScore += voteScore * w
			if m.VoteAverage >= 8.0 {
				reasons = append(reasons, "highly rated")
			}
		}

		totalScore = math.Round(totalScore*10000) / 10000

		reason := "recommended for you"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, ", ")
		}

		results = append(results, models.MovieRecommendation{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Genres:      m.Genres,
			Popularity:  m.Popularity,
			VoteAverage: m.VoteAverage,
			PosterURL:   m.PosterURL,
			Score:       totalScore,
			Reason:      reason,
		})
	}

	return results
}

func computeRecencyScore(releaseDate *string) float64 {
	if releaseDate == nil {
		return 0.0
	}
	t, err := time.Parse("2006-01-02", *releaseDate)
	if err != nil {
		return 0.0
	}
	daysSince := time.Since(t).Hours() / 24
	if daysSince < 0 {
		daysSince = 0
	}
	// Score decays linearly over 730 days (2 years)
	score := 1.0 - (daysSince / recencyDecayDays)
	if score < 0 {
		score = 0
	}
	return score
}

func computeGenreMatchScore(movieGenres []models.Genre, preferredGenres map[string]bool) float64 {
	if len(movieGenres) == 0 {
		return 0.0
	}
	matches := 0
	for _, g := range movieGenres {
		if preferredGenres[strings.ToLower(g.Name)] {
			matches++
		}
	}
	return float64(matches) / float64(len(movieGenres))
}

// Redis helpers

func (s *RecommendationService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *RecommendationService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
