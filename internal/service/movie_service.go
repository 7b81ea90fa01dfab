package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/repository"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/tmdb"
)

const (
	movieListCacheTTL   = 5 * time.Minute
	movieDetailCacheTTL = 30 * time.Minute
	genreListCacheTTL   = 1 * time.Hour
)

// MovieService handles catalog browsing and TMDB ingestion.
type MovieService struct {
	repo       *repository.MovieRepository
	tmdbClient *tmdb.Client
	redis      *redis.Client
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo *repository.MovieRepository, tmdbClient *tmdb.Client, rdb *redis.Client) *MovieService {
	return &MovieService{
		repo:       repo,
		tmdbClient: tmdbClient,
		redis:      rdb,
	}
}

// SyncMovies fetches movies from TMDB and stores them in PostgreSQL.
func (s *MovieService) SyncMovies(pages int) (int, error) {
	slog.Info("starting TMDB sync", "pages", pages)

	// First, sync genres
	genres, err := s.tmdbClient.GetGenres()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch TMDB genres: %w", err)
	}
	for _, g := range genres {
		if _, err := s.repo.UpsertGenre(g.ID, g.Name); err != nil {
			slog.Error("failed to upsert genre", "genre", g.Name, "error", err)
		}
	}
	slog.Info("synced genres", "count", len(genres))

	// Then, sync movies from discover endpoint
	totalSynced := 0
	for page := 1; page <= pages; page++ {
		result, err := s.tmdbClient.DiscoverMovies(page)
		if err != nil {
			slog.Error("failed to fetch TMDB page", "page", page, "error", err)
			continue
		}

		totalSynced += s.storeMovies(result.Results)
		slog.Info("synced page", "page", page, "movies", len(result.Results))
	}

	// Invalidate Redis cache after sync
	s.invalidateCache()

	slog.Info("TMDB sync completed", "total_synced", totalSynced)
	return totalSynced, nil
}

func (s *MovieService) storeMovies(tmdbMovies []tmdb.TMDBMovie) int {
	stored := 0
	for _, tmdbMovie := range tmdbMovies {
		movie := &models.Movie{
			TMDBId:           tmdbMovie.ID,
			Title:            tmdbMovie.Title,
			Overview:         tmdbMovie.Overview,
			ReleaseDate:      tmdbMovie.ReleaseDate,
			Popularity:       tmdbMovie.Popularity,
			VoteAverage:      tmdbMovie.VoteAverage,
			VoteCount:        tmdbMovie.VoteCount,
			PosterPath:       tmdbMovie.PosterPath,
			BackdropPath:     tmdbMovie.BackdropPath,
			OriginalLanguage: tmdbMovie.OriginalLanguage,
		}

		movieID, err := s.repo.UpsertMovie(movie)
		if err != nil {
			slog.Error("failed to upsert movie", "title", movie.Title, "error", err)
			continue
		}

		// Clear existing genre links and re-create
		_ = s.repo.ClearMovieGenres(movieID)
		for _, genreID := range tmdbMovie.GenreIDs {
			internalGenreID, err := s.repo.GetGenreIDByTMDBId(genreID)
			if err != nil {
				continue
			}
			_ = s.repo.LinkMovieGenre(movieID, internalGenreID)
		}

		stored++
	}
	return stored
}

// ListPopular returns a paginated list of movies ranked by popularity.
func (s *MovieService) ListPopular(page int) (*models.MovieListResponse, error) {
	params := models.MovieListParams{Page: page, SortBy: "popularity", Order: "desc"}
	return s.listMovies(params)
}

// Search returns movies whose title matches the query. When nothing is
// stored locally the TMDB catalog is searched, matches are ingested and the
// local query is retried.
func (s *MovieService) Search(query string, page int) (*models.MovieListResponse, error) {
	if query == "" {
		return nil, &models.ValidationError{Field: "query", Message: "is required"}
	}
	params := models.MovieListParams{Page: page, Query: query, SortBy: "popularity", Order: "desc"}

	result, err := s.listMovies(params)
	if err != nil {
		return nil, err
	}
	if result.TotalResults > 0 || s.tmdbClient == nil {
		return result, nil
	}

	tmdbResult, err := s.tmdbClient.SearchMovies(query, 1)
	if err != nil {
		slog.Warn("TMDB search fallback failed", "query", query, "error", err)
		return result, nil
	}
	if stored := s.storeMovies(tmdbResult.Results); stored > 0 {
		slog.Info("ingested TMDB search results", "query", query, "stored", stored)
		s.invalidateCache()
		return s.listMovies(params)
	}
	return result, nil
}

// ListByGenre returns movies in the given genre.
func (s *MovieService) ListByGenre(genreID, page int) (*models.MovieListResponse, error) {
	params := models.MovieListParams{Page: page, GenreID: genreID, SortBy: "popularity", Order: "desc"}
	return s.listMovies(params)
}

func (s *MovieService) listMovies(params models.MovieListParams) (*models.MovieListResponse, error) {
	params.Validate()

	cacheKey := fmt.Sprintf("movies:list:%d:%d:%s:%s:%s:%d",
		params.Page, params.PageSize, params.SortBy, params.Order,
		params.Query, params.GenreID)

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result models.MovieListResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	result, err := s.repo.ListMovies(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if data, err := json.Marshal(result); err == nil {
		s.setCache(cacheKey, string(data), movieListCacheTTL)
	}

	return result, nil
}

// GetMovieDetail returns one movie with genres by internal ID.
func (s *MovieService) GetMovieDetail(id int) (*models.MovieResponse, error) {
	cacheKey := fmt.Sprintf("movie:detail:%d", id)

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result models.MovieResponse
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &result, nil
		}
	}

	detail, err := s.repo.GetMovieByID(id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(detail); err == nil {
		s.setCache(cacheKey, string(data), movieDetailCacheTTL)
	}

	return detail, nil
}

// GetSimilar returns movies sharing a genre with the given movie.
func (s *MovieService) GetSimilar(movieID, limit int) ([]models.MovieResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	exists, err := s.repo.MovieExists(movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check movie: %w", err)
	}
	if !exists {
		return nil, models.ErrNotFound
	}

	return s.repo.GetSimilarMovies(movieID, limit)
}

// ListGenres returns all genres.
func (s *MovieService) ListGenres() ([]models.Genre, error) {
	cacheKey := "genres:all"

	if cached, err := s.getFromCache(cacheKey); err == nil {
		var genres []models.Genre
		if json.Unmarshal([]byte(cached), &genres) == nil {
			return genres, nil
		}
	}

	genres, err := s.repo.ListGenres()
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	if data, err := json.Marshal(genres); err == nil {
		s.setCache(cacheKey, string(data), genreListCacheTTL)
	}

	return genres, nil
}

// ---- Redis Helpers ----

func (s *MovieService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *MovieService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *MovieService) invalidateCache() {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	for _, pattern := range []string{"movies:*", "movie:*", "genres:*"} {
		iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			s.redis.Del(ctx, iter.Val())
		}
	}
	slog.Info("Redis cache invalidated")
}
