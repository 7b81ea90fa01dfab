package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/auth"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/config"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
	"github.com/aravind-gm/CINEPLEXFINAL/internal/repository"
)

const (
	prefCacheTTL = 10 * time.Minute

	maxAvatarSize = 5 << 20 // 5 MiB
)

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UserService handles profile management and user-movie interactions.
type UserService struct {
	users        *repository.UserRepository
	interactions *repository.InteractionRepository
	prefs        *repository.PreferenceRepository
	movies       *repository.MovieRepository
	redis        *redis.Client
	upload       config.UploadConfig
}

// NewUserService creates a new UserService.
func NewUserService(
	users *repository.UserRepository,
	interactions *repository.InteractionRepository,
	prefs *repository.PreferenceRepository,
	movies *repository.MovieRepository,
	rdb *redis.Client,
	upload config.UploadConfig,
) *UserService {
	return &UserService{
		users:        users,
		interactions: interactions,
		prefs:        prefs,
		movies:       movies,
		redis:        rdb,
		upload:       upload,
	}
}

// GetUser returns a user's public profile.
func (s *UserService) GetUser(userID int) (*models.UserResponse, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	resp := user.Response()
	return &resp, nil
}

// GetDemographics returns the user's demographic fields.
func (s *UserService) GetDemographics(userID int) (*models.Demographics, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	demo := user.Demographics()
	return &demo, nil
}

// UpdateProfile applies a partial profile update. Absent fields never
// overwrite stored values; a present password is re-hashed.
func (s *UserService) UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash := ""
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = hash
	}

	user, err := s.users.UpdateUser(userID, req, passwordHash)
	if err != nil {
		return nil, err
	}
	resp := user.Response()
	return &resp, nil
}

// SaveAvatar stores an uploaded avatar under the avatar directory with a
// random filename and updates the user's avatar URL.
func (s *UserService) SaveAvatar(userID int, file *multipart.FileHeader) (*models.UserResponse, error) {
	if file.Size > maxAvatarSize {
		return nil, &models.ValidationError{Field: "avatar", Message: "file too large"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		return nil, &models.ValidationError{Field: "avatar", Message: "unsupported file type"}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.NewString() + ext
	dstPath := filepath.Join(s.upload.AvatarDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write avatar file: %w", err)
	}

	avatarURL := "/uploads/avatars/" + filename
	if err := s.users.UpdateAvatar(userID, avatarURL); err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	slog.Info("avatar uploaded", "user_id", userID, "file", filename)
	return s.GetUser(userID)
}

// ListAvatars returns the URLs of all stored avatar images.
func (s *UserService) ListAvatars() ([]string, error) {
	entries, err := os.ReadDir(s.upload.AvatarDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar directory: %w", err)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if allowedAvatarExts[strings.ToLower(filepath.Ext(e.Name()))] {
			urls = append(urls, "/uploads/avatars/"+e.Name())
		}
	}
	return urls, nil
}

// ToggleWatchlist adds the movie to the watchlist if absent, removes it if
// present, and reports the final state.
func (s *UserService) ToggleWatchlist(userID int, req *models.MovieRefRequest) (*models.ToggleWatchlistResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireMovie(req.MovieID); err != nil {
		return nil, err
	}

	added, err := s.interactions.AddToWatchlist(userID, req.MovieID)
	if err != nil {
		return nil, err
	}
	if !added {
		// Already present: toggle means remove.
		if _, err := s.interactions.RemoveFromWatchlist(userID, req.MovieID); err != nil {
			return nil, err
		}
	}

	return &models.ToggleWatchlistResponse{
		MovieID:     req.MovieID,
		InWatchlist: added,
	}, nil
}

// GetWatchlist returns the user's watchlist.
func (s *UserService) GetWatchlist(userID int) ([]models.WatchlistEntry, error) {
	return s.interactions.ListWatchlist(userID)
}

// AddToHistory appends a watch history entry.
func (s *UserService) AddToHistory(userID int, req *models.MovieRefRequest) (*models.HistoryEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireMovie(req.MovieID); err != nil {
		return nil, err
	}
	return s.interactions.AddHistory(userID, req.MovieID)
}

// GetHistory returns the user's watch history, newest first.
func (s *UserService) GetHistory(userID, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	return s.interactions.ListHistory(userID, limit)
}

// RemoveFromHistory deletes all history entries for one movie.
func (s *UserService) RemoveFromHistory(userID, movieID int) error {
	n, err := s.interactions.DeleteHistory(userID, movieID)
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RateMovie creates or replaces the user's rating for a movie.
func (s *UserService) RateMovie(userID int, req *models.RateMovieRequest) (*models.Rating, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireMovie(req.MovieID); err != nil {
		return nil, err
	}
	return s.interactions.UpsertRating(userID, req.MovieID, req.Rating)
}

// GetRatings returns the user's ratings.
func (s *UserService) GetRatings(userID int) ([]models.Rating, error) {
	return s.interactions.ListRatings(userID)
}

// GetRating returns the user's rating for one movie, ErrNotFound when the
// movie was never rated.
func (s *UserService) GetRating(userID, movieID int) (*models.Rating, error) {
	return s.interactions.GetRating(userID, movieID)
}

// SetGenrePreferences replaces the user's preferred genres.
func (s *UserService) SetGenrePreferences(userID int, req *models.SetGenrePreferencesRequest) (*models.GenrePreferencesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.prefs.ReplacePreferences(userID, req.GenreIDs); err != nil {
		return nil, err
	}

	s.delCache(fmt.Sprintf("user:pref:%d", userID))
	// Cached recommendations were scored against the old preferences.
	s.delCachePattern(fmt.Sprintf("recommendations:%d:*", userID))

	genres, err := s.movies.GetGenresByIDs(req.GenreIDs)
	if err != nil {
		return nil, err
	}
	return &models.GenrePreferencesResponse{Genres: genres}, nil
}

// GetGenrePreferences returns the user's preferred genres.
func (s *UserService) GetGenrePreferences(userID int) (*models.GenrePreferencesResponse, error) {
	cacheKey := fmt.Sprintf("user:pref:%d", userID)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var resp models.GenrePreferencesResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return &resp, nil
		}
	}

	genres, err := s.prefs.GetPreferredGenres(userID)
	if err != nil {
		return nil, err
	}

	resp := &models.GenrePreferencesResponse{Genres: genres}
	if data, err := json.Marshal(resp); err == nil {
		s.setCache(cacheKey, string(data), prefCacheTTL)
	}
	return resp, nil
}

func (s *UserService) requireMovie(movieID int) error {
	exists, err := s.movies.MovieExists(movieID)
	if err != nil {
		return fmt.Errorf("failed to check movie: %w", err)
	}
	if !exists {
		return models.ErrNotFound
	}
	return nil
}

// Redis helpers

func (s *UserService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *UserService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *UserService) delCache(key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(context.Background(), key)
}

func (s *UserService) delCachePattern(pattern string) {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
}
