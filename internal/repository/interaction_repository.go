package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

// InteractionRepository handles ratings, watchlist entries and watch history.
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// UpsertRating creates or replaces a user's rating for a movie. The unique
// constraint on (user_id, movie_id) keeps concurrent upserts from creating
// duplicates; updated_at is bumped on replacement.
func (r *InteractionRepository) UpsertRating(userID, movieID, rating int) (*models.Rating, error) {
	var rec models.Rating
	err := r.db.QueryRow(`
		INSERT INTO ratings (user_id, movie_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, user_id, movie_id, rating, created_at, updated_at
	`, userID, movieID, rating).Scan(
		&rec.ID, &rec.UserID, &rec.MovieID, &rec.Rating, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}
	return &rec, nil
}

// ListRatings returns a user's ratings, most recently updated first.
func (r *InteractionRepository) ListRatings(userID int) ([]models.Rating, error) {
	rows, err := r.db.Query(`
		SELECT rt.id, rt.user_id, rt.movie_id, m.title, COALESCE(m.poster_path, ''),
			rt.rating, rt.created_at, rt.updated_at
		FROM ratings rt
		INNER JOIN movies m ON m.id = rt.movie_id
		WHERE rt.user_id = $1
		ORDER BY rt.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		var rec models.Rating
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.MovieID, &rec.Title,
			&rec.PosterPath, &rec.Rating, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rec)
	}
	return ratings, rows.Err()
}

// GetRating returns a user's rating for one movie.
func (r *InteractionRepository) GetRating(userID, movieID int) (*models.Rating, error) {
	var rec models.Rating
	err := r.db.QueryRow(`
		SELECT id, user_id, movie_id, rating, created_at, updated_at
		FROM ratings WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID).Scan(
		&rec.ID, &rec.UserID, &rec.MovieID, &rec.Rating, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rating: %w", err)
	}
	return &rec, nil
}

// AddToWatchlist inserts a watchlist entry. Returns false if the entry
// already existed.
func (r *InteractionRepository) AddToWatchlist(userID, movieID int) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO watchlist (user_id, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RemoveFromWatchlist deletes a watchlist entry. Returns false if no entry
// existed.
func (r *InteractionRepository) RemoveFromWatchlist(userID, movieID int) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// InWatchlist reports whether a movie is on the user's watchlist.
func (r *InteractionRepository) InWatchlist(userID, movieID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND movie_id = $2)
	`, userID, movieID).Scan(&exists)
	return exists, err
}

// ListWatchlist returns a user's watchlist, most recently added first.
func (r *InteractionRepository) ListWatchlist(userID int) ([]models.WatchlistEntry, error) {
	rows, err := r.db.Query(`
		SELECT w.id, w.user_id, w.movie_id, m.title, COALESCE(m.poster_path, ''), w.added_at
		FROM watchlist w
		INNER JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.Title, &e.PosterPath, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddHistory appends a watch history entry.
func (r *InteractionRepository) AddHistory(userID, movieID int) (*models.HistoryEntry, error) {
	var e models.HistoryEntry
	err := r.db.QueryRow(`
		INSERT INTO watch_history (user_id, movie_id)
		VALUES ($1, $2)
		RETURNING id, movie_id, watched_at
	`, userID, movieID).Scan(&e.ID, &e.MovieID, &e.WatchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add history entry: %w", err)
	}
	return &e, nil
}

// ListHistory returns a user's watch history, newest first.
func (r *InteractionRepository) ListHistory(userID, limit int) ([]models.HistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT h.id, h.movie_id, m.title, COALESCE(m.poster_path, ''), h.watched_at
		FROM watch_history h
		INNER JOIN movies m ON m.id = h.movie_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.MovieID, &e.Title, &e.PosterPath, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteHistory removes all history entries for one movie. Returns the
// number of removed rows.
func (r *InteractionRepository) DeleteHistory(userID, movieID int) (int64, error) {
	res, err := r.db.Exec(`
		DELETE FROM watch_history WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete history: %w", err)
	}
	return res.RowsAffected()
}
