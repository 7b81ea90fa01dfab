package repository

import (
	"database/sql"
	"fmt"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

// PreferenceRepository handles genre preferences.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// ReplacePreferences replaces the user's preferred genre set atomically.
func (r *PreferenceRepository) ReplacePreferences(userID int, genreIDs []int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM genre_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(`
			INSERT INTO genre_preferences (user_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, genreID); err != nil {
			return fmt.Errorf("failed to insert preference: %w", err)
		}
	}

	return tx.Commit()
}

// GetPreferredGenres returns the user's preferred genres.
func (r *PreferenceRepository) GetPreferredGenres(userID int) ([]models.Genre, error) {
	rows, err := r.db.Query(`
		SELECT g.id, g.tmdb_id, g.name FROM genres g
		INNER JOIN genre_preferences gp ON gp.genre_id = g.id
		WHERE gp.user_id = $1
		ORDER BY g.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.TMDBId, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}
