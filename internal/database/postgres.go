package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) DEFAULT '',
			age INTEGER,
			gender VARCHAR(50) DEFAULT '',
			location VARCHAR(255) DEFAULT '',
			marital_status VARCHAR(50) DEFAULT '',
			favorite_countries VARCHAR(500) DEFAULT '',
			avatar_url VARCHAR(500) DEFAULT '',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id SERIAL PRIMARY KEY,
			tmdb_id INTEGER UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id SERIAL PRIMARY KEY,
			tmdb_id INTEGER UNIQUE NOT NULL,
			title VARCHAR(500) NOT NULL,
			overview TEXT DEFAULT '',
			release_date DATE,
			popularity DOUBLE PRECISION DEFAULT 0,
			vote_average DOUBLE PRECISION DEFAULT 0,
			vote_count INTEGER DEFAULT 0,
			poster_path VARCHAR(500) DEFAULT '',
			backdrop_path VARCHAR(500) DEFAULT '',
			original_language VARCHAR(10) DEFAULT 'en',
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id INTEGER REFERENCES movies(id) ON DELETE CASCADE,
			genre_id INTEGER REFERENCES genres(id) ON DELETE CASCADE,
			PRIMARY KEY (movie_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS watch_history (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER REFERENCES movies(id) ON DELETE CASCADE,
			watched_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER REFERENCES movies(id) ON DELETE CASCADE,
			added_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, movie_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			movie_id INTEGER REFERENCES movies(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, movie_id)
		)`,
		`CREATE TABLE IF NOT EXISTS genre_preferences (
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			genre_id INTEGER REFERENCES genres(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recommendation_rules (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			weight DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			rule_type VARCHAR(50) NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_recommendation_snapshots (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			movie_id INTEGER NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			generated_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, movie_id)
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies(popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_tmdb_id ON movies(tmdb_id)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_history_user_id ON watch_history(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_user_id ON watchlist(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_user_id ON ratings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user_id ON user_recommendation_snapshots(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_score ON user_recommendation_snapshots(score DESC)`,
		// Seed default scoring rules if none exist
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Popularity Score', 0.3, 'popularity'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'popularity')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Recency Bonus', 0.2, 'recency'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'recency')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Genre Match', 0.3, 'genre_match'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'genre_match')`,
		`INSERT INTO recommendation_rules (name, weight, rule_type)
		 SELECT 'Vote Average', 0.2, 'vote_average'
		 WHERE NOT EXISTS (SELECT 1 FROM recommendation_rules WHERE rule_type = 'vote_average')`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
