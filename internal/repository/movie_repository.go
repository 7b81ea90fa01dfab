package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

// MovieRepository handles database operations for movies and genres.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// UpsertGenre inserts or updates a genre.
func (r *MovieRepository) UpsertGenre(tmdbID int, name string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO genres (tmdb_id, name)
		VALUES ($1, $2)
		ON CONFLICT (tmdb_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, tmdbID, name).Scan(&id)
	return id, err
}

// UpsertMovie inserts or updates a movie from catalog ingestion.
func (r *MovieRepository) UpsertMovie(m *models.Movie) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO movies (tmdb_id, title, overview, release_date, popularity,
			vote_average, vote_count, poster_path, backdrop_path, original_language, updated_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			release_date = EXCLUDED.release_date,
			popularity = EXCLUDED.popularity,
			vote_average = EXCLUDED.vote_average,
			vote_count = EXCLUDED.vote_count,
			poster_path = EXCLUDED.poster_path,
			backdrop_path = EXCLUDED.backdrop_path,
			original_language = EXCLUDED.original_language,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`, m.TMDBId, m.Title, m.Overview, nullableDate(m.ReleaseDate),
		m.Popularity, m.VoteAverage, m.VoteCount, m.PosterPath, m.BackdropPath,
		m.OriginalLanguage, time.Now()).Scan(&id)
	return id, err
}

// LinkMovieGenre creates the movie-genre association.
func (r *MovieRepository) LinkMovieGenre(movieID, genreID int) error {
	_, err := r.db.Exec(`
		INSERT INTO movie_genres (movie_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, movieID, genreID)
	return err
}

// ClearMovieGenres removes all genre links for a movie.
func (r *MovieRepository) ClearMovieGenres(movieID int) error {
	_, err := r.db.Exec(`DELETE FROM movie_genres WHERE movie_id = $1`, movieID)
	return err
}

// GetGenreIDByTMDBId returns the internal genre ID for a TMDB genre ID.
func (r *MovieRepository) GetGenreIDByTMDBId(tmdbID int) (int, error) {
	var id int
	err := r.db.QueryRow(`SELECT id FROM genres WHERE tmdb_id = $1`, tmdbID).Scan(&id)
	return id, err
}

// ListGenres returns all genres ordered by name.
func (r *MovieRepository) ListGenres() ([]models.Genre, error) {
	rows, err := r.db.Query(`SELECT id, tmdb_id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
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

// GetGenresByIDs returns genres matching the given internal IDs.
func (r *MovieRepository) GetGenresByIDs(ids []int) ([]models.Genre, error) {
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.db.Query(fmt.Sprintf(
		`SELECT id, tmdb_id, name FROM genres WHERE id IN (%s) ORDER BY name`,
		strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0, len(ids))
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.TMDBId, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

const movieSelect = `
	SELECT m.id, m.tmdb_id, m.title, COALESCE(m.overview, ''),
		COALESCE(TO_CHAR(m.release_date, 'YYYY-MM-DD'), ''),
		m.popularity, m.vote_average, m.vote_count,
		COALESCE(m.poster_path, ''), COALESCE(m.backdrop_path, '')
	FROM movies m`

func scanMovieResponse(rows *sql.Rows) (models.MovieResponse, error) {
	var resp models.MovieResponse
	var releaseDate, posterPath, backdropPath string
	err := rows.Scan(
		&resp.ID, &resp.TMDBId, &resp.Title, &resp.Overview,
		&releaseDate, &resp.Popularity, &resp.VoteAverage, &resp.VoteCount,
		&posterPath, &backdropPath,
	)
	if err != nil {
		return resp, err
	}
	shapeMovieResponse(&resp, releaseDate, posterPath, backdropPath)
	return resp, nil
}

func shapeMovieResponse(resp *models.MovieResponse, releaseDate, posterPath, backdropPath string) {
	resp.ReleaseDate = models.NormalizeReleaseDate(releaseDate)
	resp.PosterPath = models.NullablePath(posterPath)
	resp.BackdropPath = models.NullablePath(backdropPath)
	if posterPath != "" {
		resp.PosterURL = models.TMDBImageBaseW500 + posterPath
	}
	if backdropPath != "" {
		resp.BackdropURL = models.TMDBImageBaseW780 + backdropPath
	}
	resp.Genres = make([]models.Genre, 0)
}

// ListMovies returns a paginated list of movies matching the given filters.
func (r *MovieRepository) ListMovies(params models.MovieListParams) (*models.MovieListResponse, error) {
	conditions := []string{"1=1"}
	joins := ""
	args := []interface{}{}
	argIdx := 1

	if params.Query != "" {
		conditions = append(conditions, fmt.Sprintf("m.title ILIKE $%d", argIdx))
		args = append(args, "%"+params.Query+"%")
		argIdx++
	}
	if params.GenreID > 0 {
		joins = " INNER JOIN movie_genres mg ON mg.movie_id = m.id"
		conditions = append(conditions, fmt.Sprintf("mg.genre_id = $%d", argIdx))
		args = append(args, params.GenreID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Validate sort column to prevent SQL injection
	sortColumn := "popularity"
	switch params.SortBy {
	case "release_date":
		sortColumn = "release_date"
	case "title":
		sortColumn = "title"
	case "vote_average":
		sortColumn = "vote_average"
	}
	orderDir := "DESC"
	if params.Order == "asc" {
		orderDir = "ASC"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM movies m%s WHERE %s", joins, whereClause)
	var totalResults int
	if err := r.db.QueryRow(countQuery, args...).Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + params.PageSize - 1) / params.PageSize
	}

	listQuery := fmt.Sprintf(`%s%s
		WHERE %s
		ORDER BY m.%s %s NULLS LAST
		LIMIT $%d OFFSET $%d
	`, movieSelect, joins, whereClause, sortColumn, orderDir, argIdx, argIdx+1)

	args = append(args, params.PageSize, offset)

	rows, err := r.db.Query(listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.MovieResponse, 0)
	for rows.Next() {
		item, err := scanMovieResponse(rows)
		if err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		items = append(items, item)
	}

	return &models.MovieListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		Results:      items,
	}, nil
}

// GetMovieByID returns one movie with its genres.
func (r *MovieRepository) GetMovieByID(id int) (*models.MovieResponse, error) {
	rows, err := r.db.Query(movieSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, models.ErrNotFound
	}
	resp, err := scanMovieResponse(rows)
	if err != nil {
		return nil, err
	}

	genres, err := r.getMovieGenres(id)
	if err != nil {
		return nil, err
	}
	resp.Genres = genres
	return &resp, nil
}

func (r *MovieRepository) getMovieGenres(movieID int) ([]models.Genre, error) {
	rows, err := r.db.Query(`
		SELECT g.id, g.tmdb_id, g.name FROM genres g
		INNER JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie genres: %w", err)
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

// GetSimilarMovies returns movies sharing at least one genre with the given
// movie, ranked by popularity.
func (r *MovieRepository) GetSimilarMovies(movieID, limit int) ([]models.MovieResponse, error) {
	rows, err := r.db.Query(movieSelect+`
		WHERE m.id != $1 AND m.id IN (
			SELECT mg2.movie_id FROM movie_genres mg2
			WHERE mg2.genre_id IN (
				SELECT mg1.genre_id FROM movie_genres mg1 WHERE mg1.movie_id = $1
			)
		)
		ORDER BY m.popularity DESC
		LIMIT $2
	`, movieID, limit)
	if err != nil {
		return nil, fmt.Errorf("similar query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.MovieResponse, 0)
	for rows.Next() {
		item, err := scanMovieResponse(rows)
		if err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCandidateMovies returns movies for recommendation scoring, with their
// genres attached. When genreIDs is non-empty only movies in those genres are
// returned; movies the user already watched are excluded.
func (r *MovieRepository) GetCandidateMovies(userID int, genreIDs []int, limit int) ([]models.MovieResponse, error) {
	conditions := []string{
		`m.id NOT IN (SELECT wh.movie_id FROM watch_history wh WHERE wh.user_id = $1)`,
	}
	args := []interface{}{userID}
	argIdx := 2

	if len(genreIDs) > 0 {
		placeholders := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)
			args = append(args, id)
			argIdx++
		}
		conditions = append(conditions, fmt.Sprintf(
			`m.id IN (SELECT mg.movie_id FROM movie_genres mg WHERE mg.genre_id IN (%s))`,
			strings.Join(placeholders, ", ")))
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY m.popularity DESC
		LIMIT $%d
	`, movieSelect, strings.Join(conditions, " AND "), argIdx)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("candidate query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.MovieResponse, 0)
	ids := make([]int, 0)
	for rows.Next() {
		item, err := scanMovieResponse(rows)
		if err != nil {
			slog.Error("failed to scan movie row", "error", err)
			continue
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachGenres(items, ids); err != nil {
		return nil, err
	}
	return items, nil
}

// attachGenres loads genres for a batch of movies in one query.
func (r *MovieRepository) attachGenres(items []models.MovieResponse, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT mg.movie_id, g.id, g.tmdb_id, g.name FROM genres g
		INNER JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id IN (%s)
		ORDER BY g.name
	`, strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return fmt.Errorf("failed to query batch genres: %w", err)
	}
	defer rows.Close()

	byMovie := make(map[int][]models.Genre, len(ids))
	for rows.Next() {
		var movieID int
		var g models.Genre
		if err := rows.Scan(&movieID, &g.ID, &g.TMDBId, &g.Name); err != nil {
			return fmt.Errorf("failed to scan genre: %w", err)
		}
		byMovie[movieID] = append(byMovie[movieID], g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range items {
		if genres, ok := byMovie[items[i].ID]; ok {
			items[i].Genres = genres
		}
	}
	return nil
}

// MovieExists reports whether a movie with the given internal ID exists.
func (r *MovieRepository) MovieExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return exists, nil
}

func nullableDate(dateStr string) interface{} {
	if dateStr == "" {
		return nil
	}
	return dateStr
}
