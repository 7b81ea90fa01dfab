package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, COALESCE(full_name, ''),
	age, COALESCE(gender, ''), COALESCE(location, ''), COALESCE(marital_status, ''),
	COALESCE(favorite_countries, ''), COALESCE(avatar_url, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Age, &u.Gender, &u.Location, &u.MaritalStatus,
		&u.FavoriteCountries, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. Duplicate username or email surfaces as
// models.ErrDuplicate.
func (r *UserRepository) CreateUser(u *models.User) (*models.User, error) {
	row := r.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, full_name, age,
			gender, location, marital_status, favorite_countries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns+`
	`, u.Username, u.Email, u.PasswordHash, u.FullName, u.Age,
		u.Gender, u.Location, u.MaritalStatus, u.FavoriteCountries)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetUserByID returns a user by internal ID.
func (r *UserRepository) GetUserByID(id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}

// GetUserByEmail returns a user by email.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}

// GetUserByUsername returns a user by username.
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return u, err
}

// UpdateUser applies a partial profile update. Only non-nil fields are
// written; passwordHash is updated when non-empty.
func (r *UserRepository) UpdateUser(id int, req *models.UpdateProfileRequest, passwordHash string) (*models.User, error) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Username != nil {
		addSet("username", *req.Username)
	}
	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Age != nil {
		addSet("age", *req.Age)
	}
	if req.Gender != nil {
		addSet("gender", *req.Gender)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.MaritalStatus != nil {
		addSet("marital_status", *req.MaritalStatus)
	}
	if req.FavoriteCountries != nil {
		addSet("favorite_countries", *req.FavoriteCountries)
	}
	if req.AvatarURL != nil {
		addSet("avatar_url", *req.AvatarURL)
	}
	if passwordHash != "" {
		addSet("password_hash", passwordHash)
	}

	if len(sets) == 0 {
		return r.GetUserByID(id)
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	u, err := scanUser(r.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// UpdateAvatar sets the avatar URL for a user.
func (r *UserRepository) UpdateAvatar(id int, avatarURL string) error {
	res, err := r.db.Exec(`UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`, avatarURL, id)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
