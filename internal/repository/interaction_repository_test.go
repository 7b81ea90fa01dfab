package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/models"
)

var ratingColumns = []string{"id", "user_id", "movie_id", "rating", "created_at", "updated_at"}

const upsertRatingPattern = `INSERT INTO ratings[\s\S]*ON CONFLICT \(user_id, movie_id\)[\s\S]*DO UPDATE SET rating = EXCLUDED\.rating, updated_at = NOW\(\)`

// Re-rating must replace the stored value on the same row and bump
// updated_at past created_at.
func TestUpsertRatingReplacesValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()
	repo := NewInteractionRepository(db)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(upsertRatingPattern).
		WithArgs(7, 42, 5).
		WillReturnRows(sqlmock.NewRows(ratingColumns).AddRow(1, 7, 42, 5, created, created))

	first, err := repo.UpsertRating(7, 42, 5)
	if err != nil {
		t.Fatalf("UpsertRating() error = %v", err)
	}
	if first.Rating != 5 {
		t.Errorf("first rating = %d, want 5", first.Rating)
	}

	replaced := created.Add(3 * time.Minute)
	mock.ExpectQuery(upsertRatingPattern).
		WithArgs(7, 42, 3).
		WillReturnRows(sqlmock.NewRows(ratingColumns).AddRow(1, 7, 42, 3, created, replaced))

	second, err := repo.UpsertRating(7, 42, 3)
	if err != nil {
		t.Fatalf("UpsertRating() re-rate error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-rate created row %d, want same row %d", second.ID, first.ID)
	}
	if second.Rating != 3 {
		t.Errorf("re-rated value = %d, want 3", second.Rating)
	}
	if !second.UpdatedAt.After(second.CreatedAt) {
		t.Errorf("updated_at %v is not after created_at %v", second.UpdatedAt, second.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetRating(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()
	repo := NewInteractionRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, movie_id, rating, created_at, updated_at[\s\S]*FROM ratings`).
		WithArgs(7, 42).
		WillReturnRows(sqlmock.NewRows(ratingColumns).AddRow(1, 7, 42, 4, now, now))

	rec, err := repo.GetRating(7, 42)
	if err != nil {
		t.Fatalf("GetRating() error = %v", err)
	}
	if rec.MovieID != 42 || rec.Rating != 4 {
		t.Errorf("GetRating() = movie %d rating %d, want movie 42 rating 4", rec.MovieID, rec.Rating)
	}

	mock.ExpectQuery(`SELECT id, user_id, movie_id, rating, created_at, updated_at[\s\S]*FROM ratings`).
		WithArgs(7, 99).
		WillReturnRows(sqlmock.NewRows(ratingColumns))

	if _, err := repo.GetRating(7, 99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetRating() unrated movie error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
