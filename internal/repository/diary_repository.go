package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

// DiaryRepository persists internship diary entries.
type DiaryRepository struct {
	db *sqlx.DB
}

// NewDiaryRepository constructs the repository.
func NewDiaryRepository(db *sqlx.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// Create inserts a new diary entry.
func (r *DiaryRepository) Create(ctx context.Context, entry *models.DiaryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO diary_entries (id, internship_id, user_id, date, text, created_at)
	VALUES (:id, :internship_id, :user_id, :date, :text, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create diary entry: %w", err)
	}
	return nil
}

// ListByInternship returns the diary of one internship in date order.
func (r *DiaryRepository) ListByInternship(ctx context.Context, internshipID string) ([]models.DiaryEntry, error) {
	const query = `SELECT id, internship_id, user_id, date, text, created_at
	FROM diary_entries WHERE internship_id = $1 ORDER BY date, id`
	var entries []models.DiaryEntry
	if err := r.db.SelectContext(ctx, &entries, query, internshipID); err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}
