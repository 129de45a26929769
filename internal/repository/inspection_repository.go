package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

// InspectionRepository persists inspection history rows.
type InspectionRepository struct {
	db *sqlx.DB
}

// NewInspectionRepository constructs the repository.
func NewInspectionRepository(db *sqlx.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// Create inserts a new inspection row.
func (r *InspectionRepository) Create(ctx context.Context, inspection *models.Inspection) error {
	if inspection.ID == "" {
		inspection.ID = uuid.NewString()
	}
	if inspection.CreatedAt.IsZero() {
		inspection.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO inspections (id, internship_id, user_id, date, result, kind, note, created_at)
	VALUES (:id, :internship_id, :user_id, :date, :result, :kind, :note, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inspection); err != nil {
		return fmt.Errorf("create inspection: %w", err)
	}
	return nil
}

// GetByID fetches an inspection by identifier.
func (r *InspectionRepository) GetByID(ctx context.Context, id string) (*models.Inspection, error) {
	const query = `SELECT id, internship_id, user_id, date, result, kind, note, created_at
	FROM inspections WHERE id = $1`
	var inspection models.Inspection
	if err := r.db.GetContext(ctx, &inspection, query, id); err != nil {
		return nil, err
	}
	return &inspection, nil
}

// ListByInternship returns the inspection history of one internship, newest
// first.
func (r *InspectionRepository) ListByInternship(ctx context.Context, internshipID string) ([]models.Inspection, error) {
	const query = `SELECT id, internship_id, user_id, date, result, kind, note, created_at
	FROM inspections WHERE internship_id = $1 ORDER BY date DESC, id`
	var inspections []models.Inspection
	if err := r.db.SelectContext(ctx, &inspections, query, internshipID); err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return inspections, nil
}

// Delete removes an inspection. The creator condition is part of the delete
// itself so a stale read cannot remove someone else's record.
func (r *InspectionRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM inspections WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete inspection: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check inspection delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
