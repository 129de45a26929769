package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

// SetRepository reads internship cohorts. Sets are managed elsewhere; the
// API only consumes them.
type SetRepository struct {
	db *sqlx.DB
}

// NewSetRepository constructs the repository.
func NewSetRepository(db *sqlx.DB) *SetRepository {
	return &SetRepository{db: db}
}

// GetByID fetches a set by identifier.
func (r *SetRepository) GetByID(ctx context.Context, id string) (*models.Set, error) {
	const query = `SELECT id, year, start_date, end_date, active, editable FROM sets WHERE id = $1`
	var set models.Set
	if err := r.db.GetContext(ctx, &set, query, id); err != nil {
		return nil, err
	}
	return &set, nil
}

// List returns all sets, most recent year first.
func (r *SetRepository) List(ctx context.Context) ([]models.Set, error) {
	const query = `SELECT id, year, start_date, end_date, active, editable FROM sets ORDER BY year DESC, id`
	var sets []models.Set
	if err := r.db.SelectContext(ctx, &sets, query); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}
