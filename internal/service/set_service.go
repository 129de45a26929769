package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type setStore interface {
	GetByID(ctx context.Context, id string) (*models.Set, error)
	List(ctx context.Context) ([]models.Set, error)
}

// SetService exposes the read-only cohort surface.
type SetService struct {
	repo setStore
}

// NewSetService constructs the service.
func NewSetService(repo setStore) *SetService {
	return &SetService{repo: repo}
}

// Get returns a single cohort.
func (s *SetService) Get(ctx context.Context, id string) (*models.Set, error) {
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load set")
	}
	return set, nil
}

// List returns every cohort, most recent first.
func (s *SetService) List(ctx context.Context) ([]models.Set, error) {
	sets, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sets")
	}
	return sets, nil
}
