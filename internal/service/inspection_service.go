package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type inspectionStore interface {
	Create(ctx context.Context, inspection *models.Inspection) error
	GetByID(ctx context.Context, id string) (*models.Inspection, error)
	ListByInternship(ctx context.Context, internshipID string) ([]models.Inspection, error)
	Delete(ctx context.Context, id, userID string) error
}

type internshipReader interface {
	GetByID(ctx context.Context, id string) (*models.Internship, error)
}

// InspectionService manages the immutable inspection history of placements.
type InspectionService struct {
	repo        inspectionStore
	internships internshipReader
	cache       *CacheService
	logger      *zap.Logger
}

// NewInspectionService constructs the service.
func NewInspectionService(repo inspectionStore, internships internshipReader, cache *CacheService, logger *zap.Logger) *InspectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionService{repo: repo, internships: internships, cache: cache, logger: logger}
}

// Create records a placement visit against an internship.
func (s *InspectionService) Create(ctx context.Context, internshipID string, req dto.CreateInspectionRequest, actor *models.JWTClaims) (*models.Inspection, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !actor.Role.CanInspect() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers and admins may record inspections")
	}
	if !req.Result.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown inspection result: %s", req.Result))
	}

	if _, err := s.internships.GetByID(ctx, internshipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load internship")
	}

	inspection := &models.Inspection{
		InternshipID: internshipID,
		UserID:       actor.UserID,
		Date:         req.Date.UTC(),
		Result:       req.Result,
		Kind:         req.Kind,
		Note:         req.Note,
	}
	if err := s.repo.Create(ctx, inspection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inspection")
	}
	if s.cache != nil {
		s.cache.InvalidateSummaries(ctx)
	}
	return inspection, nil
}

// ListByInternship returns the inspection history of one internship.
func (s *InspectionService) ListByInternship(ctx context.Context, internshipID string) ([]models.Inspection, error) {
	inspections, err := s.repo.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inspections")
	}
	return inspections, nil
}

// Delete removes an inspection. Only the inspection's creator may delete it,
// regardless of role.
func (s *InspectionService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	inspection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspection")
	}
	if inspection.UserID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the inspection's creator may delete it")
	}
	if err := s.repo.Delete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete inspection")
	}
	if s.cache != nil {
		s.cache.InvalidateSummaries(ctx)
	}
	return nil
}
