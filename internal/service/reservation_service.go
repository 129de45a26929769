package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type reservationStore interface {
	GetByID(ctx context.Context, id string) (*models.Internship, error)
	ClaimReservation(ctx context.Context, id, inspectorID string) (*models.Internship, error)
	ClaimAllAtLocation(ctx context.Context, locationID, inspectorID string, activeOnly bool) (int, error)
	SetHighlighted(ctx context.Context, id string, value bool) (*models.Internship, error)
}

type inspectorDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

const (
	claimOutcomeWon             = "won"
	claimOutcomeAlreadyReserved = "already_reserved"
)

// ReservationService implements the inspection claim protocol: a teacher
// becomes the sole inspector of an internship through a conditional write at
// the storage layer, so two racing claims can never both win.
type ReservationService struct {
	repo    reservationStore
	users   inspectorDirectory
	metrics *MetricsService
	cache   *CacheService
	logger  *zap.Logger
}

// NewReservationService constructs the service.
func NewReservationService(repo reservationStore, users inspectorDirectory, metrics *MetricsService, cache *CacheService, logger *zap.Logger) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{repo: repo, users: users, metrics: metrics, cache: cache, logger: logger}
}

// ClaimSingle sets the reservation holder only if none exists. Re-claiming
// one's own reservation is a no-op success; claiming someone else's fails
// with AlreadyReserved.
func (s *ReservationService) ClaimSingle(ctx context.Context, internshipID, inspectorID string, actor *models.JWTClaims) (*models.Internship, error) {
	inspector, err := s.resolveInspector(ctx, inspectorID, actor)
	if err != nil {
		return nil, err
	}

	internship, err := s.repo.ClaimReservation(ctx, internshipID, inspector)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.resolveFailedClaim(ctx, internshipID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to claim internship")
	}

	if s.metrics != nil {
		s.metrics.RecordClaim(claimOutcomeWon)
	}
	if s.cache != nil {
		s.cache.InvalidateSummaries(ctx)
	}
	s.logger.Info("internship reserved",
		zap.String("internship_id", internshipID),
		zap.String("inspector_id", inspector),
	)
	return internship, nil
}

// ClaimAllUnreservedAtLocation claims every unreserved internship at the
// location. Rows lost to concurrent claims are simply excluded from the
// count; zero is a valid result, not an error.
func (s *ReservationService) ClaimAllUnreservedAtLocation(ctx context.Context, locationID, inspectorID string, activeOnly bool, actor *models.JWTClaims) (int, error) {
	if strings.TrimSpace(locationID) == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "location_id is required")
	}
	inspector, err := s.resolveInspector(ctx, inspectorID, actor)
	if err != nil {
		return 0, err
	}

	claimed, err := s.repo.ClaimAllAtLocation(ctx, locationID, inspector, activeOnly)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bulk claim internships")
	}

	if claimed > 0 {
		if s.cache != nil {
			s.cache.InvalidateSummaries(ctx)
		}
		s.logger.Info("bulk reservation",
			zap.String("location_id", locationID),
			zap.String("inspector_id", inspector),
			zap.Bool("active_only", activeOnly),
			zap.Int("claimed", claimed),
		)
	}
	return claimed, nil
}

// SetHighlighted toggles the advisory priority flag. Idempotent last-write-
// wins; the flag carries no claim semantics.
func (s *ReservationService) SetHighlighted(ctx context.Context, internshipID string, value bool, actor *models.JWTClaims) (*models.Internship, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !actor.Role.CanInspect() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers and admins may highlight internships")
	}

	internship, err := s.repo.SetHighlighted(ctx, internshipID, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update highlight flag")
	}
	if s.cache != nil {
		s.cache.InvalidateSummaries(ctx)
	}
	return internship, nil
}

// resolveInspector determines who the reservation is claimed for. Only
// admins may claim on behalf of another inspector.
func (s *ReservationService) resolveInspector(ctx context.Context, inspectorID string, actor *models.JWTClaims) (string, error) {
	if actor == nil {
		return "", appErrors.ErrUnauthorized
	}
	if !actor.Role.CanInspect() {
		return "", appErrors.Clone(appErrors.ErrForbidden, "only teachers and admins may claim inspections")
	}

	inspectorID = strings.TrimSpace(inspectorID)
	if inspectorID == "" || inspectorID == actor.UserID {
		return actor.UserID, nil
	}
	if actor.Role != models.RoleAdmin {
		return "", appErrors.Clone(appErrors.ErrForbidden, "only admins may claim on behalf of another inspector")
	}

	inspector, err := s.users.FindByID(ctx, inspectorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrValidation, "inspector does not exist")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inspector")
	}
	if !inspector.Role.CanInspect() {
		return "", appErrors.Clone(appErrors.ErrValidation, "inspector must be a teacher or admin")
	}
	return inspector.ID, nil
}

// resolveFailedClaim maps a zero-row conditional claim to NotFound or
// AlreadyReserved. The holder's identity is deliberately not included.
func (s *ReservationService) resolveFailedClaim(ctx context.Context, internshipID string) error {
	if _, err := s.repo.GetByID(ctx, internshipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload internship")
	}
	if s.metrics != nil {
		s.metrics.RecordClaim(claimOutcomeAlreadyReserved)
	}
	return appErrors.ErrAlreadyReserved
}
