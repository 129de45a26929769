package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type internshipStateStore interface {
	GetByID(ctx context.Context, id string) (*models.Internship, error)
	UpdateState(ctx context.Context, id string, observed, requested models.State) error
}

// studentEdges lists the transitions a student may trigger on their own
// internship. Teachers and admins may trigger any edge of the graph.
var studentEdges = map[models.State][]models.State{
	models.StateCreated:  {models.StateSubmitted, models.StateCancelled},
	models.StateReturned: {models.StateSubmitted, models.StateCancelled},
}

// LifecycleService gates internship state changes to the edges of the fixed
// lifecycle graph and enforces who may trigger which edge.
type LifecycleService struct {
	repo    internshipStateStore
	graph   *models.StateGraph
	metrics *MetricsService
	cache   *CacheService
	logger  *zap.Logger
}

// NewLifecycleService constructs the service around an immutable graph.
func NewLifecycleService(repo internshipStateStore, graph *models.StateGraph, metrics *MetricsService, cache *CacheService, logger *zap.Logger) *LifecycleService {
	if graph == nil {
		graph = models.DefaultStateGraph()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{repo: repo, graph: graph, metrics: metrics, cache: cache, logger: logger}
}

// Graph exposes the lifecycle graph for presentation layers.
func (s *LifecycleService) Graph() *models.StateGraph {
	return s.graph
}

// AllowedNext returns the legal next states for the given state. Pure
// lookup, no side effects.
func (s *LifecycleService) AllowedNext(current models.State) []models.State {
	return s.graph.AllowedNext(current)
}

// Transition moves an internship to the requested state. The write is an
// optimistic compare-and-set against the state observed at the start of the
// operation; losing the race surfaces as a Conflict, never as a silent
// overwrite.
func (s *LifecycleService) Transition(ctx context.Context, internshipID string, requested models.State, actor *models.JWTClaims) (*models.Internship, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !s.graph.Contains(requested) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("unknown lifecycle state: %s", requested))
	}

	internship, err := s.repo.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load internship")
	}

	observed := internship.State
	if !s.graph.CanTransition(observed, requested) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move from %s to %s", observed, requested))
	}
	if err := s.authorizeEdge(internship, observed, requested, actor); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, internshipID, observed, requested); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.resolveLostWrite(ctx, internshipID, observed)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update internship state")
	}

	internship.State = requested
	if s.cache != nil {
		s.cache.InvalidateSummaries(ctx)
	}
	s.logger.Info("internship state changed",
		zap.String("internship_id", internshipID),
		zap.String("from", string(observed)),
		zap.String("to", string(requested)),
		zap.String("actor_id", actor.UserID),
	)
	return internship, nil
}

// authorizeEdge applies the per-role edge permissions: students may only act
// on their own internship and only along the student edge set.
func (s *LifecycleService) authorizeEdge(internship *models.Internship, from, to models.State, actor *models.JWTClaims) error {
	switch actor.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil
	case models.RoleStudent:
		if internship.StudentID != actor.UserID {
			return appErrors.Clone(appErrors.ErrForbidden, "students may only change their own internship")
		}
		for _, allowed := range studentEdges[from] {
			if allowed == to {
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrForbidden, "students may not trigger this transition")
	default:
		return appErrors.ErrForbidden
	}
}

// resolveLostWrite distinguishes a lost compare-and-set race from a record
// that vanished underneath the operation.
func (s *LifecycleService) resolveLostWrite(ctx context.Context, internshipID string, observed models.State) error {
	current, err := s.repo.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload internship")
	}
	if s.metrics != nil {
		s.metrics.RecordTransitionConflict()
	}
	return appErrors.Clone(appErrors.ErrConflict,
		fmt.Sprintf("state changed concurrently from %s to %s", observed, current.State))
}
