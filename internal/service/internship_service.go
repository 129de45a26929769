package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type internshipReadStore interface {
	GetDetail(ctx context.Context, id string) (*models.InternshipDetail, error)
	List(ctx context.Context, filter models.InternshipFilter) ([]models.Internship, *models.Pagination, error)
}

type diaryStore interface {
	Create(ctx context.Context, entry *models.DiaryEntry) error
	ListByInternship(ctx context.Context, internshipID string) ([]models.DiaryEntry, error)
}

// InternshipService provides the read surface over internship records and
// the student diary. All lifecycle and reservation writes live in their own
// services.
type InternshipService struct {
	repo   internshipReadStore
	diary  diaryStore
	logger *zap.Logger
}

// NewInternshipService constructs the service.
func NewInternshipService(repo internshipReadStore, diary diaryStore, logger *zap.Logger) *InternshipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InternshipService{repo: repo, diary: diary, logger: logger}
}

// Get returns the internship detail. Students may only see their own record.
func (s *InternshipService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.InternshipDetail, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load internship")
	}
	if actor.Role == models.RoleStudent && detail.StudentID != actor.UserID {
		return nil, appErrors.ErrForbidden
	}
	return detail, nil
}

// List returns internships matching the filter. Student callers are always
// restricted to their own records.
func (s *InternshipService) List(ctx context.Context, filter models.InternshipFilter, actor *models.JWTClaims) ([]models.Internship, *models.Pagination, error) {
	if actor == nil {
		return nil, nil, appErrors.ErrUnauthorized
	}
	if actor.Role == models.RoleStudent {
		filter.StudentID = actor.UserID
	}
	internships, pagination, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list internships")
	}
	return internships, pagination, nil
}

// AddDiaryEntry appends a dated note to the internship diary. Only the
// internship's own student writes diary entries.
func (s *InternshipService) AddDiaryEntry(ctx context.Context, internshipID string, req dto.CreateDiaryEntryRequest, actor *models.JWTClaims) (*models.DiaryEntry, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	detail, err := s.repo.GetDetail(ctx, internshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load internship")
	}
	if actor.Role != models.RoleStudent || detail.StudentID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the placement's student may write diary entries")
	}

	entry := &models.DiaryEntry{
		InternshipID: internshipID,
		UserID:       actor.UserID,
		Date:         req.Date.UTC(),
		Text:         req.Text,
	}
	if err := s.diary.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create diary entry")
	}
	return entry, nil
}

// ListDiary returns the diary of one internship, subject to the same
// visibility rule as the detail endpoint.
func (s *InternshipService) ListDiary(ctx context.Context, internshipID string, actor *models.JWTClaims) ([]models.DiaryEntry, error) {
	if _, err := s.Get(ctx, internshipID, actor); err != nil {
		return nil, err
	}
	entries, err := s.diary.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list diary entries")
	}
	return entries, nil
}
