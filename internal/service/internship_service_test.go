package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
)

type mockReadStore struct {
	detail     *models.InternshipDetail
	lastFilter models.InternshipFilter
}

func (m *mockReadStore) GetDetail(ctx context.Context, id string) (*models.InternshipDetail, error) {
	if m.detail == nil || m.detail.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.detail, nil
}

func (m *mockReadStore) List(ctx context.Context, filter models.InternshipFilter) ([]models.Internship, *models.Pagination, error) {
	m.lastFilter = filter
	return nil, &models.Pagination{Page: 1}, nil
}

type mockDiaryStore struct {
	entries []models.DiaryEntry
	created []*models.DiaryEntry
}

func (m *mockDiaryStore) Create(ctx context.Context, entry *models.DiaryEntry) error {
	m.created = append(m.created, entry)
	return nil
}

func (m *mockDiaryStore) ListByInternship(ctx context.Context, internshipID string) ([]models.DiaryEntry, error) {
	return m.entries, nil
}

func TestInternshipGetStudentOwnOnly(t *testing.T) {
	store := &mockReadStore{detail: &models.InternshipDetail{
		Internship: models.Internship{ID: "int-1", StudentID: "student-1"},
	}}
	svc := NewInternshipService(store, &mockDiaryStore{}, zap.NewNop())

	detail, err := svc.Get(context.Background(), "int-1", studentClaims("student-1"))
	require.NoError(t, err)
	assert.Equal(t, "int-1", detail.ID)

	_, err = svc.Get(context.Background(), "int-1", studentClaims("student-2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "int-1", teacherClaims("teacher-1"))
	require.NoError(t, err)
}

func TestInternshipListScopesStudents(t *testing.T) {
	store := &mockReadStore{}
	svc := NewInternshipService(store, &mockDiaryStore{}, zap.NewNop())

	_, _, err := svc.List(context.Background(), models.InternshipFilter{SetID: "set-1"}, studentClaims("student-1"))
	require.NoError(t, err)
	assert.Equal(t, "student-1", store.lastFilter.StudentID)
	assert.Equal(t, "set-1", store.lastFilter.SetID)

	_, _, err = svc.List(context.Background(), models.InternshipFilter{}, teacherClaims("teacher-1"))
	require.NoError(t, err)
	assert.Empty(t, store.lastFilter.StudentID)
}

func TestAddDiaryEntryOwnerOnly(t *testing.T) {
	store := &mockReadStore{detail: &models.InternshipDetail{
		Internship: models.Internship{ID: "int-1", StudentID: "student-1"},
	}}
	diary := &mockDiaryStore{}
	svc := NewInternshipService(store, diary, zap.NewNop())

	entry, err := svc.AddDiaryEntry(context.Background(), "int-1", dto.CreateDiaryEntryRequest{
		Date: time.Now(),
		Text: "first week at the company",
	}, studentClaims("student-1"))
	require.NoError(t, err)
	assert.Equal(t, "student-1", entry.UserID)
	require.Len(t, diary.created, 1)

	// Teachers read the diary, they do not write it.
	_, err = svc.AddDiaryEntry(context.Background(), "int-1", dto.CreateDiaryEntryRequest{
		Date: time.Now(),
		Text: "note",
	}, teacherClaims("teacher-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestListDiaryAppliesVisibility(t *testing.T) {
	store := &mockReadStore{detail: &models.InternshipDetail{
		Internship: models.Internship{ID: "int-1", StudentID: "student-1"},
	}}
	diary := &mockDiaryStore{entries: []models.DiaryEntry{{ID: "entry-1"}}}
	svc := NewInternshipService(store, diary, zap.NewNop())

	entries, err := svc.ListDiary(context.Background(), "int-1", studentClaims("student-1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = svc.ListDiary(context.Background(), "int-1", studentClaims("student-2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
