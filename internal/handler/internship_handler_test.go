package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
	"github.com/noah-isme/sma-internship-api/pkg/response"
)

type internshipServiceMock struct {
	detail     *models.InternshipDetail
	getErr     error
	list       []models.Internship
	listErr    error
	lastFilter models.InternshipFilter
	entries    []models.DiaryEntry
	entry      *models.DiaryEntry
	diaryErr   error
}

func (m *internshipServiceMock) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.InternshipDetail, error) {
	return m.detail, m.getErr
}

func (m *internshipServiceMock) List(ctx context.Context, filter models.InternshipFilter, actor *models.JWTClaims) ([]models.Internship, *models.Pagination, error) {
	m.lastFilter = filter
	return m.list, &models.Pagination{Page: 1, PageSize: 50, TotalCount: len(m.list)}, m.listErr
}

func (m *internshipServiceMock) AddDiaryEntry(ctx context.Context, internshipID string, req dto.CreateDiaryEntryRequest, actor *models.JWTClaims) (*models.DiaryEntry, error) {
	return m.entry, m.diaryErr
}

func (m *internshipServiceMock) ListDiary(ctx context.Context, internshipID string, actor *models.JWTClaims) ([]models.DiaryEntry, error) {
	return m.entries, m.diaryErr
}

type lifecycleServiceMock struct {
	internship *models.Internship
	err        error
	lastState  models.State
	next       []models.State
}

func (m *lifecycleServiceMock) Transition(ctx context.Context, internshipID string, requested models.State, actor *models.JWTClaims) (*models.Internship, error) {
	m.lastState = requested
	return m.internship, m.err
}

func (m *lifecycleServiceMock) AllowedNext(current models.State) []models.State {
	return m.next
}

func TestInternshipHandlerListFilters(t *testing.T) {
	mockSvc := &internshipServiceMock{list: []models.Internship{{ID: "int-1"}}}
	handler := NewInternshipHandler(mockSvc, &lifecycleServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/internships?setId=set-1&reserved=false&state=APPROVED", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "set-1", mockSvc.lastFilter.SetID)
	assert.Equal(t, models.StateApproved, mockSvc.lastFilter.State)
	require.NotNil(t, mockSvc.lastFilter.Reserved)
	assert.False(t, *mockSvc.lastFilter.Reserved)
}

func TestInternshipHandlerChangeState(t *testing.T) {
	mockLifecycle := &lifecycleServiceMock{internship: &models.Internship{ID: "int-1", State: models.StateApproved}}
	handler := NewInternshipHandler(&internshipServiceMock{}, mockLifecycle)

	payload, _ := json.Marshal(dto.ChangeStateRequest{State: models.StateApproved})
	c, w := newTestContext(t, http.MethodPatch, "/internships/int-1/state", payload)
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.ChangeState(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StateApproved, mockLifecycle.lastState)
}

func TestInternshipHandlerChangeStateInvalidTransition(t *testing.T) {
	mockLifecycle := &lifecycleServiceMock{err: appErrors.ErrInvalidTransition}
	handler := NewInternshipHandler(&internshipServiceMock{}, mockLifecycle)

	payload, _ := json.Marshal(dto.ChangeStateRequest{State: models.StateEvaluated})
	c, w := newTestContext(t, http.MethodPatch, "/internships/int-1/state", payload)
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.ChangeState(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInternshipHandlerChangeStateConflict(t *testing.T) {
	mockLifecycle := &lifecycleServiceMock{err: appErrors.ErrConflict}
	handler := NewInternshipHandler(&internshipServiceMock{}, mockLifecycle)

	payload, _ := json.Marshal(dto.ChangeStateRequest{State: models.StateApproved})
	c, w := newTestContext(t, http.MethodPatch, "/internships/int-1/state", payload)
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.ChangeState(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrConflict.Code, envelope.Error.Code)
}

func TestInternshipHandlerChangeStateMissingBody(t *testing.T) {
	handler := NewInternshipHandler(&internshipServiceMock{}, &lifecycleServiceMock{})

	c, w := newTestContext(t, http.MethodPatch, "/internships/int-1/state", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.ChangeState(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternshipHandlerNextStates(t *testing.T) {
	mockSvc := &internshipServiceMock{detail: &models.InternshipDetail{
		Internship: models.Internship{ID: "int-1", State: models.StateSubmitted},
	}}
	mockLifecycle := &lifecycleServiceMock{next: []models.State{models.StateApproved, models.StateReturned, models.StateCancelled}}
	handler := NewInternshipHandler(mockSvc, mockLifecycle)

	c, w := newTestContext(t, http.MethodGet, "/internships/int-1/next-states", nil)
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.NextStates(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.NextStatesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.StateSubmitted, envelope.Data.Current)
	assert.Len(t, envelope.Data.Next, 3)
	assert.False(t, envelope.Data.Terminal)
}

func TestInternshipHandlerNextStatesTerminal(t *testing.T) {
	mockSvc := &internshipServiceMock{detail: &models.InternshipDetail{
		Internship: models.Internship{ID: "int-1", State: models.StateEvaluated},
	}}
	handler := NewInternshipHandler(mockSvc, &lifecycleServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/internships/int-1/next-states", nil)
	c.Params = gin.Params{{Key: "id", Value: "int-1"}}

	handler.NextStates(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.NextStatesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Terminal)
}

func TestInternshipHandlerGetNotFound(t *testing.T) {
	mockSvc := &internshipServiceMock{getErr: appErrors.ErrNotFound}
	handler := NewInternshipHandler(mockSvc, &lifecycleServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/internships/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
