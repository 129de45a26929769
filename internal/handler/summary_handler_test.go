package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	"github.com/noah-isme/sma-internship-api/pkg/export"
)

type summaryServiceMock struct {
	results   []models.ResultSummary
	dataset   export.Dataset
	title     string
	err       error
	lastQuery dto.SummaryQuery
}

func (m *summaryServiceMock) Classrooms(ctx context.Context, query dto.SummaryQuery) ([]models.ClassroomSummary, error) {
	m.lastQuery = query
	return nil, m.err
}

func (m *summaryServiceMock) Companies(ctx context.Context, query dto.SummaryQuery) ([]models.CompanySummary, error) {
	m.lastQuery = query
	return nil, m.err
}

func (m *summaryServiceMock) Kinds(ctx context.Context, query dto.SummaryQuery) ([]models.KindSummary, error) {
	m.lastQuery = query
	return nil, m.err
}

func (m *summaryServiceMock) Inspectors(ctx context.Context, query dto.SummaryQuery) ([]models.InspectorSummary, error) {
	m.lastQuery = query
	return nil, m.err
}

func (m *summaryServiceMock) Reservations(ctx context.Context, query dto.SummaryQuery) ([]models.ReservationSummary, error) {
	m.lastQuery = query
	return nil, m.err
}

func (m *summaryServiceMock) Results(ctx context.Context, query dto.SummaryQuery) ([]models.ResultSummary, error) {
	m.lastQuery = query
	return m.results, m.err
}

func (m *summaryServiceMock) Dataset(ctx context.Context, report string, query dto.SummaryQuery) (export.Dataset, string, error) {
	m.lastQuery = query
	return m.dataset, m.title, m.err
}

func TestSummaryHandlerResults(t *testing.T) {
	mockSvc := &summaryServiceMock{results: []models.ResultSummary{
		{Result: models.InspectionOK, Label: models.InspectionOK.Label(), Count: 4},
		{Result: models.InspectionUnknown, Label: models.InspectionUnknown.Label(), Count: 0},
	}}
	handler := NewSummaryHandler(mockSvc)

	c, w := newTestContext(t, http.MethodGet, "/summaries/results?setId=set-1&activeOnly=true", nil)

	handler.Results(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "set-1", mockSvc.lastQuery.SetID)
	assert.True(t, mockSvc.lastQuery.ActiveOnly)

	var envelope struct {
		Data []models.ResultSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, 0, envelope.Data[1].Count)
}

func TestSummaryHandlerExportCSV(t *testing.T) {
	mockSvc := &summaryServiceMock{
		dataset: export.Dataset{
			Headers: []string{"Kind", "Count"},
			Rows: []map[string]string{
				{"Kind": "ONSITE", "Count": "20"},
			},
		},
		title: "Internships per kind",
	}
	handler := NewSummaryHandler(mockSvc)

	c, w := newTestContext(t, http.MethodGet, "/summaries/kinds/export?format=csv", nil)
	c.Params = gin.Params{{Key: "report", Value: "kinds"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "kinds.csv")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "Kind,Count"))
	assert.Contains(t, body, "ONSITE,20")
}

func TestSummaryHandlerExportPDF(t *testing.T) {
	mockSvc := &summaryServiceMock{
		dataset: export.Dataset{Headers: []string{"Kind", "Count"}},
		title:   "Internships per kind",
	}
	handler := NewSummaryHandler(mockSvc)

	c, w := newTestContext(t, http.MethodGet, "/summaries/kinds/export?format=pdf", nil)
	c.Params = gin.Params{{Key: "report", Value: "kinds"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "kinds.pdf")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestSummaryHandlerExportUnknownFormat(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceMock{})

	c, w := newTestContext(t, http.MethodGet, "/summaries/kinds/export?format=xlsx", nil)
	c.Params = gin.Params{{Key: "report", Value: "kinds"}}

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
