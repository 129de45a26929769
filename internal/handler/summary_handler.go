package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
	"github.com/noah-isme/sma-internship-api/pkg/export"
	"github.com/noah-isme/sma-internship-api/pkg/response"
)

type summaryService interface {
	Classrooms(ctx context.Context, query dto.SummaryQuery) ([]models.ClassroomSummary, error)
	Companies(ctx context.Context, query dto.SummaryQuery) ([]models.CompanySummary, error)
	Kinds(ctx context.Context, query dto.SummaryQuery) ([]models.KindSummary, error)
	Inspectors(ctx context.Context, query dto.SummaryQuery) ([]models.InspectorSummary, error)
	Reservations(ctx context.Context, query dto.SummaryQuery) ([]models.ReservationSummary, error)
	Results(ctx context.Context, query dto.SummaryQuery) ([]models.ResultSummary, error)
	Dataset(ctx context.Context, report string, query dto.SummaryQuery) (export.Dataset, string, error)
}

// SummaryHandler exposes the cohort oversight reports.
type SummaryHandler struct {
	summaries summaryService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewSummaryHandler constructs the handler.
func NewSummaryHandler(summaries summaryService) *SummaryHandler {
	return &SummaryHandler{
		summaries: summaries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

func bindSummaryQuery(c *gin.Context) (dto.SummaryQuery, bool) {
	var query dto.SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid summary filter"))
		return query, false
	}
	return query, true
}

// Classrooms godoc
// @Summary Internships per classroom
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/classrooms [get]
func (h *SummaryHandler) Classrooms(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Classrooms(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Companies godoc
// @Summary Students per company
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/companies [get]
func (h *SummaryHandler) Companies(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Companies(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Kinds godoc
// @Summary Internships per kind
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/kinds [get]
func (h *SummaryHandler) Kinds(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Kinds(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Inspectors godoc
// @Summary Inspections per teacher
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/inspectors [get]
func (h *SummaryHandler) Inspectors(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Inspectors(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Reservations godoc
// @Summary Current reservations per teacher
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/reservations [get]
func (h *SummaryHandler) Reservations(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Reservations(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Results godoc
// @Summary Inspections per result, zero counts included
// @Tags Summaries
// @Produce json
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200 {object} response.Envelope
// @Router /summaries/results [get]
func (h *SummaryHandler) Results(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	rows, err := h.summaries.Results(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Export godoc
// @Summary Export a summary report as CSV or PDF
// @Tags Summaries
// @Produce octet-stream
// @Param report path string true "Report name"
// @Param format query string false "csv or pdf" default(csv)
// @Param setId query string false "Set ID"
// @Param activeOnly query boolean false "Active cohorts only"
// @Success 200
// @Router /summaries/{report}/export [get]
func (h *SummaryHandler) Export(c *gin.Context) {
	query, ok := bindSummaryQuery(c)
	if !ok {
		return
	}
	report := c.Param("report")
	data, title, err := h.summaries.Dataset(c.Request.Context(), report, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		payload, err := h.csv.Render(data)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", report))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(data, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", report))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
