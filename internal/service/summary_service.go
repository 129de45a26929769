package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
	"github.com/noah-isme/sma-internship-api/pkg/export"
)

type summaryStore interface {
	Classrooms(ctx context.Context, filter models.SummaryFilter) ([]models.ClassroomSummary, error)
	Companies(ctx context.Context, filter models.SummaryFilter) ([]models.CompanySummary, error)
	Kinds(ctx context.Context, filter models.SummaryFilter) ([]models.KindSummary, error)
	Inspectors(ctx context.Context, filter models.SummaryFilter) ([]models.InspectorSummary, error)
	Reservations(ctx context.Context, filter models.SummaryFilter) ([]models.ReservationSummary, error)
	Results(ctx context.Context, filter models.SummaryFilter) ([]models.ResultSummary, error)
}

// Summary report identifiers used in routes, cache keys, and exports.
const (
	ReportClassrooms   = "classrooms"
	ReportCompanies    = "companies"
	ReportKinds        = "kinds"
	ReportInspectors   = "inspectors"
	ReportReservations = "reservations"
	ReportResults      = "results"
)

// SummaryService computes the cohort oversight reports. Reports 1-5 emit
// only groups that occur; the per-result report covers the whole result
// enumeration, zero counts included.
type SummaryService struct {
	repo   summaryStore
	cache  *CacheService
	logger *zap.Logger
}

// NewSummaryService constructs the service.
func NewSummaryService(repo summaryStore, cache *CacheService, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{repo: repo, cache: cache, logger: logger}
}

// Filter validates and normalises raw query parameters.
func (s *SummaryService) Filter(query dto.SummaryQuery) (models.SummaryFilter, error) {
	filter := models.SummaryFilter{ActiveOnly: query.ActiveOnly}
	if query.SetID != "" {
		trimmed := strings.TrimSpace(query.SetID)
		if trimmed == "" {
			return filter, appErrors.Clone(appErrors.ErrValidation, "setId must not be blank")
		}
		filter.SetID = &trimmed
	}
	return filter, nil
}

// Classrooms returns internship and distinct-student counts per classname.
func (s *SummaryService) Classrooms(ctx context.Context, query dto.SummaryQuery) ([]models.ClassroomSummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.ClassroomSummary
	if s.cacheGet(ctx, s.cacheKey(ReportClassrooms, filter), &rows) {
		return rows, nil
	}
	rows, err = s.repo.Classrooms(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute classroom summary")
	}
	s.cacheSet(ctx, s.cacheKey(ReportClassrooms, filter), rows)
	return rows, nil
}

// Companies returns placed-student counts per company.
func (s *SummaryService) Companies(ctx context.Context, query dto.SummaryQuery) ([]models.CompanySummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.CompanySummary
	if s.cacheGet(ctx, s.cacheKey(ReportCompanies, filter), &rows) {
		return rows, nil
	}
	rows, err = s.repo.Companies(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute company summary")
	}
	s.cacheSet(ctx, s.cacheKey(ReportCompanies, filter), rows)
	return rows, nil
}

// Kinds returns internship counts per kind.
func (s *SummaryService) Kinds(ctx context.Context, query dto.SummaryQuery) ([]models.KindSummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.KindSummary
	if s.cacheGet(ctx, s.cacheKey(ReportKinds, filter), &rows) {
		return rows, nil
	}
	rows, err = s.repo.Kinds(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute kind summary")
	}
	s.cacheSet(ctx, s.cacheKey(ReportKinds, filter), rows)
	return rows, nil
}

// Inspectors returns inspection counts per inspecting teacher.
func (s *SummaryService) Inspectors(ctx context.Context, query dto.SummaryQuery) ([]models.InspectorSummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.InspectorSummary
	if s.cacheGet(ctx, s.cacheKey(ReportInspectors, filter), &rows) {
		return rows, nil
	}
	rows, err = s.repo.Inspectors(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute inspector summary")
	}
	s.cacheSet(ctx, s.cacheKey(ReportInspectors, filter), rows)
	return rows, nil
}

// Reservations returns current reservation counts per holding teacher.
func (s *SummaryService) Reservations(ctx context.Context, query dto.SummaryQuery) ([]models.ReservationSummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.ReservationSummary
	if s.cacheGet(ctx, s.cacheKey(ReportReservations, filter), &rows) {
		return rows, nil
	}
	rows, err = s.repo.Reservations(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute reservation summary")
	}
	s.cacheSet(ctx, s.cacheKey(ReportReservations, filter), rows)
	return rows, nil
}

// Results returns inspection counts for every enumerated result value,
// including values with zero occurrences.
func (s *SummaryService) Results(ctx context.Context, query dto.SummaryQuery) ([]models.ResultSummary, error) {
	filter, err := s.Filter(query)
	if err != nil {
		return nil, err
	}
	var rows []models.ResultSummary
	if s.cacheGet(ctx, s.cacheKey(ReportResults, filter), &rows) {
		return rows, nil
	}
	stored, err := s.repo.Results(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute result summary")
	}

	counts := make(map[models.InspectionResult]int, len(stored))
	for _, row := range stored {
		counts[row.Result] = row.Count
	}
	rows = make([]models.ResultSummary, 0, len(models.AllInspectionResults))
	for _, result := range models.AllInspectionResults {
		rows = append(rows, models.ResultSummary{
			Result: result,
			Label:  result.Label(),
			Count:  counts[result],
		})
	}
	s.cacheSet(ctx, s.cacheKey(ReportResults, filter), rows)
	return rows, nil
}

// Dataset renders a report as a tabular dataset for CSV/PDF export.
func (s *SummaryService) Dataset(ctx context.Context, report string, query dto.SummaryQuery) (export.Dataset, string, error) {
	switch report {
	case ReportClassrooms:
		rows, err := s.Classrooms(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Classname", "Internships", "Students"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Classname":   row.Classname,
				"Internships": strconv.Itoa(row.TotalInternships),
				"Students":    strconv.Itoa(row.UniqueStudents),
			})
		}
		return data, "Internships per classroom", nil
	case ReportCompanies:
		rows, err := s.Companies(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Company", "Students"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Company":  row.CompanyName,
				"Students": strconv.Itoa(row.TotalStudents),
			})
		}
		return data, "Students per company", nil
	case ReportKinds:
		rows, err := s.Kinds(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Kind", "Count"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Kind":  string(row.Kind),
				"Count": strconv.Itoa(row.Count),
			})
		}
		return data, "Internships per kind", nil
	case ReportInspectors:
		rows, err := s.Inspectors(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Inspector", "Inspections"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Inspector":   row.Name,
				"Inspections": strconv.Itoa(row.Count),
			})
		}
		return data, "Inspections per teacher", nil
	case ReportReservations:
		rows, err := s.Reservations(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Inspector", "Reservations"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Inspector":    row.Name,
				"Reservations": strconv.Itoa(row.Count),
			})
		}
		return data, "Reservations per teacher", nil
	case ReportResults:
		rows, err := s.Results(ctx, query)
		if err != nil {
			return export.Dataset{}, "", err
		}
		data := export.Dataset{Headers: []string{"Result", "Count"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Result": row.Label,
				"Count":  strconv.Itoa(row.Count),
			})
		}
		return data, "Inspections per result", nil
	default:
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report: %s", report))
	}
}

func (s *SummaryService) cacheKey(report string, filter models.SummaryFilter) string {
	setID := "all"
	if filter.SetID != nil {
		setID = *filter.SetID
	}
	return fmt.Sprintf("summary:%s:%s:%t", report, setID, filter.ActiveOnly)
}

func (s *SummaryService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *SummaryService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		s.logger.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}
