package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

// SummaryRepository exposes the read-only grouped aggregation queries behind
// the oversight reports. Every query orders its groups deterministically so
// report output is stable for a given input.
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository instantiates the repository.
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// internshipScope appends the shared set/active filter against internship
// alias i, joining sets when the active flag is requested.
func internshipScope(builder *strings.Builder, args *[]interface{}, filter models.SummaryFilter) {
	if filter.ActiveOnly {
		builder.WriteString(" JOIN sets s ON s.id = i.set_id")
	}
	builder.WriteString(" WHERE 1=1")
	if filter.SetID != nil {
		*args = append(*args, *filter.SetID)
		builder.WriteString(fmt.Sprintf(" AND i.set_id = $%d", len(*args)))
	}
	if filter.ActiveOnly {
		builder.WriteString(" AND s.active = TRUE")
	}
}

// Classrooms counts internships and distinct students per classname.
func (r *SummaryRepository) Classrooms(ctx context.Context, filter models.SummaryFilter) ([]models.ClassroomSummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString(`SELECT i.classname,
        COUNT(*) AS total_internships,
        COUNT(DISTINCT i.student_id) AS unique_students
        FROM internships i`)
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY i.classname ORDER BY i.classname")

	var summaries []models.ClassroomSummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query classroom summary: %w", err)
	}
	return summaries, nil
}

// Companies counts placed students per company with at least one match.
func (r *SummaryRepository) Companies(ctx context.Context, filter models.SummaryFilter) ([]models.CompanySummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString(`SELECT c.id AS company_id, c.name AS company_name, COUNT(*) AS total_students
        FROM internships i
        JOIN companies c ON c.id = i.company_id`)
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY c.id, c.name ORDER BY c.name, c.id")

	var summaries []models.CompanySummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query company summary: %w", err)
	}
	return summaries, nil
}

// Kinds counts internships per kind present in the filtered set.
func (r *SummaryRepository) Kinds(ctx context.Context, filter models.SummaryFilter) ([]models.KindSummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString("SELECT i.kind, COUNT(*) AS count FROM internships i")
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY i.kind ORDER BY i.kind")

	var summaries []models.KindSummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query kind summary: %w", err)
	}
	return summaries, nil
}

// Inspectors counts inspections logged per teacher against matching
// internships.
func (r *SummaryRepository) Inspectors(ctx context.Context, filter models.SummaryFilter) ([]models.InspectorSummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString(`SELECT u.id AS inspector_id, u.full_name AS name, COUNT(*) AS count
        FROM inspections insp
        JOIN internships i ON i.id = insp.internship_id
        JOIN users u ON u.id = insp.user_id`)
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY u.id, u.full_name ORDER BY u.full_name, u.id")

	var summaries []models.InspectorSummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query inspector summary: %w", err)
	}
	return summaries, nil
}

// Reservations counts internships currently reserved per teacher.
func (r *SummaryRepository) Reservations(ctx context.Context, filter models.SummaryFilter) ([]models.ReservationSummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString(`SELECT u.id AS inspector_id, u.full_name AS name, COUNT(*) AS count
        FROM internships i
        JOIN users u ON u.id = i.reservation_user_id`)
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY u.id, u.full_name ORDER BY u.full_name, u.id")

	var summaries []models.ReservationSummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query reservation summary: %w", err)
	}
	return summaries, nil
}

// Results counts inspections per recorded result. Absent result values are
// not emitted here; the service layer zero-fills the full enumeration.
func (r *SummaryRepository) Results(ctx context.Context, filter models.SummaryFilter) ([]models.ResultSummary, error) {
	builder := strings.Builder{}
	var args []interface{}
	builder.WriteString(`SELECT insp.result, COUNT(*) AS count
        FROM inspections insp
        JOIN internships i ON i.id = insp.internship_id`)
	internshipScope(&builder, &args, filter)
	builder.WriteString(" GROUP BY insp.result ORDER BY insp.result")

	var summaries []models.ResultSummary
	if err := r.db.SelectContext(ctx, &summaries, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query result summary: %w", err)
	}
	return summaries, nil
}
