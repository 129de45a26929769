package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

const internshipColumns = `id, student_id, company_id, location_id, set_id, classname, kind, state,
       highlighted, reservation_user_id, job_description, additional_info, appendix, conclusion,
       created_at, updated_at`

// InternshipRepository persists internship records. State and reservation
// writes are conditional at the storage layer so concurrent callers race on
// the row condition, never on an application-level read-then-write.
type InternshipRepository struct {
	db *sqlx.DB
}

// NewInternshipRepository constructs the repository.
func NewInternshipRepository(db *sqlx.DB) *InternshipRepository {
	return &InternshipRepository{db: db}
}

// GetByID fetches an internship by identifier.
func (r *InternshipRepository) GetByID(ctx context.Context, id string) (*models.Internship, error) {
	query := fmt.Sprintf("SELECT %s FROM internships WHERE id = $1", internshipColumns)
	var internship models.Internship
	if err := r.db.GetContext(ctx, &internship, query, id); err != nil {
		return nil, err
	}
	return &internship, nil
}

// GetDetail fetches an internship together with its inspection and diary
// entry counts.
func (r *InternshipRepository) GetDetail(ctx context.Context, id string) (*models.InternshipDetail, error) {
	query := fmt.Sprintf(`SELECT %s,
       (SELECT COUNT(*) FROM inspections WHERE internship_id = internships.id) AS inspection_count,
       (SELECT COUNT(*) FROM diary_entries WHERE internship_id = internships.id) AS diary_entry_count
	FROM internships WHERE id = $1`, internshipColumns)
	var detail models.InternshipDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns internships matching the filter, newest first.
func (r *InternshipRepository) List(ctx context.Context, filter models.InternshipFilter) ([]models.Internship, *models.Pagination, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 6)
	builder.WriteString("SELECT ")
	builder.WriteString(columnsWithAlias("i", internshipColumns))
	builder.WriteString(" FROM internships i")
	if filter.ActiveOnly {
		builder.WriteString(" JOIN sets s ON s.id = i.set_id")
	}

	conditions := make([]string, 0, 6)
	if filter.ActiveOnly {
		conditions = append(conditions, "s.active = TRUE")
	}
	if filter.SetID != "" {
		args = append(args, filter.SetID)
		conditions = append(conditions, fmt.Sprintf("i.set_id = $%d", len(args)))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("i.student_id = $%d", len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("i.location_id = $%d", len(args)))
	}
	if filter.Classname != "" {
		args = append(args, filter.Classname)
		conditions = append(conditions, fmt.Sprintf("i.classname = $%d", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, fmt.Sprintf("i.state = $%d", len(args)))
	}
	if filter.Reserved != nil {
		if *filter.Reserved {
			conditions = append(conditions, "i.reservation_user_id IS NOT NULL")
		} else {
			conditions = append(conditions, "i.reservation_user_id IS NULL")
		}
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY i.created_at DESC, i.id")

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize))

	var internships []models.Internship
	if err := r.db.SelectContext(ctx, &internships, builder.String(), args...); err != nil {
		return nil, nil, fmt.Errorf("list internships: %w", err)
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(internships)}
	return internships, pagination, nil
}

// UpdateState applies an optimistic compare-and-set on the state column. It
// returns sql.ErrNoRows when the row no longer holds the observed state, so
// the caller can distinguish a lost race from a missing record.
func (r *InternshipRepository) UpdateState(ctx context.Context, id string, observed, requested models.State) error {
	const query = `UPDATE internships SET state = $1, updated_at = NOW() WHERE id = $2 AND state = $3`
	result, err := r.db.ExecContext(ctx, query, requested, id, observed)
	if err != nil {
		return fmt.Errorf("update internship state: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check state update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClaimReservation performs the single-claim conditional write: the
// reservation is set only when the column is NULL or already held by the
// same inspector, making self-reclaim a no-op success. sql.ErrNoRows means
// the condition did not match.
func (r *InternshipRepository) ClaimReservation(ctx context.Context, id, inspectorID string) (*models.Internship, error) {
	query := fmt.Sprintf(`UPDATE internships SET reservation_user_id = $1, updated_at = NOW()
	WHERE id = $2 AND (reservation_user_id IS NULL OR reservation_user_id = $1)
	RETURNING %s`, internshipColumns)
	var internship models.Internship
	if err := r.db.GetContext(ctx, &internship, query, inspectorID, id); err != nil {
		return nil, err
	}
	return &internship, nil
}

// ClaimAllAtLocation claims every unreserved internship at the location
// inside one transaction. Each row keeps its own conditional write, so a
// concurrent single claim simply wins that row and drops it from the count;
// the bulk claim never fails because of a partial race.
func (r *InternshipRepository) ClaimAllAtLocation(ctx context.Context, locationID, inspectorID string, activeOnly bool) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk claim: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	builder := strings.Builder{}
	builder.WriteString("SELECT i.id FROM internships i")
	if activeOnly {
		builder.WriteString(" JOIN sets s ON s.id = i.set_id")
	}
	builder.WriteString(" WHERE i.location_id = $1 AND i.reservation_user_id IS NULL")
	if activeOnly {
		builder.WriteString(" AND s.active = TRUE")
	}
	builder.WriteString(" ORDER BY i.id")

	var candidates []string
	if err := tx.SelectContext(ctx, &candidates, builder.String(), locationID); err != nil {
		return 0, fmt.Errorf("select bulk claim candidates: %w", err)
	}

	claimed := 0
	const claimQuery = `UPDATE internships SET reservation_user_id = $1, updated_at = NOW()
	WHERE id = $2 AND reservation_user_id IS NULL`
	for _, id := range candidates {
		result, err := tx.ExecContext(ctx, claimQuery, inspectorID, id)
		if err != nil {
			return 0, fmt.Errorf("claim internship %s: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("check claim rows for %s: %w", id, err)
		}
		claimed += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk claim: %w", err)
	}
	return claimed, nil
}

// SetHighlighted sets the advisory priority flag. Last write wins; the flag
// is not an ownership token.
func (r *InternshipRepository) SetHighlighted(ctx context.Context, id string, value bool) (*models.Internship, error) {
	query := fmt.Sprintf(`UPDATE internships SET highlighted = $1, updated_at = NOW()
	WHERE id = $2 RETURNING %s`, internshipColumns)
	var internship models.Internship
	if err := r.db.GetContext(ctx, &internship, query, value, id); err != nil {
		return nil, err
	}
	return &internship, nil
}

// columnsWithAlias prefixes each column of a comma-separated list.
func columnsWithAlias(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
