package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

func newInspectionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestInspectionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newInspectionRepoMock(t)
	defer cleanup()

	repo := NewInspectionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inspections")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	inspection := &models.Inspection{
		InternshipID: "int-1",
		UserID:       "teacher-1",
		Date:         time.Now(),
		Result:       models.InspectionOK,
		Note:         "all fine",
	}
	require.NoError(t, repo.Create(context.Background(), inspection))
	require.NotEmpty(t, inspection.ID)
	require.False(t, inspection.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectionRepositoryListByInternship(t *testing.T) {
	db, mock, cleanup := newInspectionRepoMock(t)
	defer cleanup()

	repo := NewInspectionRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "internship_id", "user_id", "date", "result", "kind", "note", "created_at"}).
		AddRow("insp-2", "int-1", "teacher-1", now, "PROBLEMS", "", "late arrival", now).
		AddRow("insp-1", "int-1", "teacher-2", now.AddDate(0, 0, -7), "OK", "", "", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, internship_id, user_id")).
		WithArgs("int-1").
		WillReturnRows(rows)

	inspections, err := repo.ListByInternship(context.Background(), "int-1")
	require.NoError(t, err)
	require.Len(t, inspections, 2)
	require.Equal(t, models.InspectionProblems, inspections[0].Result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectionRepositoryDeleteCreatorOnly(t *testing.T) {
	db, mock, cleanup := newInspectionRepoMock(t)
	defer cleanup()

	repo := NewInspectionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inspections WHERE id = $1 AND user_id = $2")).
		WithArgs("insp-1", "teacher-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "insp-1", "teacher-1"))

	// A different user matches zero rows even when the record exists.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inspections WHERE id = $1 AND user_id = $2")).
		WithArgs("insp-1", "teacher-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "insp-1", "teacher-2"), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
