package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/registrar-api/internal/models"
)

func newEnrollmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEnrollmentRepositoryHasForCourse(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"?column?"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE course_id = $1 LIMIT 1")).
		WithArgs("course-1").
		WillReturnRows(rows)

	referenced, err := repo.HasForCourse(context.Background(), "course-1")
	require.NoError(t, err)
	require.True(t, referenced)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryHasForCourseEmpty(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE course_id = $1 LIMIT 1")).
		WithArgs("course-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	referenced, err := repo.HasForCourse(context.Background(), "course-1")
	require.NoError(t, err)
	require.False(t, referenced)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListEnrolledStudents(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	programID := "prog-1"
	programName := "Computer Science"
	programType := "BSC"
	rows := sqlmock.NewRows([]string{
		"student_id", "reg_number", "first_name", "last_name", "email", "profile_picture",
		"program_id", "program_name", "program_type",
		"session_id", "session_name",
		"status", "special_request", "rejection_reason", "created_at",
	}).
		AddRow("stu-2", "REG-002", "Binta", "Diallo", "binta@example.com", nil,
			nil, nil, nil,
			"sess-1", "Fall 2026",
			models.EnrollmentStatusActive, nil, nil, now).
		AddRow("stu-1", "REG-001", "Amara", "Okafor", "amara@example.com", nil,
			programID, programName, programType,
			"sess-1", "Fall 2026",
			models.EnrollmentStatusApproved, nil, nil, now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT s\.id AS student_id.+FROM enrollments e`).
		WithArgs("course-1", models.EnrollmentStatusApproved, models.EnrollmentStatusActive, models.EnrollmentStatusCompleted).
		WillReturnRows(rows)

	result, err := repo.ListEnrolledStudents(context.Background(), "course-1", models.CountedStatuses)
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "stu-2", result[0].StudentID)
	require.Nil(t, result[0].ProgramID)
	require.NotNil(t, result[1].ProgramID)
	require.Equal(t, "prog-1", *result[1].ProgramID)
	require.NoError(t, mock.ExpectationsWereMet())
}
