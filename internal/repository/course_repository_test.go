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

	"github.com/opencampus/registrar-api/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "code", "credits", "classification", "default_capacity", "created_at", "updated_at"}).
		AddRow("course-1", "Algorithms", "CS-201", 4, models.ClassificationUndergraduate, 4, now, now).
		AddRow("course-2", "Research Methods", "GS-700", 3, models.ClassificationDoctorate, 1, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, code, credits, classification, default_capacity, created_at, updated_at FROM courses")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "CS-201", courses[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListEnrollmentRefs(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "student_id", "status"}).
		AddRow("course-1", "stu-1", models.EnrollmentStatusApproved).
		AddRow("course-1", "stu-2", models.EnrollmentStatusPending)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_id, student_id, status FROM enrollments")).
		WillReturnRows(rows)

	refs, err := repo.ListEnrollmentRefs(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	require.Equal(t, models.EnrollmentStatusPending, refs[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, code, credits, classification, default_capacity, created_at, updated_at FROM courses WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{
		Title:           "Algorithms",
		Code:            "CS-201",
		Credits:         4,
		Classification:  models.ClassificationUndergraduate,
		DefaultCapacity: 4,
	}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	require.NotEmpty(t, course.ID)
	require.False(t, course.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdatePartial(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET classification = $2, default_capacity = $3, updated_at = $4 WHERE id = $1")).
		WithArgs("course-1", models.ClassificationMasters, 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	classification := models.ClassificationMasters
	capacity := 2
	err := repo.Update(context.Background(), "course-1", models.CourseUpdate{
		Classification:  &classification,
		DefaultCapacity: &capacity,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateEmptyPatchIsNoop(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	err := repo.Update(context.Background(), "course-1", models.CourseUpdate{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteIfUnreferenced(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1)")).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.DeleteIfUnreferenced(context.Background(), "course-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteIfUnreferencedBlocked(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1)")).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.DeleteIfUnreferenced(context.Background(), "course-1")
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)
	require.NoError(t, mock.ExpectationsWereMet())
}
