package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/opencampus/registrar-api/internal/models"
)

// EnrollmentRepository reads enrollment rows for course projections and the
// delete-time referential guard. Enrollment lifecycles are owned elsewhere;
// this repository never mutates them.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// HasForCourse checks whether any enrollment references the course,
// regardless of status. Bounded existence probe, not a count.
func (r *EnrollmentRepository) HasForCourse(ctx context.Context, courseID string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE course_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course enrollments: %w", err)
	}
	return true, nil
}

// ListEnrolledStudents returns the flat join rows for a course's enrollments
// in the given statuses, newest enrollment first.
func (r *EnrollmentRepository) ListEnrolledStudents(ctx context.Context, courseID string, statuses []models.EnrollmentStatus) ([]models.EnrolledStudentRow, error) {
	placeholders := make([]string, len(statuses))
	args := []interface{}{courseID}
	for i, status := range statuses {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := fmt.Sprintf(`SELECT s.id AS student_id, s.reg_number, s.first_name, s.last_name, s.email, s.profile_picture,
        p.id AS program_id, p.name AS program_name, p.type AS program_type,
        se.id AS session_id, se.name AS session_name,
        e.status, e.special_request, e.rejection_reason, e.created_at
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        LEFT JOIN programs p ON p.id = s.program_id
        JOIN sessions se ON se.id = e.session_id
        WHERE e.course_id = $1 AND e.status IN (%s)
        ORDER BY e.created_at DESC`, strings.Join(placeholders, ", "))

	var rows []models.EnrolledStudentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return rows, nil
}
