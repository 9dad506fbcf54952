package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opencampus/registrar-api/internal/models"
)

// SessionRepository reads session associations for course projections.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// ListByCourse returns the sessions linked to a course together with each
// association's status and capacity override.
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID string) ([]models.SessionCourseRow, error) {
	const query = `SELECT se.id AS session_id, se.name AS session_name, se.start_date, se.end_date,
        se.enrollment_deadline, se.status AS session_status,
        sc.status AS course_status, sc.adjusted_capacity
        FROM session_courses sc
        JOIN sessions se ON se.id = sc.session_id
        WHERE sc.course_id = $1`
	var rows []models.SessionCourseRow
	if err := r.db.SelectContext(ctx, &rows, query, courseID); err != nil {
		return nil, fmt.Errorf("list affiliated sessions: %w", err)
	}
	return rows, nil
}
