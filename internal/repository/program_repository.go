package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opencampus/registrar-api/internal/models"
)

// ProgramRepository reads program associations for course projections.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs the repository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// ListByCourse returns one row per (program, student) pair for every program
// linked to the course. Programs without students yield a single row with
// null student columns.
func (r *ProgramRepository) ListByCourse(ctx context.Context, courseID string) ([]models.ProgramStudentRow, error) {
	const query = `SELECT p.id AS program_id, p.name AS program_name, p.type AS program_type, p.total_credits,
        s.id AS student_id, s.reg_number
        FROM program_courses pc
        JOIN programs p ON p.id = pc.program_id
        LEFT JOIN students s ON s.program_id = p.id
        WHERE pc.course_id = $1`
	var rows []models.ProgramStudentRow
	if err := r.db.SelectContext(ctx, &rows, query, courseID); err != nil {
		return nil, fmt.Errorf("list affiliated programs: %w", err)
	}
	return rows, nil
}
