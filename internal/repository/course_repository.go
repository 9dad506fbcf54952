package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/opencampus/registrar-api/internal/models"
)

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course in the store's natural order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, title, code, credits, classification, default_capacity, created_at, updated_at FROM courses`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListEnrollmentRefs returns the slim enrollment rows used for per-course
// statistics, across all courses.
func (r *CourseRepository) ListEnrollmentRefs(ctx context.Context) ([]models.CourseEnrollmentRef, error) {
	const query = `SELECT course_id, student_id, status FROM enrollments`
	var refs []models.CourseEnrollmentRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list enrollment refs: %w", err)
	}
	return refs, nil
}

// ListProgramRefs returns every program association row.
func (r *CourseRepository) ListProgramRefs(ctx context.Context) ([]models.CourseProgramRef, error) {
	const query = `SELECT course_id, program_id FROM program_courses`
	var refs []models.CourseProgramRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list program refs: %w", err)
	}
	return refs, nil
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, title, code, credits, classification, default_capacity, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create persists a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, title, code, credits, classification, default_capacity, created_at, updated_at)
        VALUES (:id, :title, :code, :credits, :classification, :default_capacity, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update writes the supplied fields of a partial course update.
func (r *CourseRepository) Update(ctx context.Context, id string, patch models.CourseUpdate) error {
	args := []interface{}{id}
	sets := []string{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Code != nil {
		set("code", *patch.Code)
	}
	if patch.Credits != nil {
		set("credits", *patch.Credits)
	}
	if patch.Classification != nil {
		set("classification", *patch.Classification)
	}
	if patch.DefaultCapacity != nil {
		set("default_capacity", *patch.DefaultCapacity)
	}
	if len(sets) == 0 {
		return nil
	}
	set("updated_at", time.Now().UTC())

	query := fmt.Sprintf("UPDATE courses SET %s WHERE id = $1", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// DeleteIfUnreferenced deletes the course only when no enrollment references
// it, in a single statement so no enrollment can slip in between the check
// and the delete. It returns the number of rows removed.
func (r *CourseRepository) DeleteIfUnreferenced(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM courses WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM enrollments WHERE course_id = $1)`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete course: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete course rows affected: %w", err)
	}
	return rows, nil
}
