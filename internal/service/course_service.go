package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/opencampus/registrar-api/internal/dto"
	"github.com/opencampus/registrar-api/internal/models"
	appErrors "github.com/opencampus/registrar-api/pkg/errors"
)

const courseListCacheKey = "courses:list"

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListEnrollmentRefs(ctx context.Context) ([]models.CourseEnrollmentRef, error)
	ListProgramRefs(ctx context.Context) ([]models.CourseProgramRef, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, patch models.CourseUpdate) error
	DeleteIfUnreferenced(ctx context.Context, id string) (int64, error)
}

type enrollmentReader interface {
	HasForCourse(ctx context.Context, courseID string) (bool, error)
	ListEnrolledStudents(ctx context.Context, courseID string, statuses []models.EnrollmentStatus) ([]models.EnrolledStudentRow, error)
}

type programReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.ProgramStudentRow, error)
}

type sessionReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.SessionCourseRow, error)
}

// CreateCourseRequest describes course creation payload. Capacity is not
// accepted from callers; it is derived from the classification.
type CreateCourseRequest struct {
	Title          string                      `json:"title" validate:"required"`
	Code           string                      `json:"code" validate:"required"`
	Credits        int                         `json:"credits" validate:"required,gt=0"`
	Classification models.CourseClassification `json:"classification" validate:"required"`
}

// UpdateCourseRequest describes a partial course update. Only supplied fields
// are written; a classification change re-derives the default capacity.
type UpdateCourseRequest struct {
	Title          *string                      `json:"title" validate:"omitempty,min=1"`
	Code           *string                      `json:"code" validate:"omitempty,min=1"`
	Credits        *int                         `json:"credits" validate:"omitempty,gt=0"`
	Classification *models.CourseClassification `json:"classification"`
}

// CourseService orchestrates the course catalogue: capacity policy on writes,
// de-duplicated enrollment statistics, relationship projections and the
// delete-time referential guard.
type CourseService struct {
	repo        courseRepository
	enrollments enrollmentReader
	programs    programReader
	sessions    sessionReader
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, enrollments enrollmentReader, programs programReader, sessions sessionReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, enrollments: enrollments, programs: programs, sessions: sessions, cache: cache, validator: validate, logger: logger}
}

// Create persists a new course with its derived default capacity.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{
		Title:           req.Title,
		Code:            req.Code,
		Credits:         req.Credits,
		Classification:  req.Classification,
		DefaultCapacity: DefaultCapacity(req.Classification),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.invalidateListCache(ctx)
	return course, nil
}

// List returns every course with its de-duplicated enrollment and program
// statistics. The raw relation rows are consumed here and never returned.
func (s *CourseService) List(ctx context.Context) ([]dto.CourseSummary, error) {
	if s.cache.Enabled() {
		var cached []dto.CourseSummary
		if hit, err := s.cache.Get(ctx, courseListCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch courses")
	}
	enrollmentRefs, err := s.repo.ListEnrollmentRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course enrollments")
	}
	programRefs, err := s.repo.ListProgramRefs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course programs")
	}

	// A student with several counted enrollments for one course (e.g. across
	// sessions) is counted once.
	enrolledByCourse := make(map[string]map[string]struct{})
	for _, ref := range enrollmentRefs {
		if !ref.Status.Counted() {
			continue
		}
		set, ok := enrolledByCourse[ref.CourseID]
		if !ok {
			set = make(map[string]struct{})
			enrolledByCourse[ref.CourseID] = set
		}
		set[ref.StudentID] = struct{}{}
	}
	programsByCourse := make(map[string]map[string]struct{})
	for _, ref := range programRefs {
		set, ok := programsByCourse[ref.CourseID]
		if !ok {
			set = make(map[string]struct{})
			programsByCourse[ref.CourseID] = set
		}
		set[ref.ProgramID] = struct{}{}
	}

	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{
			ID:                    course.ID,
			Title:                 course.Title,
			Code:                  course.Code,
			Credits:               course.Credits,
			Classification:        course.Classification,
			DefaultCapacity:       course.DefaultCapacity,
			CreatedAt:             course.CreatedAt,
			UpdatedAt:             course.UpdatedAt,
			TotalEnrolledStudents: len(enrolledByCourse[course.ID]),
			TotalPrograms:         len(programsByCourse[course.ID]),
		})
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, courseListCacheKey, summaries, 0); err != nil {
			s.logger.Warn("failed to cache course list", zap.Error(err))
		}
	}
	return summaries, nil
}

// Get returns a single course by id. Also serves as the existence guard for
// update, delete and the relationship projections.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course with ID %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	return course, nil
}

// Update applies a partial update, re-deriving the default capacity when the
// classification changes.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := models.CourseUpdate{
		Title:          req.Title,
		Code:           req.Code,
		Credits:        req.Credits,
		Classification: req.Classification,
	}
	if req.Classification != nil {
		capacity := DefaultCapacity(*req.Classification)
		patch.DefaultCapacity = &capacity
	}
	if patch.Empty() {
		return course, nil
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load updated course")
	}
	s.invalidateListCache(ctx)
	return updated, nil
}

// Delete removes a course unless any enrollment still references it. The
// guard deliberately ignores enrollment status: even rejected or pending
// enrollments block deletion. The delete itself is conditional on the same
// check so a concurrent enrollment insert cannot slip between guard and
// delete.
func (s *CourseService) Delete(ctx context.Context, id string) (*dto.DeleteCourseResult, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	referenced, err := s.enrollments.HasForCourse(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course enrollments")
	}
	if referenced {
		return nil, appErrors.Clone(appErrors.ErrConflict, "cannot delete course with existing enrollments")
	}

	rows, err := s.repo.DeleteIfUnreferenced(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	if rows == 0 {
		// The guard passed but the conditional delete refused: either an
		// enrollment appeared in between or the course is already gone.
		referenced, err = s.enrollments.HasForCourse(ctx, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course enrollments")
		}
		if referenced {
			return nil, appErrors.Clone(appErrors.ErrConflict, "cannot delete course with existing enrollments")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course with ID %s not found", id))
	}

	s.invalidateListCache(ctx)
	return &dto.DeleteCourseResult{
		ID:      id,
		Message: fmt.Sprintf("course with ID %s has been deleted successfully", id),
	}, nil
}

// GetAffiliatedPrograms returns the programs linked to a course, each with
// its students. A course with no linked programs is reported as not found.
func (s *CourseService) GetAffiliatedPrograms(ctx context.Context, id string) ([]dto.AffiliatedProgram, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.programs.ListByCourse(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch affiliated programs")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no programs found for course with ID %s", id))
	}

	byID := make(map[string]*dto.AffiliatedProgram)
	order := make([]string, 0)
	for _, row := range rows {
		program, ok := byID[row.ProgramID]
		if !ok {
			program = &dto.AffiliatedProgram{
				ID:           row.ProgramID,
				Name:         row.ProgramName,
				Type:         row.ProgramType,
				TotalCredits: row.TotalCredits,
				Students:     []dto.ProgramStudent{},
			}
			byID[row.ProgramID] = program
			order = append(order, row.ProgramID)
		}
		if row.StudentID != nil {
			student := dto.ProgramStudent{ID: *row.StudentID}
			if row.RegNumber != nil {
				student.RegNumber = *row.RegNumber
			}
			program.Students = append(program.Students, student)
		}
	}

	programs := make([]dto.AffiliatedProgram, 0, len(order))
	for _, programID := range order {
		programs = append(programs, *byID[programID])
	}
	return programs, nil
}

// GetAffiliatedSessions returns the sessions linked to a course, flattened
// with the association's status and capacity override. No linked sessions is
// reported as not found.
func (s *CourseService) GetAffiliatedSessions(ctx context.Context, id string) ([]dto.AffiliatedSession, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sessions.ListByCourse(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch affiliated sessions")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no sessions found for course with ID %s", id))
	}

	sessions := make([]dto.AffiliatedSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, dto.AffiliatedSession{
			ID:                 row.SessionID,
			Name:               row.SessionName,
			StartDate:          row.StartDate,
			EndDate:            row.EndDate,
			EnrollmentDeadline: row.EnrollmentDeadline,
			Status:             row.SessionStatus,
			CourseStatus:       row.CourseStatus,
			AdjustedCapacity:   row.AdjustedCapacity,
		})
	}
	return sessions, nil
}

// GetEnrolledStudents returns the counted enrollments of a course, newest
// first, reshaped into student/session/enrollment sub-objects. No counted
// enrollments is reported as not found.
func (s *CourseService) GetEnrolledStudents(ctx context.Context, id string) ([]dto.EnrolledStudent, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.enrollments.ListEnrolledStudents(ctx, id, models.CountedStatuses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch enrolled students")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no enrolled students found for course with ID %s", id))
	}

	students := make([]dto.EnrolledStudent, 0, len(rows))
	for _, row := range rows {
		var program *dto.EnrolledStudentProgram
		if row.ProgramID != nil {
			program = &dto.EnrolledStudentProgram{ID: *row.ProgramID}
			if row.ProgramName != nil {
				program.Name = *row.ProgramName
			}
			if row.ProgramType != nil {
				program.Type = *row.ProgramType
			}
		}
		students = append(students, dto.EnrolledStudent{
			Student: dto.EnrolledStudentInfo{
				ID:             row.StudentID,
				RegNumber:      row.RegNumber,
				FirstName:      row.FirstName,
				LastName:       row.LastName,
				Email:          row.Email,
				ProfilePicture: row.ProfilePicture,
				Program:        program,
			},
			Session: dto.EnrolledStudentSession{
				ID:   row.SessionID,
				Name: row.SessionName,
			},
			Enrollment: dto.EnrolledStudentEnrollment{
				Status:          row.Status,
				SpecialRequest:  row.SpecialRequest,
				RejectionReason: row.RejectionReason,
				EnrolledAt:      row.EnrolledAt,
			},
		})
	}
	return students, nil
}

func (s *CourseService) invalidateListCache(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, courseListCacheKey); err != nil {
		s.logger.Warn("failed to invalidate course list cache", zap.Error(err))
	}
}
