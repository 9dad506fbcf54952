package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/registrar-api/internal/models"
	"github.com/opencampus/registrar-api/internal/service"
	"github.com/opencampus/registrar-api/pkg/response"
)

type courseRepoStub struct {
	courses map[string]models.Course
}

func (s *courseRepoStub) List(ctx context.Context) ([]models.Course, error) {
	list := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		list = append(list, c)
	}
	return list, nil
}

func (s *courseRepoStub) ListEnrollmentRefs(ctx context.Context) ([]models.CourseEnrollmentRef, error) {
	return nil, nil
}

func (s *courseRepoStub) ListProgramRefs(ctx context.Context) ([]models.CourseProgramRef, error) {
	return nil, nil
}

func (s *courseRepoStub) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *courseRepoStub) Create(ctx context.Context, course *models.Course) error {
	if s.courses == nil {
		s.courses = make(map[string]models.Course)
	}
	if course.ID == "" {
		course.ID = "new-course"
	}
	s.courses[course.ID] = *course
	return nil
}

func (s *courseRepoStub) Update(ctx context.Context, id string, patch models.CourseUpdate) error {
	return nil
}

func (s *courseRepoStub) DeleteIfUnreferenced(ctx context.Context, id string) (int64, error) {
	if _, ok := s.courses[id]; !ok {
		return 0, nil
	}
	delete(s.courses, id)
	return 1, nil
}

type enrollmentReaderStub struct {
	referenced bool
}

func (s *enrollmentReaderStub) HasForCourse(ctx context.Context, courseID string) (bool, error) {
	return s.referenced, nil
}

func (s *enrollmentReaderStub) ListEnrolledStudents(ctx context.Context, courseID string, statuses []models.EnrollmentStatus) ([]models.EnrolledStudentRow, error) {
	return nil, nil
}

type programReaderStub struct{}

func (s *programReaderStub) ListByCourse(ctx context.Context, courseID string) ([]models.ProgramStudentRow, error) {
	return nil, nil
}

type sessionReaderStub struct{}

func (s *sessionReaderStub) ListByCourse(ctx context.Context, courseID string) ([]models.SessionCourseRow, error) {
	return nil, nil
}

func newCourseHandlerFixture(repo *courseRepoStub, enrollments *enrollmentReaderStub) *CourseHandler {
	if repo == nil {
		repo = &courseRepoStub{}
	}
	if enrollments == nil {
		enrollments = &enrollmentReaderStub{}
	}
	svc := service.NewCourseService(repo, enrollments, &programReaderStub{}, &sessionReaderStub{}, nil, nil, nil)
	return NewCourseHandler(svc)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture(nil, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{}
	handler := newCourseHandlerFixture(repo, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.CreateCourseRequest{
		Title:          "Algorithms",
		Code:           "CS-201",
		Credits:        4,
		Classification: models.ClassificationGraduate,
	})
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	created := repo.courses["new-course"]
	assert.Equal(t, 3, created.DefaultCapacity)
}

func TestCourseHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandlerFixture(nil, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandlerDeleteConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{courses: map[string]models.Course{"c1": {ID: "c1"}}}
	handler := newCourseHandlerFixture(repo, &enrollmentReaderStub{referenced: true})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/courses/c1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestCourseHandlerProgramsNotFoundWhenEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{courses: map[string]models.Course{"c1": {ID: "c1"}}}
	handler := newCourseHandlerFixture(repo, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses/c1/programs", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Programs(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
