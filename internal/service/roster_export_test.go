package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/registrar-api/internal/models"
	appErrors "github.com/opencampus/registrar-api/pkg/errors"
)

func rosterFixture() (*mockCourseRepo, *mockEnrollmentReader) {
	repo := &mockCourseRepo{courses: map[string]models.Course{
		"c1": {ID: "c1", Title: "Algorithms", Code: "CS-201"},
	}}
	enrollments := &mockEnrollmentReader{rows: []models.EnrolledStudentRow{
		{
			StudentID: "s1", RegNumber: "REG-001", FirstName: "Amara", LastName: "Okafor", Email: "amara@example.com",
			SessionID: "se1", SessionName: "Fall 2026",
			Status: models.EnrollmentStatusApproved, EnrolledAt: time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC),
		},
	}}
	return repo, enrollments
}

func TestExportEnrolledStudentsCSV(t *testing.T) {
	repo, enrollments := rosterFixture()
	svc := newCourseServiceFixture(repo, enrollments, nil, nil)

	roster, err := svc.ExportEnrolledStudents(context.Background(), "c1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", roster.ContentType)
	assert.Equal(t, "CS-201-roster.csv", roster.Filename)

	content := string(roster.Content)
	assert.True(t, strings.HasPrefix(content, "Reg Number,Name,Email"))
	assert.Contains(t, content, "REG-001,Amara Okafor,amara@example.com")
	assert.Contains(t, content, "2026-08-19")
}

func TestExportEnrolledStudentsPDF(t *testing.T) {
	repo, enrollments := rosterFixture()
	svc := newCourseServiceFixture(repo, enrollments, nil, nil)

	roster, err := svc.ExportEnrolledStudents(context.Background(), "c1", "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", roster.ContentType)
	assert.Equal(t, "CS-201-roster.pdf", roster.Filename)
	assert.True(t, strings.HasPrefix(string(roster.Content), "%PDF"))
}

func TestExportEnrolledStudentsUnsupportedFormat(t *testing.T) {
	repo, enrollments := rosterFixture()
	svc := newCourseServiceFixture(repo, enrollments, nil, nil)

	_, err := svc.ExportEnrolledStudents(context.Background(), "c1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportEnrolledStudentsEmptyRoster(t *testing.T) {
	repo, _ := rosterFixture()
	svc := newCourseServiceFixture(repo, &mockEnrollmentReader{}, nil, nil)

	_, err := svc.ExportEnrolledStudents(context.Background(), "c1", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
