package dto

import (
	"time"

	"github.com/opencampus/registrar-api/internal/models"
)

// CourseSummary is the list projection of a course: scalar fields plus the
// two derived statistics. The raw enrollment and program rows never appear
// in responses.
type CourseSummary struct {
	ID                    string                      `json:"id"`
	Title                 string                      `json:"title"`
	Code                  string                      `json:"code"`
	Credits               int                         `json:"credits"`
	Classification        models.CourseClassification `json:"classification"`
	DefaultCapacity       int                         `json:"default_capacity"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
	TotalEnrolledStudents int                         `json:"total_enrolled_students"`
	TotalPrograms         int                         `json:"total_programs"`
}

// ProgramStudent is the slim student projection inside an affiliated program.
type ProgramStudent struct {
	ID        string `json:"id"`
	RegNumber string `json:"reg_number"`
}

// AffiliatedProgram is a program linked to a course, association wrapper
// stripped.
type AffiliatedProgram struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	TotalCredits int              `json:"total_credits"`
	Students     []ProgramStudent `json:"students"`
}

// AffiliatedSession flattens a session association: session fields plus the
// association's own status (as course_status) and capacity override.
type AffiliatedSession struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	EnrollmentDeadline time.Time `json:"enrollment_deadline"`
	Status             string    `json:"status"`
	CourseStatus       string    `json:"course_status"`
	AdjustedCapacity   *int      `json:"adjusted_capacity"`
}

// EnrolledStudentProgram describes the program of an enrolled student.
type EnrolledStudentProgram struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// EnrolledStudentInfo groups the student fields of an enrollment row.
type EnrolledStudentInfo struct {
	ID             string                  `json:"id"`
	RegNumber      string                  `json:"reg_number"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	Email          string                  `json:"email"`
	ProfilePicture *string                 `json:"profile_picture"`
	Program        *EnrolledStudentProgram `json:"program"`
}

// EnrolledStudentSession identifies the session an enrollment belongs to.
type EnrolledStudentSession struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrolledStudentEnrollment groups the enrollment fields of the projection.
type EnrolledStudentEnrollment struct {
	Status          models.EnrollmentStatus `json:"status"`
	SpecialRequest  *string                 `json:"special_request"`
	RejectionReason *string                 `json:"rejection_reason"`
	EnrolledAt      time.Time               `json:"enrolled_at"`
}

// EnrolledStudent is one row of the enrolled-students projection, reshaped
// into three grouped sub-objects.
type EnrolledStudent struct {
	Student    EnrolledStudentInfo       `json:"student"`
	Session    EnrolledStudentSession    `json:"session"`
	Enrollment EnrolledStudentEnrollment `json:"enrollment"`
}

// DeleteCourseResult acknowledges a successful course deletion.
type DeleteCourseResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
