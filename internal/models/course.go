package models

import "time"

// CourseClassification is the academic level category of a course.
type CourseClassification string

// Recognised course classifications.
const (
	ClassificationUndergraduate CourseClassification = "UNDERGRADUATE"
	ClassificationGraduate      CourseClassification = "GRADUATE"
	ClassificationMasters       CourseClassification = "MASTERS"
	ClassificationDoctorate     CourseClassification = "DOCTORATE"
)

// Course represents a row in the courses table. DefaultCapacity is derived
// from the classification and never written directly by callers.
type Course struct {
	ID              string               `db:"id" json:"id"`
	Title           string               `db:"title" json:"title"`
	Code            string               `db:"code" json:"code"`
	Credits         int                  `db:"credits" json:"credits"`
	Classification  CourseClassification `db:"classification" json:"classification"`
	DefaultCapacity int                  `db:"default_capacity" json:"default_capacity"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
}

// CourseUpdate carries the writable fields of a partial course update.
// Nil fields are left untouched. DefaultCapacity is populated by the service
// when the classification changes, never from request input.
type CourseUpdate struct {
	Title           *string
	Code            *string
	Credits         *int
	Classification  *CourseClassification
	DefaultCapacity *int
}

// Empty reports whether the patch carries no writable fields.
func (u CourseUpdate) Empty() bool {
	return u.Title == nil && u.Code == nil && u.Credits == nil && u.Classification == nil && u.DefaultCapacity == nil
}

// CourseEnrollmentRef is the slim enrollment projection used when computing
// per-course enrollment statistics.
type CourseEnrollmentRef struct {
	CourseID  string           `db:"course_id"`
	StudentID string           `db:"student_id"`
	Status    EnrollmentStatus `db:"status"`
}

// CourseProgramRef links a course to one of its affiliated programs.
type CourseProgramRef struct {
	CourseID  string `db:"course_id"`
	ProgramID string `db:"program_id"`
}
