package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusPending   EnrollmentStatus = "PENDING"
	EnrollmentStatusApproved  EnrollmentStatus = "APPROVED"
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusRejected  EnrollmentStatus = "REJECTED"
	EnrollmentStatusCancelled EnrollmentStatus = "CANCELLED"
)

// CountedStatuses are the statuses that count toward enrolled-student
// statistics and listings. The delete guard deliberately ignores this
// whitelist: any enrollment row blocks course deletion.
var CountedStatuses = []EnrollmentStatus{
	EnrollmentStatusApproved,
	EnrollmentStatusActive,
	EnrollmentStatusCompleted,
}

// Counted reports whether the status contributes to enrolled-student counts
// and listings. Shared by the statistics aggregation and the enrolled-students
// projection so the two cannot drift apart.
func (s EnrollmentStatus) Counted() bool {
	switch s {
	case EnrollmentStatusApproved, EnrollmentStatusActive, EnrollmentStatusCompleted:
		return true
	}
	return false
}

// Enrollment captures a student's registration to a course within a session.
type Enrollment struct {
	ID              string           `db:"id" json:"id"`
	StudentID       string           `db:"student_id" json:"student_id"`
	CourseID        string           `db:"course_id" json:"course_id"`
	SessionID       string           `db:"session_id" json:"session_id"`
	Status          EnrollmentStatus `db:"status" json:"status"`
	SpecialRequest  *string          `db:"special_request" json:"special_request,omitempty"`
	RejectionReason *string          `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// EnrolledStudentRow is the flat join row behind the enrolled-students
// projection: enrollment fields plus the student, the student's program and
// the session the enrollment belongs to.
type EnrolledStudentRow struct {
	StudentID       string           `db:"student_id"`
	RegNumber       string           `db:"reg_number"`
	FirstName       string           `db:"first_name"`
	LastName        string           `db:"last_name"`
	Email           string           `db:"email"`
	ProfilePicture  *string          `db:"profile_picture"`
	ProgramID       *string          `db:"program_id"`
	ProgramName     *string          `db:"program_name"`
	ProgramType     *string          `db:"program_type"`
	SessionID       string           `db:"session_id"`
	SessionName     string           `db:"session_name"`
	Status          EnrollmentStatus `db:"status"`
	SpecialRequest  *string          `db:"special_request"`
	RejectionReason *string          `db:"rejection_reason"`
	EnrolledAt      time.Time        `db:"created_at"`
}
