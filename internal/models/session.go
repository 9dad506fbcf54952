package models

import "time"

// Session represents a teaching session (an academic term window).
type Session struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	StartDate          time.Time `db:"start_date" json:"start_date"`
	EndDate            time.Time `db:"end_date" json:"end_date"`
	EnrollmentDeadline time.Time `db:"enrollment_deadline" json:"enrollment_deadline"`
	Status             string    `db:"status" json:"status"`
}

// SessionCourseRow is the flat join row for the affiliated-sessions
// projection: session columns plus the association's own status and
// per-session capacity override.
type SessionCourseRow struct {
	SessionID          string    `db:"session_id"`
	SessionName        string    `db:"session_name"`
	StartDate          time.Time `db:"start_date"`
	EndDate            time.Time `db:"end_date"`
	EnrollmentDeadline time.Time `db:"enrollment_deadline"`
	SessionStatus      string    `db:"session_status"`
	CourseStatus       string    `db:"course_status"`
	AdjustedCapacity   *int      `db:"adjusted_capacity"`
}
