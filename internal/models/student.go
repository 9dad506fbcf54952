package models

// Student represents a student referenced by enrollments.
type Student struct {
	ID             string  `db:"id" json:"id"`
	RegNumber      string  `db:"reg_number" json:"reg_number"`
	FirstName      string  `db:"first_name" json:"first_name"`
	LastName       string  `db:"last_name" json:"last_name"`
	Email          string  `db:"email" json:"email"`
	ProfilePicture *string `db:"profile_picture" json:"profile_picture,omitempty"`
	ProgramID      *string `db:"program_id" json:"program_id,omitempty"`
}
