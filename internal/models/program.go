package models

// Program represents a degree program.
type Program struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Type         string `db:"type" json:"type"`
	TotalCredits int    `db:"total_credits" json:"total_credits"`
}

// ProgramStudentRow is the flat join row for the affiliated-programs
// projection: one row per (program, student) pair, student columns nullable
// for programs without students.
type ProgramStudentRow struct {
	ProgramID    string  `db:"program_id"`
	ProgramName  string  `db:"program_name"`
	ProgramType  string  `db:"program_type"`
	TotalCredits int     `db:"total_credits"`
	StudentID    *string `db:"student_id"`
	RegNumber    *string `db:"reg_number"`
}
