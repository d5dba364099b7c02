package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Level is the enrollment track encoded as the first character of a student number
type Level string

const (
	LevelStandard Level = "B" // single track
	LevelCombined Level = "R" // undergraduate then graduate
)

// StudentProfile defines the student model based on the 'student_profile' table
type StudentProfile struct {
	UserID       uuid.UUID `db:"user_id"`
	StudentID    string    `db:"student_id"` // level + entry year (2 digits) + department (3 chars) + sequence (3 digits)
	DepartmentID string    `db:"department_id"`
	EntryYear    int       `db:"entry_year"` // local calendar epoch
	Grade        int       `db:"grade"`
	IsPoor       bool      `db:"is_poor"` // maintained through the API, never generated
	Level        Level
}

// GPASummary is a row of the student_gpa_summary view. Nil means no graded semester.
type GPASummary struct {
	AvgGPA     *decimal.Decimal `db:"avg_gpa"`
	CurrentGPA *decimal.Decimal `db:"current_gpa"`
}
