package models

import (
	"strings"

	"github.com/google/uuid"
)

// Department represents a row of department_profile.
// ID equals Code except for the four-year variant of a split program.
type Department struct {
	ID            string    `db:"department_id"`
	Code          string    // code as read from the department table
	Name          string    `db:"department_name"`
	Abbr          string    // first three characters of Name
	ContactUserID uuid.UUID `db:"contact_person"`
}

// Company represents a row of company_profile
type Company struct {
	ID            uuid.UUID `db:"company_id"`
	Name          string    `db:"company_name"`
	ContactUserID uuid.UUID `db:"contact_person"`
	Industry      string    `db:"industry"`
}

// CodeOf returns the department code of a department_profile id, dropping the split program suffix.
func CodeOf(departmentID string) string {
	code, _, _ := strings.Cut(departmentID, "-")
	return code
}
