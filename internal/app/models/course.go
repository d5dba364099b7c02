package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Semester is one half of an academic year in the local calendar epoch
type Semester struct {
	Year int
	Half int // 1 or 2
}

// String formats the semester the way student_course_record.semester stores it, e.g. "112-1".
func (s Semester) String() string {
	return strconv.Itoa(s.Year) + "-" + strconv.Itoa(s.Half)
}

// Before orders semesters by (year, half).
func (s Semester) Before(o Semester) bool {
	if s.Year != o.Year {
		return s.Year < o.Year
	}
	return s.Half < o.Half
}

// IsFirstHalf reports whether the semester opens its academic year.
func (s Semester) IsFirstHalf() bool {
	return s.Half == 1
}

// ParseSemester parses the "<year>-<half>" form.
func ParseSemester(v string) (Semester, error) {
	year, half, ok := strings.Cut(v, "-")
	if !ok {
		return Semester{}, fmt.Errorf("invalid semester %q", v)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Semester{}, fmt.Errorf("invalid semester year %q: %w", v, err)
	}
	h, err := strconv.Atoi(half)
	if err != nil || (h != 1 && h != 2) {
		return Semester{}, fmt.Errorf("invalid semester half %q", v)
	}
	return Semester{Year: y, Half: h}, nil
}

// CourseOffering is a catalog entry of one semester. Its ID is unique across all semesters.
type CourseOffering struct {
	ID       string
	Name     string
	Credit   int
	Semester Semester
}

// CourseRecord defines a row of student_course_record
type CourseRecord struct {
	UserID     uuid.UUID `db:"user_id"`
	Semester   Semester  `db:"semester"`
	CourseID   string    `db:"course_id"`
	CourseName string    `db:"course_name"`
	Credit     int       `db:"credit"`
	Score      float64   `db:"score"`
}

// SemesterGPA defines a row of student_gpa
type SemesterGPA struct {
	UserID   uuid.UUID       `db:"user_id"`
	Semester Semester        `db:"semester"`
	GPA      decimal.Decimal `db:"gpa"`
}

// AffiliationRole is the role column of student_department
type AffiliationRole string

const (
	AffiliationMajor       AffiliationRole = "major"
	AffiliationMinor       AffiliationRole = "minor"
	AffiliationDoubleMajor AffiliationRole = "double_major"
)

// Affiliation defines a row of student_department
type Affiliation struct {
	UserID        uuid.UUID       `db:"user_id"`
	DepartmentID  string          `db:"department_id"`
	Role          AffiliationRole `db:"role"`
	StartSemester Semester        `db:"start_semester"`
	EndSemester   Semester        `db:"end_semester"`
}
