package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Department code: four upper-case letters or digits, e.g. 7050 or A120
	DepartmentCodePattern = `^[0-9A-Z]{4}$`

	// Student number: level letter, two-digit entry year, department prefix, three-digit counter
	StudentIDPattern = `^[BR]\d{2}[0-9A-Z]{3}\d{3,}$`

	// Semester label: ROC year and half, e.g. 113-1
	SemesterPattern = `^\d{2,3}-[12]$`

	// Department name bounds, matching department_profile.department_name
	DepartmentNameMinLength = 2
	DepartmentNameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DepartmentCode *regexp.Regexp
	StudentID      *regexp.Regexp
	Semester       *regexp.Regexp
}{
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
	StudentID:      regexp.MustCompile(StudentIDPattern),
	Semester:       regexp.MustCompile(SemesterPattern),
}

// StringValidation checks a single string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in runes
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	// Column widths count characters, not bytes
	n := len([]rune(v.Value))
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsDepartmentCode reports whether code is a well-formed department code
func IsDepartmentCode(code string) bool {
	return NewStringValidation(code).WithPattern(CompiledPatterns.DepartmentCode).Validate()
}

// IsDepartmentName reports whether name fits the department name column
func IsDepartmentName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(DepartmentNameMinLength).
		WithMaxLength(DepartmentNameMaxLength).
		Validate()
}
