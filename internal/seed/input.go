package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/validation"
)

// splitPrograms lists department codes that appear twice in the department table,
// once for the six-year and once for the four-year program.
var splitPrograms = map[string]string{
	"A120": "藥學系",
	"B040": "物理治療學系",
}

const (
	sixYearSuffix  = "(六年制)"
	fourYearSuffix = "(四年制)"
	courseNameCol  = 4
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// LoadDepartments reads the code,name department table. The first row is a header.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadDepartments(path string, lgr zerolog.Logger) ([]models.Department, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open department table: %w", err)
	}
	defer f.Close()
	return ParseDepartments(f, lgr)
}

// ParseDepartments parses a department table from r.
func ParseDepartments(r io.Reader, lgr zerolog.Logger) ([]models.Department, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("failed to read department header: %v", err))
	}

	seen := make(map[string]int)
	var departments []models.Department
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("malformed department row: %v", err))
		}
		if len(row) < 2 {
			continue
		}

		code := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		if !validation.IsDepartmentCode(code) {
			lgr.Warn().Str("code", code).Msg("Malformed department code, skipping row")
			continue
		}
		name := row[1]
		seen[code]++
		n := seen[code]

		id := code
		if base, ok := splitPrograms[code]; ok {
			switch n {
			case 1:
				name = base + sixYearSuffix
			case 2:
				name = base + fourYearSuffix
				id = code + "-4"
			}
		}
		if n > 1 && id == code {
			lgr.Warn().Str("code", code).Msg("Duplicate department code, skipping row")
			continue
		}

		name = strings.ReplaceAll(strings.TrimSpace(name), " ", "")
		if !validation.IsDepartmentName(name) {
			lgr.Warn().Str("code", code).Msg("Department name is too short or too long, skipping row")
			continue
		}
		departments = append(departments, models.Department{
			ID:   id,
			Code: code,
			Name: name,
			Abbr: firstRunes(name, 3),
		})
	}
	return departments, nil
}

// LoadCourseNames reads course names from column 4 of the course table, de-duplicated in order.
// When the file is missing or yields no names, the placeholder list Course_1..Course_1000
// is returned with fallback set.
func LoadCourseNames(path string) (names []string, fallback bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return placeholderCourseNames(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open course table: %w", err)
	}
	defer f.Close()

	names, err = ParseCourseNames(f)
	if err != nil {
		return nil, false, err
	}
	if len(names) == 0 {
		return placeholderCourseNames(), true, nil
	}
	return names, false, nil
}

// ParseCourseNames extracts the distinct non-empty names of column 4. Short rows are ignored.
func ParseCourseNames(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	seen := make(map[string]struct{})
	var names []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("malformed course row: %v", err))
		}
		if len(row) <= courseNameCol {
			continue
		}
		name := strings.TrimSpace(row[courseNameCol])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func placeholderCourseNames() []string {
	names := make([]string, 1000)
	for i := range names {
		names[i] = fmt.Sprintf("Course_%d", i+1)
	}
	return names
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// usernamePrefix keeps the ASCII letters and digits of the abbreviation,
// falling back to the lower-cased code.
func usernamePrefix(d models.Department) string {
	if safe := nonAlnum.ReplaceAllString(d.Abbr, ""); safe != "" {
		return safe
	}
	return strings.ToLower(d.Code)
}
