package seed

import (
	"slices"
	"time"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

const undergraduateYears = 4

// Timeline lists the semesters a student has completed, ascending.
// Level R adds the four undergraduate years before entry, clamped at year 0.
// Any other level follows the standard track from the entry year.
func Timeline(level models.Level, entryYear, lastCompletedYear int) []models.Semester {
	var years []int
	if level == models.LevelCombined {
		for y := max(0, entryYear-undergraduateYears); y < entryYear; y++ {
			years = append(years, y)
		}
	}
	for y := entryYear; y <= lastCompletedYear; y++ {
		years = append(years, y)
	}

	semesters := make([]models.Semester, 0, 2*len(years))
	for _, y := range years {
		if y > lastCompletedYear {
			continue
		}
		semesters = append(semesters, models.Semester{Year: y, Half: 1}, models.Semester{Year: y, Half: 2})
	}
	slices.SortFunc(semesters, compareSemesters)
	return slices.Compact(semesters)
}

func compareSemesters(a, b models.Semester) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	}
	return 0
}

// CurrentAcademicYear returns override when positive, otherwise the academic year containing now.
// The current year is in progress and excluded from every timeline.
func CurrentAcademicYear(now time.Time, override int) int {
	if override > 0 {
		return override
	}
	return helpers.AcademicYear(now)
}

// Enrollment pairs a student profile with its completed semesters.
type Enrollment struct {
	Profile   models.StudentProfile
	Semesters []models.Semester
}

// BuildEnrollments computes the timeline of every profile, preserving order.
func BuildEnrollments(profiles []models.StudentProfile, lastCompletedYear int) []Enrollment {
	out := make([]Enrollment, len(profiles))
	for i, p := range profiles {
		out[i] = Enrollment{Profile: p, Semesters: Timeline(p.Level, p.EntryYear, lastCompletedYear)}
	}
	return out
}
