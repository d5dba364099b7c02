package seed

import (
	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
)

// span bounds how many semesters past its start a secondary affiliation lasts.
type span struct{ min, max int }

var (
	minorSpan       = span{3, 7}
	doubleMajorSpan = span{4, 8}
)

// GenerateAffiliations gives every student with a non-empty timeline a major row over the whole
// timeline, then independently tries a transfer, a minor and a double major.
//
// A transfer adds a second major row from a first-half semester after the first one until the end of
// the timeline. The original major row is left spanning the whole timeline, so the two overlap.
func GenerateAffiliations(src *Source, cfg config.GeneratorConfig, enrollments []Enrollment, departments []models.Department) []models.Affiliation {
	var rows []models.Affiliation
	for _, e := range enrollments {
		sems := e.Semesters
		if len(sems) == 0 {
			continue
		}
		p := e.Profile
		rows = append(rows, models.Affiliation{
			UserID:        p.UserID,
			DepartmentID:  p.DepartmentID,
			Role:          models.AffiliationMajor,
			StartSemester: sems[0],
			EndSemester:   sems[len(sems)-1],
		})

		others := otherDepartments(departments, p.DepartmentID)
		if len(others) == 0 {
			continue
		}

		var firstHalves []int
		for i, s := range sems {
			if s.IsFirstHalf() {
				firstHalves = append(firstHalves, i)
			}
		}

		if src.Chance(cfg.TransferProbability) {
			target := pick(src, others)
			if len(firstHalves) > 2 {
				start := pick(src, firstHalves[1:])
				rows = append(rows, affiliation(p, target, models.AffiliationMajor, sems[start], sems[len(sems)-1]))
			}
		}

		if src.Chance(cfg.MinorProbability) {
			target := pick(src, others)
			if len(firstHalves) > 0 {
				start := pick(src, firstHalves)
				end := min(start+src.IntRange(minorSpan.min, minorSpan.max), len(sems)-1)
				rows = append(rows, affiliation(p, target, models.AffiliationMinor, sems[start], sems[end]))
			}
		}

		if src.Chance(cfg.DoubleMajorProbability) {
			target := pick(src, others)
			if len(firstHalves) > 0 {
				start := pick(src, firstHalves)
				end := min(start+src.IntRange(doubleMajorSpan.min, doubleMajorSpan.max), len(sems)-1)
				rows = append(rows, affiliation(p, target, models.AffiliationDoubleMajor, sems[start], sems[end]))
			}
		}
	}
	return rows
}

func affiliation(p models.StudentProfile, deptID string, role models.AffiliationRole, start, end models.Semester) models.Affiliation {
	return models.Affiliation{
		UserID:        p.UserID,
		DepartmentID:  deptID,
		Role:          role,
		StartSemester: start,
		EndSemester:   end,
	}
}

func otherDepartments(departments []models.Department, exclude string) []string {
	out := make([]string, 0, len(departments))
	for _, d := range departments {
		if d.ID != exclude {
			out = append(out, d.ID)
		}
	}
	return out
}
