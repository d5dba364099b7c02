package seed

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
)

// AcademicHistory is the output of the course stage.
type AcademicHistory struct {
	Catalog []models.CourseOffering
	Records []models.CourseRecord
	GPAs    []models.SemesterGPA
}

// GenerateAcademicHistory builds a catalog for every semester any student attended, assigns each
// student courses until the semester's credit minimum is met, and computes the semester GPA.
func GenerateAcademicHistory(src *Source, cfg config.GeneratorConfig, enrollments []Enrollment, courseNames []string) AcademicHistory {
	var semesters []models.Semester
	for _, e := range enrollments {
		semesters = append(semesters, e.Semesters...)
	}
	slices.SortFunc(semesters, compareSemesters)
	semesters = slices.Compact(semesters)

	ids := NewCourseIDAllocator(src)
	offerings := make(map[models.Semester][]models.CourseOffering, len(semesters))
	var history AcademicHistory
	for _, sem := range semesters {
		pool := make([]models.CourseOffering, 0, cfg.CoursesPerSemester)
		for i := 0; i < cfg.CoursesPerSemester; i++ {
			pool = append(pool, models.CourseOffering{
				ID:       ids.Next(),
				Credit:   pick(src, cfg.CourseCreditChoices),
				Name:     pick(src, courseNames),
				Semester: sem,
			})
		}
		offerings[sem] = pool
		history.Catalog = append(history.Catalog, pool...)
	}

	for _, e := range enrollments {
		for _, sem := range e.Semesters {
			records := assignCourses(src, e.Profile.UserID, offerings[sem], cfg.MinCreditsPerSemester, cfg.ScoreChoices)
			if len(records) == 0 {
				continue
			}
			history.Records = append(history.Records, records...)
			history.GPAs = append(history.GPAs, models.SemesterGPA{
				UserID:   e.Profile.UserID,
				Semester: sem,
				GPA:      ComputeGPA(records),
			})
		}
	}
	return history
}

// assignCourses walks a shuffled copy of the semester pool, taking courses until minCredits is reached.
// Each course is taken at most once. A pool worth fewer credits than the minimum is taken whole.
func assignCourses(src *Source, userID uuid.UUID, offerings []models.CourseOffering, minCredits int, scores []float64) []models.CourseRecord {
	pool := slices.Clone(offerings)
	shuffle(src, pool)

	var records []models.CourseRecord
	total := 0
	for _, c := range pool {
		if total >= minCredits {
			break
		}
		total += c.Credit
		records = append(records, models.CourseRecord{
			UserID:     userID,
			Semester:   c.Semester,
			CourseID:   c.ID,
			CourseName: c.Name,
			Credit:     c.Credit,
			Score:      pick(src, scores),
		})
	}
	return records
}

var gpaPlaces int32 = 3

// ComputeGPA is the credit-weighted mean score rounded half up to three places. It is zero without credits.
func ComputeGPA(records []models.CourseRecord) decimal.Decimal {
	weighted := decimal.Zero
	credits := decimal.Zero
	for _, r := range records {
		c := decimal.NewFromInt(int64(r.Credit))
		weighted = weighted.Add(decimal.NewFromFloat(r.Score).Mul(c))
		credits = credits.Add(c)
	}
	if credits.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(credits).Round(gpaPlaces)
}
