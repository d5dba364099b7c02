package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

type reviewDraw struct {
	statuses []models.ReviewStatus
	weights  []float64
}

var reviewDraws = map[models.ResourceStatus]reviewDraw{
	models.StatusAvailable: {
		statuses: []models.ReviewStatus{models.ReviewSubmitted, models.ReviewUnderReview, models.ReviewApproved, models.ReviewRejected},
		weights:  []float64{0.3, 0.3, 0.2, 0.2},
	},
	models.StatusUnavailable: {
		statuses: []models.ReviewStatus{models.ReviewUnderReview, models.ReviewApproved, models.ReviewRejected},
		weights:  []float64{0.4, 0.4, 0.2},
	},
}

// withoutApproved drops the approved outcome and its weight.
func (d reviewDraw) withoutApproved() reviewDraw {
	var out reviewDraw
	for i, s := range d.statuses {
		if s == models.ReviewApproved {
			continue
		}
		out.statuses = append(out.statuses, s)
		out.weights = append(out.weights, d.weights[i])
	}
	return out
}

// GenerateApplications lets every student apply to 1..MaxApplicationsPerStudent distinct resources.
// The review outcome depends on the resource status, and no resource approves more than its quota.
func GenerateApplications(src *Source, cfg config.GeneratorConfig, students []models.User, resources []models.Resource, now time.Time) []models.Application {
	if len(resources) == 0 {
		return nil
	}
	today := helpers.DateOf(now.In(models.LocalZone))
	approved := make(map[uuid.UUID]int, len(resources))

	var apps []models.Application
	for _, s := range students {
		n := src.IntRange(1, cfg.MaxApplicationsPerStudent)
		for _, r := range sample(src, resources, n) {
			date := applyDate(src, s.RegisteredAt, r.Deadline, today)
			status := reviewOutcome(src, r, approved[r.ID] >= r.Quota)
			if status == models.ReviewApproved {
				approved[r.ID]++
			}
			apps = append(apps, models.Application{
				UserID:       s.ID,
				ResourceID:   r.ID,
				ApplyDate:    date,
				ReviewStatus: status,
			})
		}
	}
	return apps
}

// applyDate is uniform between the registration day and the earlier of deadline and today.
// When registration is later than that bound the bound itself is used.
func applyDate(src *Source, registered, deadline, today time.Time) time.Time {
	start := helpers.DateOf(registered.In(models.LocalZone))
	end := today
	if !deadline.IsZero() && deadline.Before(end) {
		end = deadline
	}
	if start.After(end) {
		return end
	}
	return helpers.AddDays(start, src.IntRange(0, helpers.DaysBetween(start, end)))
}

func reviewOutcome(src *Source, r models.Resource, quotaFull bool) models.ReviewStatus {
	switch r.Status {
	case models.StatusCanceled:
		return models.ReviewRejected
	case models.StatusFull:
		if quotaFull {
			return models.ReviewRejected
		}
		return models.ReviewApproved
	}

	draw, ok := reviewDraws[r.Status]
	if !ok {
		draw = reviewDraws[models.StatusAvailable]
	}
	if quotaFull {
		draw = draw.withoutApproved()
	}
	return weighted(src, draw.statuses, draw.weights)
}
