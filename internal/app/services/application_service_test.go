package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/logger"
)

func TestEligible(t *testing.T) {
	profile := &models.StudentProfile{DepartmentID: "7050"}
	tests := []struct {
		name    string
		conds   []models.ResourceCondition
		summary models.GPASummary
		poor    bool
		want    bool
	}{
		{
			name:  "no requirement",
			conds: []models.ResourceCondition{{DepartmentID: "7050"}},
			want:  true,
		},
		{
			name:    "meets both thresholds",
			conds:   []models.ResourceCondition{{DepartmentID: "7050", AvgGPA: gpa("3.0"), CurrentGPA: gpa("3.5")}},
			summary: models.GPASummary{AvgGPA: gpa("3.0"), CurrentGPA: gpa("3.7")},
			want:    true,
		},
		{
			name:    "below current threshold",
			conds:   []models.ResourceCondition{{DepartmentID: "7050", CurrentGPA: gpa("3.5")}},
			summary: models.GPASummary{AvgGPA: gpa("4.0"), CurrentGPA: gpa("3.49")},
			want:    false,
		},
		{
			name:  "threshold without any graded semester",
			conds: []models.ResourceCondition{{DepartmentID: "7050", AvgGPA: gpa("1.0")}},
			want:  false,
		},
		{
			name:  "other department only",
			conds: []models.ResourceCondition{{DepartmentID: "7060"}},
			want:  false,
		},
		{
			name:  "poverty required",
			conds: []models.ResourceCondition{{DepartmentID: "7050", IsPoor: true}},
			want:  false,
		},
		{
			name:  "poverty required and met",
			conds: []models.ResourceCondition{{DepartmentID: "7050", IsPoor: true}},
			poor:  true,
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := *profile
			p.IsPoor = tt.poor
			if got := Eligible(tt.conds, &p, tt.summary); got != tt.want {
				t.Errorf("Eligible = %v, want %v", got, tt.want)
			}
		})
	}
}

type applicationFixture struct {
	svc          *ApplicationService
	resources    *fakeResources
	students     *fakeStudents
	applications *fakeApplications
	student      uuid.UUID
	open         *models.ResourceListing
}

func newApplicationFixture() *applicationFixture {
	resources := newFakeResources()
	students := newFakeStudents()
	applications := newFakeApplications()
	f := &applicationFixture{
		svc:          NewApplicationService(applications, resources, students, logger.Nop()),
		resources:    resources,
		students:     students,
		applications: applications,
		student:      uuid.New(),
	}
	f.open = resources.add(models.Resource{
		Title:    "Lab assistant",
		Supplier: models.DepartmentSupplier{DepartmentID: "7050"},
		Status:   models.StatusAvailable,
	}, "Computer Science")
	resources.conditions[f.open.ID] = map[string]models.ResourceCondition{
		"7050": {ResourceID: f.open.ID, DepartmentID: "7050", AvgGPA: gpa("3.0")},
	}
	students.profiles[f.student] = &models.StudentProfile{UserID: f.student, DepartmentID: "7050"}
	students.gpa[f.student] = models.GPASummary{AvgGPA: gpa("3.2"), CurrentGPA: gpa("3.1")}
	return f
}

func TestApplicationService_Apply(t *testing.T) {
	f := newApplicationFixture()
	// 23:30 UTC is already the next day in UTC+8
	f.svc.now = func() time.Time { return time.Date(2025, 10, 1, 23, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	resp, err := f.svc.Apply(ctx, f.student, f.open.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if resp.ApplyDate != "2025-10-02" || resp.Status != models.ReviewSubmitted || resp.SupplierName != "Computer Science" {
		t.Errorf("response = %+v", resp)
	}

	if _, err := f.svc.Apply(ctx, f.student, f.open.ID); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("second apply: expected ErrAlreadyApplied, got %v", err)
	}

	mine, err := f.svc.ListMine(ctx, f.student)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListMine = %v, %v", mine, err)
	}

	if err := f.svc.Withdraw(ctx, f.student, f.open.ID); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if err := f.svc.Withdraw(ctx, f.student, f.open.ID); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("second withdraw: expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationService_Apply_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("missing resource", func(t *testing.T) {
		f := newApplicationFixture()
		if _, err := f.svc.Apply(ctx, f.student, uuid.New()); !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("closed resource", func(t *testing.T) {
		f := newApplicationFixture()
		f.open.Status = models.StatusFull
		if _, err := f.svc.Apply(ctx, f.student, f.open.ID); !errors.Is(err, apperrors.ErrResourceUnavailable) {
			t.Errorf("expected ErrResourceUnavailable, got %v", err)
		}
	})

	t.Run("no profile", func(t *testing.T) {
		f := newApplicationFixture()
		if _, err := f.svc.Apply(ctx, uuid.New(), f.open.ID); !errors.Is(err, apperrors.ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("no conditions", func(t *testing.T) {
		f := newApplicationFixture()
		delete(f.resources.conditions, f.open.ID)
		if _, err := f.svc.Apply(ctx, f.student, f.open.ID); !errors.Is(err, apperrors.ErrNoConditions) {
			t.Errorf("expected ErrNoConditions, got %v", err)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		f := newApplicationFixture()
		f.students.gpa[f.student] = models.GPASummary{AvgGPA: gpa("2.9")}
		if _, err := f.svc.Apply(ctx, f.student, f.open.ID); !errors.Is(err, apperrors.ErrNotEligible) {
			t.Errorf("expected ErrNotEligible, got %v", err)
		}
		if len(f.applications.rows) != 0 {
			t.Error("ineligible application stored")
		}
	})
}
