package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

// ApplicationStore is the application persistence the API needs.
type ApplicationStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ApplicationListing, error)
	Exists(ctx context.Context, userID, resourceID uuid.UUID) (bool, error)
	Create(ctx context.Context, a *models.Application) error
	Delete(ctx context.Context, userID, resourceID uuid.UUID) error
}

// ApplicationService lets students apply for the resources they qualify for
type ApplicationService struct {
	applications ApplicationStore
	resources    ResourceStore
	students     StudentStore
	now          func() time.Time
	lgr          zerolog.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(applications ApplicationStore, resources ResourceStore, students StudentStore, lgr zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		resources:    resources,
		students:     students,
		now:          time.Now,
		lgr:          lgr,
	}
}

// ListMine returns the caller's applications, most recent first.
func (s *ApplicationService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ApplicationResponse, error) {
	rows, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewApplicationResponse(r))
	}
	return out, nil
}

// Apply records an application after checking the resource is open and the caller meets
// the condition set for their department.
func (s *ApplicationService) Apply(ctx context.Context, userID, resourceID uuid.UUID) (*dto.ApplicationResponse, error) {
	res, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if res.Status != models.StatusAvailable {
		return nil, apperrors.ErrResourceUnavailable
	}

	profile, err := s.students.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	conds, err := s.resources.ListConditions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if len(conds) == 0 {
		return nil, apperrors.ErrNoConditions
	}

	gpa, err := s.students.GPASummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !Eligible(conds, profile, gpa) {
		return nil, apperrors.ErrNotEligible
	}

	applied, err := s.applications.Exists(ctx, userID, resourceID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		UserID:       userID,
		ResourceID:   resourceID,
		ApplyDate:    helpers.DateOf(s.now().In(models.LocalZone)),
		ReviewStatus: models.ReviewSubmitted,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	s.lgr.Info().Str("userID", userID.String()).Str("resourceID", resourceID.String()).Msg("Application submitted")

	resp := dto.NewApplicationResponse(models.ApplicationListing{
		ResourceID:    resourceID,
		ResourceTitle: res.Title,
		SupplierName:  res.SupplierName,
		ApplyDate:     app.ApplyDate,
		Status:        app.ReviewStatus,
	})
	return &resp, nil
}

// Withdraw removes the caller's application for a resource.
func (s *ApplicationService) Withdraw(ctx context.Context, userID, resourceID uuid.UUID) error {
	if err := s.applications.Delete(ctx, userID, resourceID); err != nil {
		return err
	}
	s.lgr.Info().Str("userID", userID.String()).Str("resourceID", resourceID.String()).Msg("Application withdrawn")
	return nil
}

// Eligible reports whether a student passes the condition of their own department.
// A threshold the student has no GPA for is not met.
func Eligible(conds []models.ResourceCondition, profile *models.StudentProfile, gpa models.GPASummary) bool {
	for _, c := range conds {
		if c.DepartmentID != profile.DepartmentID {
			continue
		}
		if !meets(gpa.AvgGPA, c.AvgGPA) || !meets(gpa.CurrentGPA, c.CurrentGPA) {
			return false
		}
		return !c.IsPoor || profile.IsPoor
	}
	return false
}

func meets(value, threshold *decimal.Decimal) bool {
	if threshold == nil {
		return true
	}
	return value != nil && value.GreaterThanOrEqual(*threshold)
}
