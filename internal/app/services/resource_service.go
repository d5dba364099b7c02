package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
)

// ResourceStore is the resource and condition persistence the API needs.
type ResourceStore interface {
	Create(ctx context.Context, r *models.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ResourceListing, error)
	ListAvailable(ctx context.Context) ([]models.ResourceListing, error)
	ListBySupplier(ctx context.Context, s models.Supplier) ([]models.ResourceListing, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error
	ListConditions(ctx context.Context, resourceID uuid.UUID) ([]models.ResourceCondition, error)
	UpsertCondition(ctx context.Context, c models.ResourceCondition) (int64, error)
	DeleteCondition(ctx context.Context, resourceID uuid.UUID, departmentID string) error
	DeleteConditions(ctx context.Context, resourceID uuid.UUID) (int64, error)
}

// ResourceService publishes resources and maintains their eligibility conditions
type ResourceService struct {
	resources ResourceStore
	users     UserStore
	lgr       zerolog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(resources ResourceStore, users UserStore, lgr zerolog.Logger) *ResourceService {
	return &ResourceService{
		resources: resources,
		users:     users,
		lgr:       lgr,
	}
}

// supplierOf resolves the department or company the caller manages.
func (s *ResourceService) supplierOf(ctx context.Context, userID uuid.UUID) (models.Supplier, error) {
	supplier, err := s.users.SupplierOf(ctx, userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrPermissionDenied
	}
	return supplier, err
}

// owned returns the resource after checking the caller supplies it.
func (s *ResourceService) owned(ctx context.Context, userID, resourceID uuid.UUID) (*models.ResourceListing, error) {
	supplier, err := s.supplierOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	res, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !res.SuppliedBy(supplier) {
		return nil, apperrors.ErrPermissionDenied
	}
	return res, nil
}

// Create publishes a resource on behalf of the caller's department or company.
// It stays Unavailable until a condition is added.
func (s *ResourceService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateResourceRequest) (uuid.UUID, error) {
	supplier, err := s.supplierOf(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}

	res := &models.Resource{
		ID:          uuid.New(),
		Type:        req.ResourceType,
		Quota:       req.Quota,
		Supplier:    supplier,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusUnavailable,
	}
	if req.Deadline != "" {
		deadline, err := time.ParseInLocation(dto.DateLayout, req.Deadline, models.LocalZone)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: deadline %q", apperrors.ErrValidationFailed, req.Deadline)
		}
		res.Deadline = deadline
	}

	if err := s.resources.Create(ctx, res); err != nil {
		return uuid.Nil, err
	}
	s.lgr.Info().Str("resourceID", res.ID.String()).Str("supplier", supplier.DisplayName()).Msg("Resource created")
	return res.ID, nil
}

// ListAvailable returns every open resource with its conditions.
func (s *ResourceService) ListAvailable(ctx context.Context) ([]dto.ResourceResponse, error) {
	listings, err := s.resources.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResourceResponse, 0, len(listings))
	for _, l := range listings {
		conds := l.Conditions
		if conds == nil {
			conds = []models.ResourceCondition{}
		}
		out = append(out, dto.NewResourceResponse(l.Resource, l.SupplierName, conds))
	}
	return out, nil
}

// ListMine returns the resources the caller's supplier offers.
func (s *ResourceService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ResourceResponse, error) {
	supplier, err := s.supplierOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	listings, err := s.resources.ListBySupplier(ctx, supplier)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResourceResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.NewResourceResponse(l.Resource, l.SupplierName, nil))
	}
	return out, nil
}

// Get returns one resource with its conditions.
func (s *ResourceService) Get(ctx context.Context, resourceID uuid.UUID) (*dto.ResourceResponse, error) {
	res, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	conds, err := s.resources.ListConditions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if conds == nil {
		conds = []models.ResourceCondition{}
	}
	resp := dto.NewResourceResponse(res.Resource, res.SupplierName, conds)
	return &resp, nil
}

func conditionOf(resourceID uuid.UUID, req *dto.UpsertConditionRequest) models.ResourceCondition {
	return models.ResourceCondition{
		ResourceID:   resourceID,
		DepartmentID: req.DepartmentID,
		AvgGPA:       req.AvgGPA,
		CurrentGPA:   req.CurrentGPA,
		IsPoor:       req.IsPoor,
	}
}

func validThreshold(req *dto.UpsertConditionRequest) error {
	for name, v := range map[string]*decimal.Decimal{"avgGpa": req.AvgGPA, "currentGpa": req.CurrentGPA} {
		if v != nil && (v.IsNegative() || v.GreaterThan(models.MaxGPA)) {
			return fmt.Errorf("%w: %s must be between 0 and %s", apperrors.ErrValidationFailed, name, models.MaxGPA)
		}
	}
	return nil
}

// AddCondition sets the condition of one department and opens the resource for applications.
func (s *ResourceService) AddCondition(ctx context.Context, userID, resourceID uuid.UUID, req *dto.UpsertConditionRequest) (*dto.ConditionAddedResponse, error) {
	if err := s.upsert(ctx, userID, resourceID, req); err != nil {
		return nil, err
	}
	if err := s.resources.SetStatus(ctx, resourceID, models.StatusAvailable); err != nil {
		return nil, err
	}
	conds, err := s.resources.ListConditions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return &dto.ConditionAddedResponse{TotalConditions: len(conds), Status: models.StatusAvailable}, nil
}

// UpsertCondition replaces the condition of one department without touching the resource status.
func (s *ResourceService) UpsertCondition(ctx context.Context, userID, resourceID uuid.UUID, req *dto.UpsertConditionRequest) (*dto.ConditionResponse, error) {
	if err := s.upsert(ctx, userID, resourceID, req); err != nil {
		return nil, err
	}
	resp := dto.NewConditionResponses([]models.ResourceCondition{conditionOf(resourceID, req)})[0]
	return &resp, nil
}

func (s *ResourceService) upsert(ctx context.Context, userID, resourceID uuid.UUID, req *dto.UpsertConditionRequest) error {
	if err := validThreshold(req); err != nil {
		return err
	}
	if _, err := s.owned(ctx, userID, resourceID); err != nil {
		return err
	}
	eligible, err := s.resources.UpsertCondition(ctx, conditionOf(resourceID, req))
	if err != nil {
		return err
	}
	s.lgr.Info().Str("resourceID", resourceID.String()).Str("departmentID", req.DepartmentID).Int64("eligible", eligible).Msg("Condition saved")
	return nil
}

// ListConditions returns the conditions of a resource the caller supplies.
func (s *ResourceService) ListConditions(ctx context.Context, userID, resourceID uuid.UUID) ([]dto.ConditionResponse, error) {
	if _, err := s.owned(ctx, userID, resourceID); err != nil {
		return nil, err
	}
	conds, err := s.resources.ListConditions(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return dto.NewConditionResponses(conds), nil
}

// DeleteCondition removes the condition of one department.
func (s *ResourceService) DeleteCondition(ctx context.Context, userID, resourceID uuid.UUID, departmentID string) error {
	if _, err := s.owned(ctx, userID, resourceID); err != nil {
		return err
	}
	return s.resources.DeleteCondition(ctx, resourceID, departmentID)
}

// DeleteConditions removes every condition of a resource and returns how many were removed.
func (s *ResourceService) DeleteConditions(ctx context.Context, userID, resourceID uuid.UUID) (int64, error) {
	if _, err := s.owned(ctx, userID, resourceID); err != nil {
		return 0, err
	}
	return s.resources.DeleteConditions(ctx, resourceID)
}
