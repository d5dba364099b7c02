package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
)

// DateLayout is the wire format of date-only fields
const DateLayout = "2006-01-02"

// CreateResourceRequest represents a new resource offered by the caller
type CreateResourceRequest struct {
	ResourceType models.ResourceType `json:"resourceType" binding:"required,oneof=Scholarship Internship Lab Competition Others"`
	Quota        int                 `json:"quota" binding:"required,gt=0"`
	Title        string              `json:"title" binding:"required,max=200"`
	Deadline     string              `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Description  string              `json:"description" binding:"required"`
}

// UpsertConditionRequest sets the eligibility rule of one department. Absent thresholds mean no requirement.
type UpsertConditionRequest struct {
	DepartmentID string           `json:"departmentId" binding:"required,max=10"`
	AvgGPA       *decimal.Decimal `json:"avgGpa"`
	CurrentGPA   *decimal.Decimal `json:"currentGpa"`
	IsPoor       bool             `json:"isPoor"`
}

// ConditionResponse is one eligibility rule of a resource
type ConditionResponse struct {
	DepartmentID string           `json:"departmentId"`
	AvgGPA       *decimal.Decimal `json:"avgGpa"`
	CurrentGPA   *decimal.Decimal `json:"currentGpa"`
	IsPoor       bool             `json:"isPoor"`
}

// ResourceResponse is a resource as listed by the API
type ResourceResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Type                 models.ResourceType   `json:"resourceType"`
	Quota                int                   `json:"quota"`
	Title                string                `json:"title"`
	Deadline             *string               `json:"deadline"`
	Description          string                `json:"description"`
	Status               models.ResourceStatus `json:"status"`
	DepartmentSupplierID *string               `json:"departmentSupplierId,omitempty"`
	CompanySupplierID    *uuid.UUID            `json:"companySupplierId,omitempty"`
	SupplierName         string                `json:"supplierName,omitempty"`
	Conditions           []ConditionResponse   `json:"conditions,omitempty"`
}

// CreatedResourceResponse reports the id of a new resource
type CreatedResourceResponse struct {
	ResourceID uuid.UUID `json:"resourceId"`
}

// ConditionAddedResponse reports the number of rules a resource has after a change
type ConditionAddedResponse struct {
	TotalConditions int                   `json:"totalConditions"`
	Status          models.ResourceStatus `json:"status"`
}

// NewConditionResponses maps conditions to their wire form
func NewConditionResponses(conds []models.ResourceCondition) []ConditionResponse {
	out := make([]ConditionResponse, 0, len(conds))
	for _, c := range conds {
		out = append(out, ConditionResponse{
			DepartmentID: c.DepartmentID,
			AvgGPA:       c.AvgGPA,
			CurrentGPA:   c.CurrentGPA,
			IsPoor:       c.IsPoor,
		})
	}
	return out
}

// NewResourceResponse maps a resource and its optional listing fields
func NewResourceResponse(r models.Resource, supplierName string, conds []models.ResourceCondition) ResourceResponse {
	resp := ResourceResponse{
		ID:           r.ID,
		Type:         r.Type,
		Quota:        r.Quota,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		SupplierName: supplierName,
	}
	resp.DepartmentSupplierID, resp.CompanySupplierID = r.SupplierColumns()
	if !r.Deadline.IsZero() {
		d := r.Deadline.Format(DateLayout)
		resp.Deadline = &d
	}
	if conds != nil {
		resp.Conditions = NewConditionResponses(conds)
	}
	return resp
}
