package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceType is the resource_type column of resource
type ResourceType string

const (
	ResourceScholarship ResourceType = "Scholarship"
	ResourceInternship  ResourceType = "Internship"
	ResourceLab         ResourceType = "Lab"
	ResourceCompetition ResourceType = "Competition"
	ResourceOthers      ResourceType = "Others"
)

// ResourceTypes lists every resource type in draw order.
var ResourceTypes = []ResourceType{
	ResourceScholarship, ResourceInternship, ResourceLab, ResourceCompetition, ResourceOthers,
}

// ResourceStatus is the status column of resource
type ResourceStatus string

const (
	StatusAvailable   ResourceStatus = "Available"
	StatusUnavailable ResourceStatus = "Unavailable"
	StatusCanceled    ResourceStatus = "Canceled"
	StatusFull        ResourceStatus = "Full"
)

// Supplier is the single offering party of a resource: either a DepartmentSupplier or a CompanySupplier.
type Supplier interface {
	// ContactUserID is the account that manages the supplier.
	ContactUserID() uuid.UUID
	// DisplayName is used to template resource titles.
	DisplayName() string
	isSupplier()
}

// DepartmentSupplier marks a resource offered by a department
type DepartmentSupplier struct {
	DepartmentID string
	Contact      uuid.UUID
	Name         string
}

func (s DepartmentSupplier) ContactUserID() uuid.UUID { return s.Contact }
func (s DepartmentSupplier) DisplayName() string      { return s.Name }
func (DepartmentSupplier) isSupplier()                {}

// CompanySupplier marks a resource offered by a company
type CompanySupplier struct {
	CompanyID uuid.UUID
	Contact   uuid.UUID
	Name      string
}

func (s CompanySupplier) ContactUserID() uuid.UUID { return s.Contact }
func (s CompanySupplier) DisplayName() string      { return s.Name }
func (CompanySupplier) isSupplier()                {}

// Resource defines the resource model based on the 'resource' table
type Resource struct {
	ID          uuid.UUID      `db:"resource_id"`
	Type        ResourceType   `db:"resource_type"`
	Quota       int            `db:"quota"`
	Supplier    Supplier       // department_supplier_id / company_supplier_id
	Title       string         `db:"title"`
	Deadline    time.Time      `db:"deadline"` // date only, midnight LocalZone
	Description string         `db:"description"`
	Status      ResourceStatus `db:"status"`
	IsDeleted   bool           `db:"is_deleted"`
}

// SupplierColumns splits the supplier into the two nullable foreign key columns.
func (r Resource) SupplierColumns() (departmentID *string, companyID *uuid.UUID) {
	switch s := r.Supplier.(type) {
	case DepartmentSupplier:
		id := s.DepartmentID
		return &id, nil
	case CompanySupplier:
		id := s.CompanyID
		return nil, &id
	}
	return nil, nil
}

// SuppliedBy reports whether s offers the resource. The variants of a split department
// share their code and therefore their resources.
func (r Resource) SuppliedBy(s Supplier) bool {
	switch own := r.Supplier.(type) {
	case DepartmentSupplier:
		other, ok := s.(DepartmentSupplier)
		return ok && CodeOf(own.DepartmentID) == CodeOf(other.DepartmentID)
	case CompanySupplier:
		other, ok := s.(CompanySupplier)
		return ok && own.CompanyID == other.CompanyID
	}
	return false
}

// MaxGPA is the top of the grade point scale; no threshold can exceed it.
var MaxGPA = decimal.RequireFromString("4.3")

// ResourceCondition defines a row of resource_condition. Nil thresholds mean "no requirement".
type ResourceCondition struct {
	ResourceID   uuid.UUID        `db:"resource_id"`
	DepartmentID string           `db:"department_id"`
	AvgGPA       *decimal.Decimal `db:"avg_gpa"`
	CurrentGPA   *decimal.Decimal `db:"current_gpa"`
	IsPoor       bool             `db:"is_poor"`
}
