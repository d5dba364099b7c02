package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceListing is a resource joined with its supplier name and conditions
type ResourceListing struct {
	Resource
	SupplierName string
	Conditions   []ResourceCondition
}

// ApplicationListing is an application joined with the resource it targets
type ApplicationListing struct {
	ResourceID    uuid.UUID    `db:"resource_id"`
	ResourceTitle string       `db:"resource_title"`
	SupplierName  string       `db:"supplier_name"`
	ApplyDate     time.Time    `db:"apply_date"`
	Status        ReviewStatus `db:"review_status"`
}
