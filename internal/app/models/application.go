package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the review state of a resource application
type ReviewStatus string

const (
	ReviewSubmitted   ReviewStatus = "submitted"
	ReviewUnderReview ReviewStatus = "under_review"
	ReviewApproved    ReviewStatus = "approved"
	ReviewRejected    ReviewStatus = "rejected"
)

// Application defines a row of application
type Application struct {
	UserID       uuid.UUID    `db:"user_id"`
	ResourceID   uuid.UUID    `db:"resource_id"`
	ApplyDate    time.Time    `db:"apply_date"` // date only
	ReviewStatus ReviewStatus `db:"review_status"`
}

// RegistrationStatus is the state of an account registration request
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// RegistrationApplication defines a row of user_application: the request that preceded
// a department or company account.
type RegistrationApplication struct {
	ID            uuid.UUID          `db:"application_id"`
	User          User               // real_name .. registered_at are copied from the account
	Status        RegistrationStatus `db:"status"`
	SubmitTime    time.Time          `db:"submit_time"`
	ReviewTime    *time.Time         `db:"review_time"`
	ReviewedBy    *uuid.UUID         `db:"reviewed_by"`
	ReviewComment string             `db:"review_comment"`
}
