package models

import (
	"time"

	"github.com/google/uuid"
)

// AchievementCategory is the category column of achievement
type AchievementCategory string

const (
	CategoryCompetition AchievementCategory = "Competition"
	CategoryResearch    AchievementCategory = "Research"
	CategoryIntern      AchievementCategory = "Intern"
	CategoryProject     AchievementCategory = "Project"
	CategoryOthers      AchievementCategory = "Others"
)

// AchievementCategories lists every category in draw order.
var AchievementCategories = []AchievementCategory{
	CategoryCompetition, CategoryResearch, CategoryIntern, CategoryProject, CategoryOthers,
}

// AchievementStatus is the recognition state of an achievement
type AchievementStatus string

const (
	AchievementRecognized   AchievementStatus = "recognized"
	AchievementRejected     AchievementStatus = "rejected"
	AchievementUnrecognized AchievementStatus = "unrecognized"
)

// Achievement defines the achievement model based on the 'achievement' table
type Achievement struct {
	ID           uuid.UUID           `db:"achievement_id"`
	UserID       uuid.UUID           `db:"user_id"`
	Category     AchievementCategory `db:"category"`
	Title        string              `db:"title"`
	Description  string              `db:"description"`
	StartDate    time.Time           `db:"start_date"` // written as DATE
	EndDate      time.Time           `db:"end_date"`   // written as DATE
	CreationDate time.Time           `db:"creation_date"`
	Status       AchievementStatus   `db:"status"`
}

// VerifierType identifies who casts a verification vote
type VerifierType string

const (
	VerifierDepartment VerifierType = "department"
	VerifierCompany    VerifierType = "company"
	VerifierProfessor  VerifierType = "professor"
)

// VerifierTypes lists every verifier type in draw order.
var VerifierTypes = []VerifierType{VerifierDepartment, VerifierCompany, VerifierProfessor}

// VerificationStatus is a single verifier's vote
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// AchievementVerification defines a row of achievement_verification
type AchievementVerification struct {
	AchievementID uuid.UUID          `db:"achievement_id"`
	VerifierType  VerifierType       `db:"verifier_type"`
	VerifierEmail string             `db:"verifier_email"`
	Status        VerificationStatus `db:"verification_status"`
	CreatedAt     time.Time          `db:"created_at"`
	DecidedAt     *time.Time         `db:"decided_at"` // nil while pending
}

// PushRecord defines a row of push_record. ID follows PushedAt order.
type PushRecord struct {
	ID         int       `db:"push_id"`
	PusherID   uuid.UUID `db:"pusher_id"`
	ReceiverID uuid.UUID `db:"receiver_id"`
	ResourceID uuid.UUID `db:"resource_id"`
	PushedAt   time.Time `db:"push_datetime"`
}
