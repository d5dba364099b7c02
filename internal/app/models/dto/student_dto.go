package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
)

// UpsertStudentProfileRequest creates or replaces the caller's student profile
type UpsertStudentProfileRequest struct {
	StudentID    string `json:"studentId" binding:"required,max=16"`
	DepartmentID string `json:"departmentId" binding:"required,max=10"`
	EntryYear    int    `json:"entryYear" binding:"required,gt=0"`
	Grade        int    `json:"grade" binding:"required,gt=0"`
	IsPoor       bool   `json:"isPoor"`
}

// StudentProfileResponse is a student profile with the GPA summary used for eligibility
type StudentProfileResponse struct {
	User         *UserResponse    `json:"user"`
	StudentID    string           `json:"studentId"`
	DepartmentID string           `json:"departmentId"`
	EntryYear    int              `json:"entryYear"`
	Grade        int              `json:"grade"`
	IsPoor       bool             `json:"isPoor"`
	AvgGPA       *decimal.Decimal `json:"avgGpa"`
	CurrentGPA   *decimal.Decimal `json:"currentGpa"`
}

// SemesterGPAResponse is the GPA of one semester
type SemesterGPAResponse struct {
	Semester string          `json:"semester"`
	GPA      decimal.Decimal `json:"gpa"`
}

// AchievementResponse is one achievement of the caller
type AchievementResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Category     models.AchievementCategory `json:"category"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	StartDate    *string                    `json:"startDate"`
	EndDate      *string                    `json:"endDate"`
	CreationDate time.Time                  `json:"creationDate"`
	Status       models.AchievementStatus   `json:"status"`
}

// CreateApplicationRequest applies the caller to a resource
type CreateApplicationRequest struct {
	ResourceID string `json:"resourceId" binding:"required,uuid"`
}

// ApplicationResponse is one application of the caller
type ApplicationResponse struct {
	ResourceID    uuid.UUID           `json:"resourceId"`
	ResourceTitle string              `json:"resourceTitle,omitempty"`
	SupplierName  string              `json:"supplierName,omitempty"`
	ApplyDate     string              `json:"applyDate"`
	Status        models.ReviewStatus `json:"status"`
}

// NewStudentProfileResponse maps a profile, its owner and GPA summary
func NewStudentProfileResponse(u *models.User, p *models.StudentProfile, gpa models.GPASummary) StudentProfileResponse {
	return StudentProfileResponse{
		User:         NewUserResponse(u),
		StudentID:    p.StudentID,
		DepartmentID: p.DepartmentID,
		EntryYear:    p.EntryYear,
		Grade:        p.Grade,
		IsPoor:       p.IsPoor,
		AvgGPA:       gpa.AvgGPA,
		CurrentGPA:   gpa.CurrentGPA,
	}
}

// NewAchievementResponse maps an achievement, leaving unknown dates null
func NewAchievementResponse(a models.Achievement) AchievementResponse {
	resp := AchievementResponse{
		ID:           a.ID,
		Category:     a.Category,
		Title:        a.Title,
		Description:  a.Description,
		CreationDate: a.CreationDate,
		Status:       a.Status,
	}
	if !a.StartDate.IsZero() {
		s := a.StartDate.Format(DateLayout)
		resp.StartDate = &s
	}
	if !a.EndDate.IsZero() {
		e := a.EndDate.Format(DateLayout)
		resp.EndDate = &e
	}
	return resp
}

// NewApplicationResponse maps an application listing
func NewApplicationResponse(a models.ApplicationListing) ApplicationResponse {
	return ApplicationResponse{
		ResourceID:    a.ResourceID,
		ResourceTitle: a.ResourceTitle,
		SupplierName:  a.SupplierName,
		ApplyDate:     a.ApplyDate.Format(DateLayout),
		Status:        a.Status,
	}
}
