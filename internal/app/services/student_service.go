package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/validation"
)

// StudentStore is the student record persistence the API needs.
type StudentStore interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error)
	UpsertProfile(ctx context.Context, p *models.StudentProfile) error
	GPASummary(ctx context.Context, userID uuid.UUID) (models.GPASummary, error)
	ListGPA(ctx context.Context, userID uuid.UUID) ([]models.SemesterGPA, error)
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]models.Achievement, error)
}

// StudentService serves a student's own profile and academic record
type StudentService struct {
	students StudentStore
	users    UserStore
	lgr      zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, users UserStore, lgr zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		users:    users,
		lgr:      lgr,
	}
}

// Profile returns the caller's profile with the GPA summary used for eligibility.
func (s *StudentService) Profile(ctx context.Context, userID uuid.UUID) (*dto.StudentProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.students.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	gpa, err := s.students.GPASummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentProfileResponse(user, profile, gpa)
	return &resp, nil
}

// UpsertProfile creates or replaces the caller's profile.
func (s *StudentService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}

	if !validation.CompiledPatterns.StudentID.MatchString(req.StudentID) {
		return nil, fmt.Errorf("%w: studentId %q", apperrors.ErrValidationFailed, req.StudentID)
	}

	profile := &models.StudentProfile{
		UserID:       userID,
		StudentID:    req.StudentID,
		DepartmentID: req.DepartmentID,
		EntryYear:    req.EntryYear,
		Grade:        req.Grade,
		IsPoor:       req.IsPoor,
		Level:        models.Level(req.StudentID[:1]),
	}
	if err := s.students.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.lgr.Info().Str("userID", userID.String()).Str("departmentID", req.DepartmentID).Msg("Student profile saved")

	gpa, err := s.students.GPASummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentProfileResponse(user, profile, gpa)
	return &resp, nil
}

// GPA returns the caller's graded semesters in calendar order.
func (s *StudentService) GPA(ctx context.Context, userID uuid.UUID) ([]dto.SemesterGPAResponse, error) {
	rows, err := s.students.ListGPA(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SemesterGPAResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SemesterGPAResponse{Semester: r.Semester.String(), GPA: r.GPA})
	}
	return out, nil
}

// Achievements returns the caller's achievements, newest first.
func (s *StudentService) Achievements(ctx context.Context, userID uuid.UUID) ([]dto.AchievementResponse, error) {
	rows, err := s.students.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AchievementResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.NewAchievementResponse(a))
	}
	return out, nil
}
