// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/middleware"
	"github.com/group7/resmatch/internal/pkg/apperrors"
)

// AuthAPI is the authentication behavior the auth endpoints expose
type AuthAPI interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// ResourceAPI is the resource and condition behavior the resource endpoints expose
type ResourceAPI interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateResourceRequest) (uuid.UUID, error)
	ListAvailable(ctx context.Context) ([]dto.ResourceResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ResourceResponse, error)
	Get(ctx context.Context, resourceID uuid.UUID) (*dto.ResourceResponse, error)
	AddCondition(ctx context.Context, userID, resourceID uuid.UUID, req *dto.UpsertConditionRequest) (*dto.ConditionAddedResponse, error)
	UpsertCondition(ctx context.Context, userID, resourceID uuid.UUID, req *dto.UpsertConditionRequest) (*dto.ConditionResponse, error)
	ListConditions(ctx context.Context, userID, resourceID uuid.UUID) ([]dto.ConditionResponse, error)
	DeleteCondition(ctx context.Context, userID, resourceID uuid.UUID, departmentID string) error
	DeleteConditions(ctx context.Context, userID, resourceID uuid.UUID) (int64, error)
}

// StudentAPI is the student record behavior the student endpoints expose
type StudentAPI interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.StudentProfileResponse, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *dto.UpsertStudentProfileRequest) (*dto.StudentProfileResponse, error)
	GPA(ctx context.Context, userID uuid.UUID) ([]dto.SemesterGPAResponse, error)
	Achievements(ctx context.Context, userID uuid.UUID) ([]dto.AchievementResponse, error)
}

// ApplicationAPI is the application behavior the application endpoints expose
type ApplicationAPI interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ApplicationResponse, error)
	Apply(ctx context.Context, userID, resourceID uuid.UUID) (*dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, userID, resourceID uuid.UUID) error
}

// callerID returns the authenticated account, answering 401 when JWTAuth did not run.
func callerID(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("User information not found")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return id, ok
}

// uuidParam parses a UUID path parameter, answering 400 when it is malformed.
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("%w: %s is not a UUID", apperrors.ErrValidationFailed, name))
		return uuid.Nil, false
	}
	return id, true
}
