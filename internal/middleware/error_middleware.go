package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
)

// errorRule maps a sentinel error onto its HTTP response
type errorRule struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
	// detailed rules echo the wrapped error text, which names the offending value
	detailed bool
}

var errorRules = []errorRule{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", true},
	{apperrors.ErrUnknownDepartment, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Unknown department", true},
	{apperrors.ErrTokenStillValid, http.StatusBadRequest, dto.ErrorCodeTokenStillValid, "Access token is still valid", false},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", false},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", false},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", false},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Session not found", false},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", false},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found", false},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", false},
	{apperrors.ErrConditionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Condition not found", true},
	{apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found", false},
	{apperrors.ErrProfileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found", false},
	{apperrors.ErrAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already exists", true},
	{apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already applied for this resource", false},
	{apperrors.ErrResourceUnavailable, http.StatusUnprocessableEntity, dto.ErrorCodeResourceInvalid, "Resource is not available for application", false},
	{apperrors.ErrNoConditions, http.StatusUnprocessableEntity, dto.ErrorCodeResourceInvalid, "Resource has no conditions defined", false},
	{apperrors.ErrNotEligible, http.StatusForbidden, dto.ErrorCodeNotEligible, "Not eligible for this resource", false},
	{apperrors.ErrNoEligibleStudents, http.StatusUnprocessableEntity, dto.ErrorCodeNoEligibleStudent, "No students meet the eligibility criteria", false},
	{apperrors.ErrTooManyAttempts, http.StatusTooManyRequests, dto.ErrorCodeTooManyAttempts, "Too many failed login attempts, try again later", false},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		detail := dto.NewErrorDetail(rule.code, rule.message).WithSeverity(dto.ErrorSeverityWarning)
		if rule.detailed {
			detail = detail.WithDetails(err.Error())
		}
		c.AbortWithStatusJSON(rule.status, dto.NewErrorResponse(detail))
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// HandleBindError answers a request whose body, query or path failed to bind.
func HandleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
