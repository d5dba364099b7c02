package apperrors

import "errors"

// Generation errors
var (
	ErrNoDepartments = errors.New("no departments available")
	ErrInvalidInput  = errors.New("invalid input file")
)

// Configuration errors
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Load errors
var (
	ErrScriptNotFound = errors.New("seed script not found")
	ErrAlreadyLoaded  = errors.New("seed data already loaded")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenNotFound      = errors.New("session not found")
	ErrTokenStillValid    = errors.New("access token is still valid")
	ErrPermissionDenied   = errors.New("permission denied")
)

// API errors
var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrAlreadyExists       = errors.New("already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrConditionNotFound   = errors.New("condition not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnknownDepartment   = errors.New("unknown department")
	ErrResourceUnavailable = errors.New("resource is not available for application")
	ErrNoConditions        = errors.New("resource has no conditions defined")
	ErrNotEligible         = errors.New("not eligible for this resource")
	ErrNoEligibleStudents  = errors.New("no students meet the eligibility criteria")
	ErrAlreadyApplied      = errors.New("already applied for this resource")
)

// NewInvalidInputError creates a new custom error for a malformed input file with a message
func NewInvalidInputError(message string) error {
	return &CustomError{
		Err:     ErrInvalidInput,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
