package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound   = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrConstraintViolated = errors.New("storage constraint violated")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token has been revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrUniqueCodeExists   = errors.New("unique code already in use")
	ErrInvalidRole        = errors.New("invalid role")
)

// Association errors
var (
	ErrAssociationExists = errors.New("association already exists")
)

// Subscription and lesson errors
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrInvalidTransition    = errors.New("invalid lesson status transition")
	ErrSubscriptionMismatch = errors.New("lesson does not match the subscription's student and teacher")
)

// Discipline, branch, classroom errors
var (
	ErrDisciplineNotFound = errors.New("discipline not found")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrClassroomNotFound  = errors.New("classroom not found")
)

// CustomError carries additional context around a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
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

// NewConstraintViolation wraps a storage-level integrity failure into the
// domain-level constraint error, preserving the engine message.
func NewConstraintViolation(cause error) error {
	return &CustomError{
		Err:     ErrConstraintViolated,
		Message: "storage constraint violated: " + cause.Error(),
	}
}
