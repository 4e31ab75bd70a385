package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNotAuthenticated   = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")

	// State machine errors
	ErrStatusConflict = errors.New("status transition not allowed")

	// Account errors
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Registration errors
	ErrEventClosed       = errors.New("event is closed for registration")
	ErrEventFull         = errors.New("event has reached maximum participants")
	ErrAlreadyRegistered = errors.New("student already registered for event")
)

// CustomError carries a sentinel plus a human-readable message so callers
// can both match with errors.Is and surface context.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the wrapped sentinel for errors.Is / errors.As.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates a status-conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrStatusConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
