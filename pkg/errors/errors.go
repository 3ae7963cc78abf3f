package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrDatabase          = errors.New("database operation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodePermissionDenied  = "PERMISSION_DENIED"
	ErrCodeClientNotFound    = "CLIENT_NOT_FOUND"
	ErrCodePackageNotFound   = "PACKAGE_NOT_FOUND"
	ErrCodeVideoNotFound     = "VIDEO_NOT_FOUND"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
)

func WrapValidation(format string, args ...any) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf(format, args...),
		ErrValidation,
	)
}

// WrapInvalidTransition reports a status change that does not follow the workflow.
func WrapInvalidTransition(entity, from, requested string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("%s cannot move from %s to %s", entity, from, requested),
		ErrInvalidTransition,
	)
}

func WrapPermissionDenied(role, action string) *BusinessError {
	if role == "" {
		role = "anonymous"
	}
	return NewBusinessError(
		ErrCodePermissionDenied,
		fmt.Sprintf("Role %s is not allowed to %s", role, action),
		ErrPermissionDenied,
	)
}

func WrapClientNotFound(clientID string) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %s not found", clientID),
		ErrNotFound,
	)
}

func WrapPackageNotFound(packageID string) *BusinessError {
	return NewBusinessError(
		ErrCodePackageNotFound,
		fmt.Sprintf("Package with ID %s not found", packageID),
		ErrNotFound,
	)
}

func WrapVideoNotFound(videoID string) *BusinessError {
	return NewBusinessError(
		ErrCodeVideoNotFound,
		fmt.Sprintf("Video with ID %s not found", videoID),
		ErrNotFound,
	)
}

// WrapDatabaseError keeps the driver error reachable through errors.Is and
// still matches ErrDatabase.
func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		errors.Join(ErrDatabase, err),
	)
}

// Code returns the business code carried by err, or "" when err is not a
// BusinessError.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
