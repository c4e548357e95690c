// Package errors provides application-level error types and utilities.
// Lifecycle jobs rely on the not_found, invalid_state, store_unavailable and
// notifier_failure types; the remaining ones serve the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeInvalidState     ErrorType = "invalid_state"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeInternal         ErrorType = "internal_error"
	ErrorTypeStoreUnavailable ErrorType = "store_unavailable"
	ErrorTypeNotifierFailure  ErrorType = "notifier_failure"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.cause
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewInvalidStateError reports an operation that does not apply to the
// current state of the entity, e.g. deleting a verified account.
func NewInvalidStateError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidState, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewStoreUnavailableError wraps a failed query or write.
func NewStoreUnavailableError(message string, cause error) *AppError {
	e := newAppError(ErrorTypeStoreUnavailable, http.StatusServiceUnavailable, message, nil)
	e.cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewNotifierFailureError wraps a failed outbound notification.
func NewNotifierFailureError(message string, cause error) *AppError {
	e := newAppError(ErrorTypeNotifierFailure, http.StatusBadGateway, message, nil)
	e.cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

func IsInvalidStateError(err error) bool {
	return isType(err, ErrorTypeInvalidState)
}

func IsStoreUnavailableError(err error) bool {
	return isType(err, ErrorTypeStoreUnavailable)
}

func IsNotifierFailure(err error) bool {
	return isType(err, ErrorTypeNotifierFailure)
}

func IsUnauthorizedError(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

func IsForbiddenError(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// StatusCode maps an error type to the HTTP status its constructor uses.
func StatusCode(t ErrorType) int {
	switch t {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict, ErrorTypeInvalidState:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeStoreUnavailable:
		return http.StatusServiceUnavailable
	case ErrorTypeNotifierFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
