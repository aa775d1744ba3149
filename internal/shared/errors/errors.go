// Package errors provides application-level error types and utilities.
// Every failure that reaches a caller is classified into one of the types below,
// and the HTTP layer maps the type to a status code.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeConflict            ErrorType = "conflict"
	ErrorTypeDuplicateInvestment ErrorType = "duplicate_investment"
	ErrorTypeStateConflict       ErrorType = "state_conflict"
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeForbidden           ErrorType = "forbidden"
	ErrorTypeUpstreamUnavailable ErrorType = "upstream_unavailable"
	ErrorTypePersistence         ErrorType = "persistence_error"
	ErrorTypeInternal            ErrorType = "internal_error"
	ErrorTypeBadRequest          ErrorType = "bad_request"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any
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

// NewDuplicateInvestmentError creates a conflict for a checkout that repeats an open investment
func NewDuplicateInvestmentError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDuplicateInvestment, http.StatusConflict, message, details)
}

// NewStateConflictError creates an error for a rejected lifecycle transition
func NewStateConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStateConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewUpstreamUnavailableError creates an error for an external feed with no usable value
func NewUpstreamUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUpstreamUnavailable, http.StatusServiceUnavailable, message, details)
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePersistence, http.StatusInternalServerError, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// WrapPersistence wraps a data-store failure with the operation name and entity id.
// AppErrors pass through unchanged so not-found and conflict results keep their type.
func WrapPersistence(op, entityID string, err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	details := op
	if entityID != "" {
		details = fmt.Sprintf("%s %s", op, entityID)
	}
	appErr := NewPersistenceError("data store operation failed", details)
	appErr.cause = err
	return appErr
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

// IsConflictError checks if the error is a conflict error, including a duplicate investment
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict) || isType(err, ErrorTypeDuplicateInvestment)
}

// IsDuplicateInvestmentError checks if the error is a duplicate investment conflict
func IsDuplicateInvestmentError(err error) bool {
	return isType(err, ErrorTypeDuplicateInvestment)
}

// IsStateConflictError checks if the error is a lifecycle state conflict
func IsStateConflictError(err error) bool {
	return isType(err, ErrorTypeStateConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// IsUnauthorizedError checks if the error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsUpstreamUnavailableError checks if the error is an upstream feed error
func IsUpstreamUnavailableError(err error) bool {
	return isType(err, ErrorTypeUpstreamUnavailable)
}

// IsPersistenceError checks if the error is a persistence error
func IsPersistenceError(err error) bool {
	return isType(err, ErrorTypePersistence)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation, SQLite UNIQUE constraint failed
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "UNIQUE constraint") {
		return true
	}
	return false
}
