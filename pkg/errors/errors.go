package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Catalog errors
	ErrorTypeInvalidInput      ErrorType = "INVALID_INPUT"
	ErrorTypeMissingIdentifier ErrorType = "MISSING_IDENTIFIER"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeWriteFailed       ErrorType = "WRITE_FAILED"
	ErrorTypeReadFailed        ErrorType = "READ_FAILED"

	// Application errors
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Public messages returned to API clients. Store details never reach the body.
const (
	MessageInvalidInput      = "Invalid product data"
	MessageMissingIdentifier = "Product ID is required"
	MessageNotFound          = "Product not found"
	MessageWriteFailed       = "Internal Server Error"
	MessageReadFailed        = "Internal server error"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewInvalidInputError rejects a product submission. reason is logged and
// exposed under details, the public message stays fixed.
func NewInvalidInputError(reason string) *AppError {
	appErr := &AppError{
		Type:       ErrorTypeInvalidInput,
		Message:    MessageInvalidInput,
		HTTPStatus: http.StatusBadRequest,
	}
	if reason != "" {
		appErr.Details = map[string]interface{}{"reason": reason}
	}
	return appErr
}

// NewMissingIdentifierError is returned when a lookup carries no product id
func NewMissingIdentifierError() *AppError {
	return &AppError{
		Type:       ErrorTypeMissingIdentifier,
		Message:    MessageMissingIdentifier,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError() *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    MessageNotFound,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewWriteFailedError wraps a failed store transaction
func NewWriteFailedError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeWriteFailed,
		Message:    MessageWriteFailed,
		Code:       operation,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewReadFailedError wraps a failed store get or scan
func NewReadFailedError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeReadFailed,
		Message:    MessageReadFailed,
		Code:       operation,
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsInvalidInput(err error) bool {
	return IsType(err, ErrorTypeInvalidInput)
}

func IsMissingIdentifier(err error) bool {
	return IsType(err, ErrorTypeMissingIdentifier)
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsWriteFailed(err error) bool {
	return IsType(err, ErrorTypeWriteFailed)
}

func IsReadFailed(err error) bool {
	return IsType(err, ErrorTypeReadFailed)
}
