package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUsage            ErrorType = "USAGE"
	ErrTypeNotFound         ErrorType = "NOT_FOUND"
	ErrTypeRead             ErrorType = "READ"
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	ErrTypeWrite            ErrorType = "WRITE"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Detail returns the cause text when there is one, otherwise the message.
// It is what the console shows after "An error occurred:" style prefixes.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewUsageError creates an error for a malformed command line
func NewUsageError(message string) *AppError {
	return NewAppError(ErrTypeUsage, message, nil)
}

// NewNotFoundError creates a not found error for a missing input file
func NewNotFoundError(path string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("file '%s' not found", path), nil).
		WithContext("path", path)
}

// NewReadError creates an error for any failure while reading input
func NewReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeRead, fmt.Sprintf("failed to read '%s'", path), cause).
		WithContext("path", path)
}

// NewInsufficientDataError creates an error for a sequence too short to contextualize
func NewInsufficientDataError(have, need int) *AppError {
	return NewAppError(ErrTypeInsufficientData,
		fmt.Sprintf("insufficient data points: have %d, need at least %d", have, need), nil).
		WithContext("samples", have).
		WithContext("required", need)
}

// NewWriteError creates an error for any failure while writing output
func NewWriteError(path string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, fmt.Sprintf("failed to write '%s'", path), cause).
		WithContext("path", path)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain contains an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}
