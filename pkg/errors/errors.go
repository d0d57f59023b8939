package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Navigation errors
	ErrorTypeInvalidCommand ErrorType = "INVALID_COMMAND"
	ErrorTypeMalformedURL   ErrorType = "MALFORMED_URL"
	ErrorTypeNavigation     ErrorType = "NAVIGATION"
	ErrorTypeDisposed       ErrorType = "DISPOSED"

	// Configuration errors
	ErrorTypeConfig ErrorType = "CONFIG"

	// Application errors
	ErrorTypeInternal ErrorType = "INTERNAL"
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
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

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for common error types

// NewInvalidCommandError creates an error for a malformed navigation command list.
// Raised synchronously, before any navigation is scheduled.
func NewInvalidCommandError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidCommand,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewMalformedURLError creates an error for an address string that cannot be parsed
func NewMalformedURLError(url string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedURL,
		Message:    fmt.Sprintf("cannot parse url '%s'", url),
		Cause:      err,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewNavigationError creates an error for a navigation that failed in the pipeline
func NewNavigationError(navigationID int64, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeNavigation,
		Message:    fmt.Sprintf("navigation %d failed", navigationID),
		Cause:      err,
		Details:    map[string]interface{}{"navigation_id": navigationID},
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewDisposedError creates an error for an operation on a disposed engine
func NewDisposedError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeDisposed,
		Message:    fmt.Sprintf("cannot %s: engine has been disposed", operation),
		HTTPStatus: http.StatusConflict,
		StackTrace: captureStackTrace(),
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConfig,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
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

// IsInvalidCommand checks if an error is an invalid command error
func IsInvalidCommand(err error) bool {
	return IsType(err, ErrorTypeInvalidCommand)
}

// IsMalformedURL checks if an error is a malformed URL error
func IsMalformedURL(err error) bool {
	return IsType(err, ErrorTypeMalformedURL)
}

// IsNavigation checks if an error is a navigation error
func IsNavigation(err error) bool {
	return IsType(err, ErrorTypeNavigation)
}

// IsDisposed checks if an error is a disposed engine error
func IsDisposed(err error) bool {
	return IsType(err, ErrorTypeDisposed)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
