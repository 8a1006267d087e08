// Package types holds the calendar date and API error types shared across
// packages.
package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is the machine-readable code of an API error
type ErrorCode string

const (
	ErrorCodeInternal  ErrorCode = "INTERNAL_ERROR"
	ErrorCodeNotFound  ErrorCode = "NOT_FOUND"
	ErrorCodeConflict  ErrorCode = "CONFLICT"
	ErrorCodeTimeout   ErrorCode = "TIMEOUT"
	ErrorCodeCancelled ErrorCode = "CANCELLED"
	ErrorCodeDatabase  ErrorCode = "DATABASE_ERROR"
)

// ErrorSeverity selects the log level an error is reported at
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// AppError is a failure that has been classified for an API response.
// HTTPStatus is derived from Code.
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Severity   ErrorSeverity          `json:"severity"`
	HTTPStatus int                    `json:"http_status"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	RequestID  string                 `json:"request_id,omitempty"`

	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair that is logged and returned to the client
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithRequestID stamps the id of the request that failed
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// NewAppError creates an error for code. The severity defaults to error.
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Severity:   SeverityError,
		HTTPStatus: HTTPStatusFromErrorCode(code),
		Timestamp:  time.Now(),
		Cause:      cause,
	}
}

// NewNotFoundError reports a missing resource. id may be empty.
func NewNotFoundError(resource string, id string) *AppError {
	err := NewAppError(ErrorCodeNotFound, fmt.Sprintf("%s not found", resource), nil).
		WithContext("resource", resource)
	if id != "" {
		err.WithContext("id", id)
	}
	err.Severity = SeverityInfo
	return err
}

// NewConflictError reports a write rejected by a uniqueness or reference constraint
func NewConflictError(message string, cause error) *AppError {
	err := NewAppError(ErrorCodeConflict, message, cause)
	err.Severity = SeverityWarning
	return err
}

func NewInternalError(message string, cause error) *AppError {
	err := NewAppError(ErrorCodeInternal, message, cause)
	err.Severity = SeverityCritical
	return err
}

func NewDatabaseError(message string, cause error) *AppError {
	return NewAppError(ErrorCodeDatabase, message, cause)
}

// NewContextError classifies a deadline or cancellation anywhere in err's
// chain. It returns nil for any other error.
func NewContextError(err error) *AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError(ErrorCodeTimeout, "operation timed out", err)
	case errors.Is(err, context.Canceled):
		appErr := NewAppError(ErrorCodeCancelled, "operation cancelled", err)
		appErr.Severity = SeverityInfo
		return appErr
	}
	return nil
}

// HTTPStatusFromErrorCode maps error codes to HTTP status codes
func HTTPStatusFromErrorCode(code ErrorCode) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
