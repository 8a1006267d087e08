// Package api provides error handling utilities for HTTP APIs
package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/types"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error   ErrorDetails `json:"error"`
	Success bool         `json:"success"`
}

// ErrorDetails contains detailed error information
type ErrorDetails struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// FieldErrorResponse is the body of 400/404 responses that name offending
// input fields, e.g. {"errors":{"Name":["Cannot be null or empty."]}}.
type FieldErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// RespondWithError sends a structured error response. Errors that are not
// already an AppError are reported as timeouts, cancellations, or internal
// failures.
func RespondWithError(c *gin.Context, err error) {
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.NewContextError(err)
		if appErr == nil {
			appErr = types.NewInternalError(err.Error(), err)
		}
	}
	appErr.WithRequestID(requestIDFrom(c))

	logError(appErr)

	c.JSON(appErr.HTTPStatus, ErrorResponse{
		Success: false,
		Error: ErrorDetails{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Context:   appErr.Context,
			RequestID: appErr.RequestID,
		},
	})
}

// RespondWithFieldErrors sends a field → messages map under the "errors" key.
func RespondWithFieldErrors(c *gin.Context, status int, fields map[string][]string) {
	logger.Debug("request rejected",
		"status", status,
		"fields", fields,
		"request_id", requestIDFrom(c),
	)
	c.JSON(status, FieldErrorResponse{Errors: fields})
}

// RespondWithFieldError is RespondWithFieldErrors for a single message.
func RespondWithFieldError(c *gin.Context, status int, field, message string) {
	RespondWithFieldErrors(c, status, map[string][]string{field: {message}})
}

// RespondWithNotFound sends a not found error response
func RespondWithNotFound(c *gin.Context, resource string, id string) {
	RespondWithError(c, types.NewNotFoundError(resource, id))
}

func requestIDFrom(c *gin.Context) string {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	return requestID
}

// logError logs the error with appropriate severity
func logError(err *types.AppError) {
	fields := []interface{}{
		"error_code", err.Code,
		"error_message", err.Message,
		"request_id", err.RequestID,
	}

	for k, v := range err.Context {
		fields = append(fields, k, v)
	}

	if err.Cause != nil {
		fields = append(fields, "cause", err.Cause.Error())
	}

	switch err.Severity {
	case types.SeverityCritical:
		logger.Error("critical error", fields...)
	case types.SeverityError:
		logger.Error("error occurred", fields...)
	case types.SeverityWarning:
		logger.Warn("warning", fields...)
	case types.SeverityInfo:
		logger.Debug("request failed", fields...)
	default:
		logger.Error("error occurred", fields...)
	}
}

// ErrorMiddleware is a middleware that recovers from panics and handles errors
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch v := r.(type) {
				case error:
					err = v
				case string:
					err = errors.New(v)
				default:
					err = errors.New("unknown panic")
				}

				logger.Error("panic recovered",
					"error", err,
					"request_path", c.Request.URL.Path,
					"request_method", c.Request.Method,
				)

				RespondWithError(c, types.NewInternalError("panic recovered", err))
				c.Abort()
			}
		}()

		c.Next()
	}
}
