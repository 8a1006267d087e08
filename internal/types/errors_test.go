package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppErrorDerivesStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeCancelled, http.StatusRequestTimeout},
		{ErrorCodeDatabase, http.StatusInternalServerError},
		{ErrorCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAppError(tt.code, "failed", nil)
			assert.Equal(t, tt.status, err.HTTPStatus)
			assert.Equal(t, SeverityError, err.Severity)
		})
	}
}

func TestAppErrorWrapsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := NewConflictError("duplicate", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[CONFLICT] duplicate: UNIQUE constraint failed", err.Error())
	assert.Equal(t, SeverityWarning, err.Severity)

	wrapped := fmt.Errorf("create genre: %w", err)
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Same(t, err, appErr)
}

func TestNewNotFoundErrorContext(t *testing.T) {
	err := NewNotFoundError("genre", "7").WithRequestID("req-9")

	assert.Equal(t, "genre not found", err.Message)
	assert.Equal(t, map[string]interface{}{"resource": "genre", "id": "7"}, err.Context)
	assert.Equal(t, "req-9", err.RequestID)
	assert.Equal(t, SeverityInfo, err.Severity)

	noID := NewNotFoundError("genre", "")
	assert.NotContains(t, noID.Context, "id")
}

func TestNewContextError(t *testing.T) {
	timeout := NewContextError(fmt.Errorf("list movies: %w", context.DeadlineExceeded))
	require.NotNil(t, timeout)
	assert.Equal(t, ErrorCodeTimeout, timeout.Code)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)

	cancelled := NewContextError(context.Canceled)
	require.NotNil(t, cancelled)
	assert.Equal(t, ErrorCodeCancelled, cancelled.Code)

	assert.Nil(t, NewContextError(errors.New("boom")))
}
