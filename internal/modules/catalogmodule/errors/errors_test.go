package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mantonx/filmadmin/internal/types"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCatalogError(t *testing.T) {
	err := NotFound("genre.read", "genre", 99)

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "not_found error in genre.read [genre=99]: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "genre.read", GetOperation(fmt.Errorf("outer: %w", err)))
}

func TestDatabaseErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		sentinel error
	}{
		{"duplicate", gorm.ErrDuplicatedKey, ErrorTypeConflict, ErrDuplicate},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrorTypeConflict, ErrInvalidReference},
		{"missing", gorm.ErrRecordNotFound, ErrorTypeNotFound, ErrNotFound},
		{"other", errors.New("disk I/O error"), ErrorTypeDatabase, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DatabaseError("movie.create", tt.err)
			assert.Equal(t, tt.wantType, GetType(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestWrapPreservesCatalogErrors(t *testing.T) {
	original := InUse("language.delete", "language", 1)
	assert.Same(t, original, Wrap(original, "other"))
	assert.Nil(t, Wrap(nil, "noop"))
	assert.Equal(t, ErrorTypeDatabase, GetType(Wrap(errors.New("boom"), "x")))
	assert.Equal(t, ErrorTypeInternal, GetType(errors.New("plain")))
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   types.ErrorCode
	}{
		{"not found", NotFound("movie.read", "movie", 3), http.StatusNotFound, types.ErrorCodeNotFound},
		{"in use", InUse("language.delete", "language", 1), http.StatusConflict, types.ErrorCodeConflict},
		{"duplicate", DatabaseError("genre.create", gorm.ErrDuplicatedKey), http.StatusConflict, types.ErrorCodeConflict},
		{"storage", DatabaseError("genre.delete", errors.New("connection reset")), http.StatusInternalServerError, types.ErrorCodeDatabase},
		{"timeout", DatabaseError("genre.list", context.DeadlineExceeded), http.StatusGatewayTimeout, types.ErrorCodeTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, types.ErrorCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}
