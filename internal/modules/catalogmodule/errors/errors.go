// Package errors provides structured error handling for the catalog module.
// It defines error types, sentinel errors, and the mapping from catalog
// failures to API errors.
package errors

import (
	"errors"
	"fmt"

	"github.com/mantonx/filmadmin/internal/types"
	"gorm.io/gorm"
)

// ErrorType classifies a catalog failure
type ErrorType string

const (
	// ErrorTypeNotFound indicates the addressed row does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict indicates a write rejected by a constraint
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeDatabase indicates a storage failure
	ErrorTypeDatabase ErrorType = "database"
	// ErrorTypeInternal indicates internal system errors
	ErrorTypeInternal ErrorType = "internal"
)

// Sentinel errors for common scenarios
var (
	// ErrNotFound indicates the requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInUse indicates an entity is still referenced by other rows
	ErrInUse = errors.New("still referenced")

	// ErrDuplicate indicates a uniqueness constraint was violated
	ErrDuplicate = errors.New("duplicate value")

	// ErrInvalidReference indicates a foreign key points nowhere
	ErrInvalidReference = errors.New("invalid reference")
)

// CatalogError provides structured error information with context
type CatalogError struct {
	Type    ErrorType
	Op      string // e.g. "movie.create"
	Entity  string
	ID      uint
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.Entity != "" && e.ID != 0 {
		return fmt.Sprintf("%s error in %s [%s=%d]: %v", e.Type, e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Type, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// New creates a new CatalogError
func New(errType ErrorType, op string, err error) *CatalogError {
	return &CatalogError{
		Type:    errType,
		Op:      op,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// WithEntity adds the entity name and id to the error
func (e *CatalogError) WithEntity(entity string, id uint) *CatalogError {
	e.Entity = entity
	e.ID = id
	return e
}

// WithDetail adds a key-value detail to the error
func (e *CatalogError) WithDetail(key string, value interface{}) *CatalogError {
	e.Details[key] = value
	return e
}

// NotFound reports a missing entity
func NotFound(op, entity string, id uint) *CatalogError {
	return New(ErrorTypeNotFound, op, ErrNotFound).WithEntity(entity, id)
}

// InUse reports an entity that cannot be removed while referenced
func InUse(op, entity string, id uint) *CatalogError {
	return New(ErrorTypeConflict, op, ErrInUse).WithEntity(entity, id)
}

// DatabaseError classifies a storage error. Constraint violations translated
// by GORM become conflicts, everything else is a database failure.
func DatabaseError(op string, err error) *CatalogError {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(ErrorTypeConflict, op, fmt.Errorf("%w: %v", ErrDuplicate, err))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return New(ErrorTypeConflict, op, fmt.Errorf("%w: %v", ErrInvalidReference, err))
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(ErrorTypeNotFound, op, fmt.Errorf("%w: %v", ErrNotFound, err))
	default:
		return New(ErrorTypeDatabase, op, err)
	}
}

// Wrap wraps an error with operation context if it's not already a CatalogError
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}

	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return err
	}

	return DatabaseError(op, err)
}

// GetType extracts the error type from an error
func GetType(err error) ErrorType {
	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return cErr.Type
	}
	return ErrorTypeInternal
}

// GetOperation extracts the operation from an error
func GetOperation(err error) string {
	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return cErr.Op
	}
	return "unknown"
}

// ToAppError converts a catalog failure into the API error it is reported as.
func ToAppError(err error) *types.AppError {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var cErr *CatalogError
	if !errors.As(err, &cErr) {
		cErr = New(ErrorTypeInternal, "unknown", err)
	}

	if ctxErr := types.NewContextError(err); ctxErr != nil {
		return ctxErr.WithContext("operation", cErr.Op)
	}

	switch cErr.Type {
	case ErrorTypeNotFound:
		id := ""
		if cErr.ID != 0 {
			id = fmt.Sprint(cErr.ID)
		}
		return types.NewNotFoundError(cErr.Entity, id)
	case ErrorTypeConflict:
		appErr := types.NewConflictError(conflictMessage(cErr), cErr.Err).WithContext("operation", cErr.Op)
		if cErr.Entity != "" {
			appErr.WithContext("resource", cErr.Entity).WithContext("id", fmt.Sprint(cErr.ID))
		}
		return appErr
	case ErrorTypeDatabase:
		return types.NewDatabaseError("Database operation failed", cErr.Err).WithContext("operation", cErr.Op)
	default:
		return types.NewInternalError("Internal error", err)
	}
}

func conflictMessage(e *CatalogError) string {
	switch {
	case errors.Is(e.Err, ErrInUse):
		return fmt.Sprintf("%s is still referenced", e.Entity)
	case errors.Is(e.Err, ErrDuplicate):
		return "a row with the same key already exists"
	case errors.Is(e.Err, ErrInvalidReference):
		return "a referenced row does not exist"
	default:
		return "conflicting change"
	}
}
