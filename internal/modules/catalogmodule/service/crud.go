// Package service implements the catalog's entity services.
//
// Every entity shares one generic implementation, CRUD, specialised through a
// Definition. Validation failures come back as validation.Errors, missing
// nested references as *ReferenceError, and missing primary rows as errors
// matching catalogerrors.ErrNotFound.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/mantonx/filmadmin/internal/modules/catalogmodule/errors"
	"github.com/mantonx/filmadmin/internal/validation"
)

// Reference is a nested id in an input that must point at an existing row
type Reference struct {
	Field  string
	ID     uint
	Exists func(ctx context.Context, gw *repository.Gateway, id uint) (bool, error)
}

// ReferenceError lists the nested references that do not exist
type ReferenceError struct {
	Fields validation.Errors
}

func (e *ReferenceError) Error() string {
	return "missing references: " + strings.Join(e.Fields.Fields(), ", ")
}

// Definition configures CRUD for one entity E with admin input In and read
// projection Out.
type Definition[E any, In any, Out any] struct {
	// Name is the singular entity name used in routes and errors, e.g. "movie".
	Name string

	Collection func(gw *repository.Gateway) *repository.Collection[E]
	Preloads   []string

	References func(in In) []Reference
	Apply      func(in In, v *validation.Validator, e *E)
	Differs    func(in In, v *validation.Validator, e *E) bool
	Project    func(e *E) Out
	Key        func(e *E) uint

	// BeforeDelete runs inside the delete transaction once the row is known
	// to exist, e.g. to drop dependent join rows.
	BeforeDelete func(ctx context.Context, tx *repository.Gateway, e *E) error
}

// CRUD is the generic create/read/update/delete service
type CRUD[E any, In any, Out any] struct {
	gw        *repository.Gateway
	validator *validation.Validator
	def       Definition[E, In, Out]
	log       hclog.Logger
}

// NewCRUD creates a service for def
func NewCRUD[E any, In any, Out any](gw *repository.Gateway, v *validation.Validator, def Definition[E, In, Out]) *CRUD[E, In, Out] {
	return &CRUD[E, In, Out]{
		gw:        gw,
		validator: v,
		def:       def,
		log:       logger.Named("catalog").Named(strings.ReplaceAll(def.Name, " ", "_")),
	}
}

// Name returns the entity name
func (s *CRUD[E, In, Out]) Name() string {
	return s.def.Name
}

func (s *CRUD[E, In, Out]) op(action string) string {
	return s.def.Name + "." + action
}

func (s *CRUD[E, In, Out]) collection(gw *repository.Gateway) *repository.Collection[E] {
	return s.def.Collection(gw)
}

// Create validates in, checks its references and inserts a new row. The
// returned projection is read back after commit.
func (s *CRUD[E, In, Out]) Create(ctx context.Context, in In) (Out, error) {
	var zero Out

	if errs := s.validator.Struct(in); errs.Any() {
		return zero, errs
	}

	var entity E
	err := s.gw.Transaction(ctx, func(tx *repository.Gateway) error {
		if err := s.checkReferences(ctx, tx, in); err != nil {
			return err
		}
		s.def.Apply(in, s.validator, &entity)
		return s.collection(tx).Add(ctx, &entity)
	})
	if err != nil {
		return zero, s.wrap("create", err)
	}

	id := s.def.Key(&entity)
	s.log.Info("created", "id", id)
	return s.Read(ctx, id)
}

// Read returns the projection of the row with the given id
func (s *CRUD[E, In, Out]) Read(ctx context.Context, id uint) (Out, error) {
	var zero Out

	entity, err := s.collection(s.gw).Preload(s.def.Preloads...).Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return zero, catalogerrors.NotFound(s.op("read"), s.def.Name, id)
		}
		return zero, catalogerrors.DatabaseError(s.op("read"), err)
	}
	return s.def.Project(entity), nil
}

// ReadAll returns the projection of every row in id order
func (s *CRUD[E, In, Out]) ReadAll(ctx context.Context) ([]Out, error) {
	entities, err := s.collection(s.gw).Preload(s.def.Preloads...).List(ctx)
	if err != nil {
		return nil, catalogerrors.DatabaseError(s.op("list"), err)
	}
	return projectAll(entities, s.def.Project), nil
}

// Update overwrites the row with the given id. Input is validated before the
// row is looked up. When in matches the stored row nothing is written and
// changed is false.
func (s *CRUD[E, In, Out]) Update(ctx context.Context, id uint, in In) (out Out, changed bool, err error) {
	if errs := s.validator.Struct(in); errs.Any() {
		return out, false, errs
	}

	err = s.gw.Transaction(ctx, func(tx *repository.Gateway) error {
		entity, err := s.collection(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return catalogerrors.NotFound(s.op("update"), s.def.Name, id)
			}
			return err
		}

		if err := s.checkReferences(ctx, tx, in); err != nil {
			return err
		}

		if s.def.Differs != nil && !s.def.Differs(in, s.validator, entity) {
			return nil
		}

		s.def.Apply(in, s.validator, entity)
		if _, err := s.collection(tx).Save(ctx, entity); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return out, false, s.wrap("update", err)
	}

	if changed {
		s.log.Info("updated", "id", id)
	} else {
		s.log.Debug("update skipped, input matches stored row", "id", id)
	}

	out, err = s.Read(ctx, id)
	return out, changed, err
}

// Delete removes the row with the given id. It reports false, not an error,
// when the row does not exist.
func (s *CRUD[E, In, Out]) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false

	err := s.gw.Transaction(ctx, func(tx *repository.Gateway) error {
		entity, err := s.collection(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if s.def.BeforeDelete != nil {
			if err := s.def.BeforeDelete(ctx, tx, entity); err != nil {
				return err
			}
		}

		n, err := s.collection(tx).Remove(ctx, entity)
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		s.log.Error("delete failed", "id", id, "error", err)
		return false, s.wrap("delete", err)
	}

	if deleted {
		s.log.Info("deleted", "id", id)
	}
	return deleted, nil
}

func (s *CRUD[E, In, Out]) checkReferences(ctx context.Context, tx *repository.Gateway, in In) error {
	if s.def.References == nil {
		return nil
	}

	missing := validation.Errors{}
	for _, ref := range s.def.References(in) {
		ok, err := ref.Exists(ctx, tx, ref.ID)
		if err != nil {
			return err
		}
		if !ok {
			missing.Add(ref.Field, validation.MsgDoesNotExist)
		}
	}

	if missing.Any() {
		return &ReferenceError{Fields: missing}
	}
	return nil
}

// wrap leaves input and reference failures untouched and classifies
// everything else as a catalog error.
func (s *CRUD[E, In, Out]) wrap(action string, err error) error {
	if _, ok := validation.AsErrors(err); ok {
		return err
	}
	var refErr *ReferenceError
	if errors.As(err, &refErr) {
		return err
	}
	return catalogerrors.Wrap(err, s.op(action))
}

// IsNotFound reports whether err means the addressed row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, catalogerrors.ErrNotFound)
}

func exists[E any](collection func(*repository.Gateway) *repository.Collection[E]) func(context.Context, *repository.Gateway, uint) (bool, error) {
	return func(ctx context.Context, gw *repository.Gateway, id uint) (bool, error) {
		if id == 0 {
			return false, nil
		}
		ok, err := collection(gw).Exists(ctx, id)
		if err != nil {
			return false, fmt.Errorf("reference lookup: %w", err)
		}
		return ok, nil
	}
}
