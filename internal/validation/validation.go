// Package validation collects field-level input failures.
//
// Failures are accumulated in an Errors map keyed by the Go field name and
// reported together, e.g. {"Name":["Cannot be null or empty."]}. Struct tags
// (go-playground/validator) cover simple presence and range rules; types that
// need cross-field or format rules implement Checker.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mantonx/filmadmin/internal/types"
)

// Messages reported to API clients.
const (
	MsgRequiredText  = "Cannot be null or empty."
	MsgRequired      = "Is required."
	MsgPositive      = "Must be greater than 0."
	MsgInvalidDate   = "Must be a valid date."
	MsgInvalidValue  = "Invalid value."
	MsgDoesNotExist  = "Does not exist."
	MsgAlreadyExists = "Does already exist."
)

// Errors maps a field name to its failure messages.
type Errors map[string][]string

// Add records msg against field, ignoring exact duplicates.
func (e Errors) Add(field, msg string) {
	for _, existing := range e[field] {
		if existing == msg {
			return
		}
	}
	e[field] = append(e[field], msg)
}

// Any reports whether at least one failure was recorded.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors extracts the field map from err, if it carries one.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// Checker is implemented by inputs with rules beyond struct tags.
type Checker interface {
	Check(v *Validator, errs Errors)
}

// Enumerated is satisfied by enum types that know their declared range.
type Enumerated interface {
	IsValid() bool
}

// Validator runs struct tags and Checker hooks. It carries the date layouts
// accepted for text dates so parsing never depends on process-wide state.
type Validator struct {
	validate *validator.Validate

	mu          sync.RWMutex
	dateLayouts []string
}

// New returns a Validator that accepts dates in the given layouts, tried in
// order. With no layouts only yyyy-MM-dd is accepted.
func New(dateLayouts ...string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(Enumerated); ok {
			return e.IsValid()
		}
		return false
	})

	if len(dateLayouts) == 0 {
		dateLayouts = []string{types.DateLayout}
	}

	return &Validator{
		validate:    v,
		dateLayouts: dateLayouts,
	}
}

// DateLayouts returns the accepted input layouts.
func (v *Validator) DateLayouts() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]string(nil), v.dateLayouts...)
}

// SetDateLayouts replaces the accepted input layouts. An empty list is
// ignored.
func (v *Validator) SetDateLayouts(layouts ...string) {
	if len(layouts) == 0 {
		return
	}
	v.mu.Lock()
	v.dateLayouts = append([]string(nil), layouts...)
	v.mu.Unlock()
}

// Struct validates s and returns every failure found. An empty map means s
// is valid.
func (v *Validator) Struct(s interface{}) Errors {
	errs := Errors{}

	if err := v.validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs.Add("", err.Error())
			return errs
		}
		for _, fe := range fieldErrs {
			errs.Add(fe.StructField(), tagMessage(fe))
		}
	}

	if c, ok := s.(Checker); ok {
		c.Check(v, errs)
	}

	return errs
}

// ParseDate parses a text date with the configured layouts.
func (v *Validator) ParseDate(s string) (types.Date, error) {
	return types.ParseDate(s, v.DateLayouts()...)
}

// Date records MsgInvalidDate when raw is absent, unparseable or the zero
// date, and otherwise returns the parsed value.
func (v *Validator) Date(errs Errors, field, raw string) (types.Date, bool) {
	d, err := v.ParseDate(raw)
	if err != nil || d.IsZero() {
		errs.Add(field, MsgInvalidDate)
		return types.Date{}, false
	}
	return d, true
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return MsgRequiredText
		}
		return MsgRequired
	case "gt":
		if fe.Param() == "0" {
			return MsgPositive
		}
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "enum", "oneof":
		return MsgInvalidValue
	default:
		return MsgInvalidValue
	}
}
