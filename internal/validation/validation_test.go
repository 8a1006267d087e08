package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) IsValid() bool { return l >= 0 && l <= 2 }

type sample struct {
	Name     string `validate:"required"`
	Count    int    `validate:"gt=0"`
	ParentID uint   `validate:"required"`
	Level    level  `validate:"enum"`
	Released string
}

func (s sample) Check(v *Validator, errs Errors) {
	v.Date(errs, "Released", s.Released)
}

func TestStructCollectsEveryFailure(t *testing.T) {
	v := New("2006-01-02", "02-01-2006")

	errs := v.Struct(sample{Level: 7})

	assert.Equal(t, Errors{
		"Name":     {MsgRequiredText},
		"Count":    {MsgPositive},
		"ParentID": {MsgRequired},
		"Level":    {MsgInvalidValue},
		"Released": {MsgInvalidDate},
	}, errs)
	assert.True(t, errs.Any())
}

func TestStructAcceptsValidInput(t *testing.T) {
	v := New("2006-01-02", "02-01-2006")

	errs := v.Struct(sample{Name: "x", Count: 1, ParentID: 3, Level: 2, Released: "24-12-2001"})

	assert.False(t, errs.Any())
}

func TestDateRule(t *testing.T) {
	v := New()

	tests := []struct {
		raw   string
		valid bool
	}{
		{"2001-12-24", true},
		{"", false},
		{"0001-01-01", false},
		{"24-12-2001", false},
		{"not a date", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			errs := Errors{}
			d, ok := v.Date(errs, "BirthDate", tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, !tt.valid, errs.Any())
			if tt.valid {
				assert.Equal(t, tt.raw, d.String())
			}
		})
	}
}

func TestRules(t *testing.T) {
	empty := ""
	name := "Neo"
	errs := Errors{}

	assert.False(t, Text(errs, "Title", ""))
	assert.True(t, Text(errs, "Title2", "Matrix"))
	assert.False(t, NullableText(errs, "A", nil))
	assert.False(t, NullableText(errs, "B", &empty))
	assert.True(t, NullableText(errs, "C", &name))
	assert.True(t, Null(errs, "D", nil, "must be null"))
	assert.False(t, Null(errs, "E", &empty, "must be null"))

	assert.Equal(t, []string{"A", "B", "E", "Title"}, errs.Fields())
	assert.Equal(t, []string{MsgRequiredText}, errs["B"])
	assert.Equal(t, []string{"must be null"}, errs["E"])
}

func TestErrorsAddAndFormat(t *testing.T) {
	errs := Errors{}
	errs.Add("Name", MsgRequiredText)
	errs.Add("Name", MsgRequiredText)
	errs.Add("ID", "Does not match the route id.")

	assert.Len(t, errs["Name"], 1)
	assert.Equal(t, "validation failed: ID: Does not match the route id.; Name: Cannot be null or empty.", errs.Error())

	wrapped := fmt.Errorf("create genre: %w", errs)
	got, ok := AsErrors(wrapped)
	require.True(t, ok)
	assert.Equal(t, errs, got)

	_, ok = AsErrors(errors.New("boom"))
	assert.False(t, ok)
}

func TestSetDateLayouts(t *testing.T) {
	v := New("2006-01-02")

	_, err := v.ParseDate("24.12.2001")
	assert.Error(t, err)

	v.SetDateLayouts("02.01.2006")
	d, err := v.ParseDate("24.12.2001")
	require.NoError(t, err)
	assert.Equal(t, "2001-12-24", d.String())
	assert.Equal(t, []string{"02.01.2006"}, v.DateLayouts())

	v.SetDateLayouts()
	assert.Equal(t, []string{"02.01.2006"}, v.DateLayouts())
}
