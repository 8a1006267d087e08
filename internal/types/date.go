package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. The zero Date means "absent".
type Date time.Time

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses s with the first layout that accepts it and truncates the
// result to midnight UTC. An empty string yields the zero Date and no error.
func ParseDate(s string, layouts ...string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(layouts) == 0 {
		layouts = []string{DateLayout}
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("cannot parse %q as a date", s)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) IsZero() bool {
	return d.Time().IsZero()
}

// Equal reports whether both dates denote the same calendar day.
func (d Date) Equal(other Date) bool {
	a, b := d.Time(), other.Time()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// GormDataType maps Date to a DATE column.
func (Date) GormDataType() string {
	return "date"
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan implements sql.Scanner. SQLite may hand back text for date columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan type %T into Date", v)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s, DateLayout)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time().Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts only the canonical yyyy-MM-dd form. Admin input
// carries dates as text and is parsed with the configured layouts instead.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(strings.Trim(s, `"`), DateLayout)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
