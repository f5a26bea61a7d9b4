// internal/domain/date.go
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Date is a calendar date in ISO YYYY-MM-DD form. For this format,
// lexicographic order is chronological order, so dates compare with the
// ordinary string operators and no timezone is ever consulted.
// The zero value ("") stands for "no date" (e.g. an ongoing schedule).
type Date string

// NewDate truncates an instant to its calendar date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s as an ISO calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

func (d Date) String() string { return string(d) }

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d == "" }

func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// Weekday returns the long weekday name ("Monday" .. "Sunday").
func (d Date) Weekday() (string, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", d, err)
	}
	return t.Weekday().String(), nil
}

// WithinRange reports whether d falls inside [start, end], both boundaries
// inclusive. A zero end means the range is open-ended.
func (d Date) WithinRange(start, end Date) bool {
	if d.Before(start) {
		return false
	}
	if end.IsZero() {
		return true
	}
	return !d.After(end)
}
