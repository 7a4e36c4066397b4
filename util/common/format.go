package common

import (
	"fmt"
	"time"
)

// ValidationError reports malformed user input for a named field.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// ParseTimeOfDay validates an "HH:MM" string and returns its canonical
// zero-padded form.
func ParseTimeOfDay(value string) (string, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", &ValidationError{Field: "time", Value: value}
	}
	return t.Format("15:04"), nil
}

// ParseDate validates a "YYYY-MM-DD" string and returns its canonical form.
func ParseDate(field, value string) (string, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", &ValidationError{Field: field, Value: value}
	}
	return t.Format("2006-01-02"), nil
}

// ParseDateRange validates both dates and rejects a range whose end
// precedes its start.
func ParseDateRange(start, end string) (string, string, error) {
	s, err := ParseDate("start date", start)
	if err != nil {
		return "", "", err
	}
	e, err := ParseDate("end date", end)
	if err != nil {
		return "", "", err
	}
	if e < s {
		return "", "", &ValidationError{Field: "date range", Value: start + ".." + end}
	}
	return s, e, nil
}
