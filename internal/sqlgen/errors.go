package sqlgen

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a partial update carries no fields.
var ErrEmptyInput = errors.New("no data")

// UnsupportedFilterKeyError is returned for a filter key the rule set doesn't know.
type UnsupportedFilterKeyError struct {
	Key string
}

func (e *UnsupportedFilterKeyError) Error() string {
	return fmt.Sprintf("unsupported filter key %q", e.Key)
}

// InvalidRangeError is returned when a lower bound is greater than its upper bound.
type InvalidRangeError struct {
	Range    string
	Min, Max int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("min %s cannot be greater than max (%d > %d)", e.Range, e.Min, e.Max)
}

// InvalidValueError is returned when a filter value can't be coerced to the type its operator needs.
type InvalidValueError struct {
	Key   string
	Value any
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %q: %v", e.Value, e.Key, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// InvalidColumnError is returned when a field resolves to something that is not a plain identifier.
type InvalidColumnError struct {
	Name string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column name %q", e.Name)
}

// IsBadInput reports whether err was produced by one of the builders rejecting caller input.
func IsBadInput(err error) bool {
	var (
		keyErr   *UnsupportedFilterKeyError
		rangeErr *InvalidRangeError
		valueErr *InvalidValueError
		colErr   *InvalidColumnError
	)
	return errors.Is(err, ErrEmptyInput) ||
		errors.As(err, &keyErr) ||
		errors.As(err, &rangeErr) ||
		errors.As(err, &valueErr) ||
		errors.As(err, &colErr)
}
