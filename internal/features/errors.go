package features

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns indicates a record lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrInvalidValue indicates a column holds a value of the wrong type.
	ErrInvalidValue = errors.New("invalid value")
)

// MissingColumnsError names the required columns absent from a record.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Details adds the missing column list to error responses.
func (e *MissingColumnsError) Details() map[string]any {
	return map[string]any{"missing_columns": e.Columns}
}

// InvalidValueError reports the column and raw value that failed validation.
type InvalidValueError struct {
	Column string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s for %s: %s (%s)", ErrInvalidValue, e.Column, e.Value, e.Reason)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
