package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when an operation needs at least one row.
	ErrEmptyDataset = errors.New("dataset has no rows")
	// ErrLengthMismatch is returned when a column does not match the row count.
	ErrLengthMismatch = errors.New("column length mismatch")
)

// SchemaError reports a required column that is absent when Op needs it,
// or with Unexpected set, a column that must not be present.
type SchemaError struct {
	Op         string
	Column     string
	Unexpected bool
}

func (e *SchemaError) Error() string {
	if e.Unexpected {
		return fmt.Sprintf("%s: unexpected column %q", e.Op, e.Column)
	}
	return fmt.Sprintf("%s: missing required column %q", e.Op, e.Column)
}

// IsSchemaError reports whether err wraps a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
