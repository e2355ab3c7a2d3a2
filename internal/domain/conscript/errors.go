package conscript

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel kind for row validation failures; use
// errors.Is against it and errors.As for the detailed type.
var ErrMalformed = errors.New("malformed record")

// MalformedRecordError reports a row that is missing a required field or
// carries an unrecognized enum value. It names the field and row so callers
// can build a user-facing message without store internals.
type MalformedRecordError struct {
	Row    int    // 1-based store row, 0 when unknown
	Name   string // candidate name when already parsed
	Field  string // header label of the offending column
	Value  string // offending raw value
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("malformed record %q (row %d): field %s: %s (got %q)", e.Name, e.Row, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("malformed record at row %d: field %s: %s (got %q)", e.Row, e.Field, e.Reason, e.Value)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformed
}
