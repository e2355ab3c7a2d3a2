package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for service errors.
var (
	// ErrDuplicateName is the sentinel kind for enrollment conflicts.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrAuthentication is reported identically for every failed login so
	// callers cannot tell which part of the check failed.
	ErrAuthentication = errors.New("authentication failed")
	// ErrUnknownField marks an update addressed to a column that does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrNotFound marks an operation addressed to a name not in the store.
	ErrNotFound = errors.New("candidate not found")
	// ErrTooManyRows marks a bulk import larger than the configured cap.
	ErrTooManyRows = errors.New("too many rows")
)

// DuplicateNameError reports an insert for a name already in the store.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("candidate %q is already enrolled", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// RowError pairs a store row with the validation error it produced, so a
// batch read can report malformed rows without aborting.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportResult is the per-row outcome of a bulk import.
type ImportResult struct {
	Row  int
	Name string
	Err  error
}
