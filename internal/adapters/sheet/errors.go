package sheet

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrUnavailable marks a store call that did not complete; callers must
	// treat it as a reported failure, never as an empty success.
	ErrUnavailable = errors.New("store unavailable")
	// ErrRowOutOfRange marks an update addressed past the current rows.
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrColOutOfRange marks an update addressed past the row's columns.
	ErrColOutOfRange = errors.New("column out of range")
)
