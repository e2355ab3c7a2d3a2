// Package sheet defines the spreadsheet-shaped store boundaries and an
// in-memory implementation with the same row semantics.
package sheet

import "context"

// HeaderRows is the number of reserved label rows at the top of every sheet.
// Data row handles are 1-based and start below the header.
const HeaderRows = 1

// RecordStore persists candidate rows. It is the authoritative source of
// candidate data; callers re-derive all state from ListAll snapshots.
type RecordStore interface {
	// ListAll returns every row in order, first row = header labels.
	ListAll(ctx context.Context) ([][]string, error)
	// Append adds one row after the last.
	Append(ctx context.Context, row []string) error
	// Update overwrites len(values) cells of a row starting at col.
	// Row and col are 1-based; row 1 is the header.
	Update(ctx context.Context, row, col int, values []string) error
}

// CredentialStore persists user rows: column 1 username, column 2 the
// secret field (plaintext or hash, callers decide which).
type CredentialStore interface {
	ListAll(ctx context.Context) ([][]string, error)
	Update(ctx context.Context, row, col int, values []string) error
}

// LoginLog receives append-only (username, timestamp) tuples.
type LoginLog interface {
	Append(ctx context.Context, row []string) error
}
