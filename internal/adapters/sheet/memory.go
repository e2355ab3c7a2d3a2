package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Option applies a configuration option to the MemorySheet.
type Option func(*MemorySheet)

// WithHeader sets the header row written at construction.
func WithHeader(header []string) Option {
	return func(s *MemorySheet) {
		if len(header) > 0 {
			s.rows = [][]string{cloneRow(header)}
		}
	}
}

// WithRows seeds data rows below the header.
func WithRows(rows [][]string) Option {
	return func(s *MemorySheet) {
		for _, r := range rows {
			s.rows = append(s.rows, cloneRow(r))
		}
	}
}

// MemorySheet is an in-memory sheet with the remote store's shape: ordered
// rows, 1-based indices, row 1 reserved for the header. It backs tests and
// local runs; a remote-backed implementation satisfies the same interfaces.
type MemorySheet struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewMemorySheet creates a sheet holding only its header row.
func NewMemorySheet(opts ...Option) *MemorySheet {
	s := &MemorySheet{rows: [][]string{nil}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

// ListAll returns a copy of every row, header first.
func (s *MemorySheet) ListAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = cloneRow(r)
	}
	return out, nil
}

// Append adds one row after the last.
func (s *MemorySheet) Append(ctx context.Context, row []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cloneRow(row))
	return nil
}

// Update overwrites len(values) cells of row starting at col (both 1-based).
func (s *MemorySheet) Update(ctx context.Context, row, col int, values []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 1 || row > len(s.rows) {
		return fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, row, len(s.rows))
	}
	target := s.rows[row-1]
	if col < 1 || col-1+len(values) > len(target) {
		return fmt.Errorf("%w: col %d + %d values in %d columns", ErrColOutOfRange, col, len(values), len(target))
	}
	copy(target[col-1:], values)
	return nil
}

// Len returns the number of data rows below the header.
func (s *MemorySheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows) - HeaderRows
}
