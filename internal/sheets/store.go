package sheets

import (
	"context"
	"sync/atomic"
)

// RowStore is the cell-range access pattern both backends speak: read
// every data row of a table, append one row after the last populated
// row, or replace one row in place. Row indexes are zero-based over the
// data rows; the header row is never addressed through this interface
// except by Ensure.
type RowStore interface {
	ReadRows(ctx context.Context, table string) ([][]string, error)
	AppendRow(ctx context.Context, table string, row []string) error
	UpdateRow(ctx context.Context, table string, index int, row []string) error

	// Ensure creates the table and repairs its header row if needed.
	// Idempotent, touches only the header row, and a no-op on the
	// in-memory backend.
	Ensure(ctx context.Context, table string, headers []string) error
}

// Stats counts what the lenient read path swallows. Malformed rows are
// dropped, not surfaced as errors, so the skip counter is the only
// place they remain visible.
type Stats struct {
	scanned atomic.Int64
	skipped atomic.Int64
}

func (s *Stats) Scanned(n int) {
	if s != nil {
		s.scanned.Add(int64(n))
	}
}

func (s *Stats) Skipped(n int) {
	if s != nil {
		s.skipped.Add(int64(n))
	}
}

func (s *Stats) Snapshot() (scanned, skipped int64) {
	if s == nil {
		return 0, 0
	}
	return s.scanned.Load(), s.skipped.Load()
}
