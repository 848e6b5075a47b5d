package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is the fallback backend: per-table row slices behind one
// RWMutex. State lives and dies with the process and is never shared
// across processes.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: map[string][][]string{},
	}
}

func (s *MemoryStore) ReadRows(_ context.Context, table string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[table]
	out := make([][]string, len(rows))
	for i, row := range rows {
		copied := make([]string, len(row))
		copy(copied, row)
		out[i] = copied
	}
	return out, nil
}

func (s *MemoryStore) AppendRow(_ context.Context, table string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]string, len(row))
	copy(copied, row)
	s.tables[table] = append(s.tables[table], copied)
	return nil
}

func (s *MemoryStore) UpdateRow(_ context.Context, table string, index int, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("memory store: %s row %d out of range", table, index)
	}
	copied := make([]string, len(row))
	copy(copied, row)
	rows[index] = copied
	return nil
}

// Ensure is a no-op for the fallback: there is no header row to repair,
// tables appear implicitly on first append.
func (s *MemoryStore) Ensure(_ context.Context, _ string, _ []string) error {
	return nil
}
