package memory

import (
	"context"
	"sync"

	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

// TableStore keeps tables in process memory. Used for local runs and tests.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string]sheet.Table
}

// NewTableStore creates an empty TableStore.
func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[string]sheet.Table),
	}
}

// ReadTable returns a copy of the named table. Unknown tables are empty.
func (s *TableStore) ReadTable(_ context.Context, name string) (sheet.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[name].Clone(), nil
}

// WriteTable replaces the named table.
func (s *TableStore) WriteTable(_ context.Context, name string, t sheet.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = t.Clone()
	return nil
}
