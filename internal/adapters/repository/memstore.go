package repository

import (
	"context"
	"sync"

	"github.com/okian/standings/internal/domain/history"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/tabular"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu         sync.RWMutex
	snapshot   tabular.Table
	initial    tabular.Table
	history    tabular.Table
	dateColumn string
	writes     int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store whose fallback table is initial. Pass an
// empty table for a store with no data.
func NewMemoryStore(initial tabular.Table) *MemoryStore {
	return &MemoryStore{initial: initial, dateColumn: model.DefaultDateColumn}
}

// WithMemoryDateColumn sets the history date column and returns the store.
func (s *MemoryStore) WithMemoryDateColumn(column string) *MemoryStore {
	if column != "" {
		s.dateColumn = column
	}
	return s
}

// ReadSnapshot implements Store.
func (s *MemoryStore) ReadSnapshot(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case !s.snapshot.Empty():
		return Snapshot{Table: clone(s.snapshot), Source: SourceSnapshot, Strategy: tabular.Canonical}, nil
	case !s.initial.Empty():
		return Snapshot{Table: clone(s.initial), Source: SourceInitial}, nil
	default:
		return Snapshot{Source: SourceNone}, nil
	}
}

// WriteSnapshot implements Store.
func (s *MemoryStore) WriteSnapshot(_ context.Context, t tabular.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = clone(t)
	s.writes++
	return nil
}

// ReadHistory implements Store.
func (s *MemoryStore) ReadHistory(_ context.Context) (tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.history), nil
}

// AppendHistory implements Store.
func (s *MemoryStore) AppendHistory(_ context.Context, day string, entries tabular.Table) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history.Merge(s.history, clone(entries), s.dateColumn, day)
	s.writes++
	return s.history.Len(), nil
}

// Writes returns how many write operations the store has accepted.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func clone(t tabular.Table) tabular.Table {
	out := tabular.Table{Header: append([]string(nil), t.Header...)}
	if t.Rows != nil {
		out.Rows = make([][]string, len(t.Rows))
		for i, r := range t.Rows {
			out.Rows[i] = append([]string(nil), r...)
		}
	}
	return out
}
