// Package memory holds an uploaded or generated batch in process memory.
package memory

import (
	"context"
	"sync"

	"findash/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.RawRecord
}

func New(records []core.RawRecord) *Store {
	s := &Store{}
	s.Replace(records)
	return s
}

// Replace swaps the whole batch, matching the upload lifecycle: a new upload
// replaces the previous one wholesale.
func (s *Store) Replace(records []core.RawRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.RawRecord(nil), records...)
}

// Fetch returns a copy of the current batch.
func (s *Store) Fetch(_ context.Context) ([]core.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RawRecord(nil), s.records...), nil
}
