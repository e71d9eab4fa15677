package memory

import (
	"sync"

	"resultdesk/domain/result"
)

// ResultStore is the in-memory result table: class label to uploaded records.
// Contents are lost when the process exits.
type ResultStore struct {
	mu      sync.RWMutex
	classes map[result.ClassLabel][]result.RowRecord
}

// NewResultStore returns an empty store
func NewResultStore() *ResultStore {
	return &ResultStore{
		classes: make(map[result.ClassLabel][]result.RowRecord),
	}
}

// Replace swaps the whole sequence stored for class
func (s *ResultStore) Replace(class result.ClassLabel, records []result.RowRecord) {
	stored := make([]result.RowRecord, len(records))
	copy(stored, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[class] = stored
}

// Records returns a copy of the sequence stored for class
func (s *ResultStore) Records(class result.ClassLabel) []result.RowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.classes[class]
	out := make([]result.RowRecord, len(stored))
	copy(out, stored)
	return out
}
