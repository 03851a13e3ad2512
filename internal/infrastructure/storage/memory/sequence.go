package memory

import (
	"context"
	"sync"
)

// SequenceStore is an in-memory numerator.Source.
type SequenceStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewSequenceStore() *SequenceStore {
	return &SequenceStore{values: make(map[string]int64)}
}

func (s *SequenceStore) NextValue(ctx context.Context, key string, increment int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] += increment
	return s.values[key], nil
}
