package goACL

import (
	"context"
	"sync"
)

// MemoryStore is a [Store] backed by a mutex-guarded map. Records are
// deep-copied on both Load and Save, so the store and its callers never
// share state. It serves as the test double for engine persistence and as
// a real backend for ephemeral containers.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Load returns a copy of the record under key, or (nil, nil) when the key
// has never been saved.
func (s *MemoryStore) Load(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[key].Clone(), nil
}

// Save stores a copy of rec under key, replacing any previous record.
func (s *MemoryStore) Save(_ context.Context, key string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec.Clone()
	return nil
}

// Len reports how many records the store holds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
