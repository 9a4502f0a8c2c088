package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string

	// FailWrites makes Set and Remove return this error when non-nil,
	// simulating device storage failure. When FailKey is also set, only
	// writes to that key fail, so a partial multi-key write can be
	// simulated.
	FailWrites error
	FailKey    string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get returns the value stored under key, with ok=false for a missing key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok, nil
}

// Set writes value under key, replacing any existing value
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := s.writeError(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := s.writeError(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) writeError(key string) error {
	if s.FailWrites == nil {
		return nil
	}
	if s.FailKey != "" && key != s.FailKey {
		return nil
	}
	return s.FailWrites
}

// Keys returns the stored keys in no particular order
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}
