// Package memory is a process-local key/value store used for tests and the
// "memory" data backend.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	values map[string][]byte

	// Optional failure injection for tests.
	GetErr error
	PutErr error
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put replaces the value under key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
