package memory

import (
	"sync"

	"stickies/internal/ports"
)

// Store implements ports.KeyValueStore in memory
type Store struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes Set and Delete return this error, to exercise write-failure paths
	FailWrites error
}

// Ensure Store implements KeyValueStore
var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = value
	return nil
}

// Delete removes key
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.values, key)
	return nil
}
