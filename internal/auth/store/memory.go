package store

import (
	"context"
	"sync"

	"tradeintel/internal/auth"
	"tradeintel/pkg/platform/sentinel"
)

// InMemory keeps API keys in a map. Backs tests and local development.
type InMemory struct {
	mu   sync.RWMutex
	keys map[string]auth.APIKey
}

// NewInMemory constructs an empty in-memory key store.
func NewInMemory() *InMemory {
	return &InMemory{keys: make(map[string]auth.APIKey)}
}

// Create stores a new API key.
func (s *InMemory) Create(ctx context.Context, key auth.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key.ID] = key
	return nil
}

// FindByID returns the key with the given ID, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(ctx context.Context, id string) (*auth.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &key, nil
}
