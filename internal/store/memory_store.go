package store

import (
	"context"
	"sync"

	"sessionkey/internal/domain"
)

// MemoryStore is a process-local KeyValueStore. Values do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[domain.StoreKey][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[domain.StoreKey][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key domain.StoreKey) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(_ context.Context, key domain.StoreKey, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// SetIfAbsent stores a copy of value unless key is already set, and returns a
// copy of what key holds afterwards.
func (s *MemoryStore) SetIfAbsent(_ context.Context, key domain.StoreKey, value []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.data[key]; ok {
		return append([]byte(nil), v...), nil
	}
	s.data[key] = append([]byte(nil), value...)
	return append([]byte(nil), value...), nil
}

// Compile-time assertion that MemoryStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*MemoryStore)(nil)
