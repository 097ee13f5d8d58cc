package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/taskflow/core/internal/domain/entities"
)

// MemoryStore is a volatile store for tests and the "memory" storage type.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]json.RawMessage{}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, entities.ErrStoreClosed
	}
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = v
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	s.closed = true
	return nil
}
