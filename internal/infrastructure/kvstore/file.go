// Package kvstore provides the persisted key-value store backing all
// collections: string keys, JSON-encoded values. The file backend is the
// default and plays the role browser local storage played for the original
// front end.
package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/taskflow/core/internal/domain/entities"
)

// FileStore keeps every entry in a single JSON file. Writes rewrite the
// whole file; the store is meant for a single exclusive owner.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]json.RawMessage
	closed  bool
}

// NewFileStore opens (or creates) the store file under dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{
		path:    filepath.Join(dataDir, "store.json"),
		entries: map[string]json.RawMessage{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded map[string]json.RawMessage
	if err := json.Unmarshal(b, &loaded); err != nil {
		// A corrupt store file falls back to empty rather than failing
		// the whole application.
		s.entries = map[string]json.RawMessage{}
		return nil
	}
	if loaded == nil {
		loaded = map[string]json.RawMessage{}
	}
	s.entries = loaded
	return nil
}

func (s *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
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

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = v
	return s.saveLocked()
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	delete(s.entries, key)
	return s.saveLocked()
}

func (s *FileStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	return s.saveLocked()
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return entities.ErrStoreClosed
	}
	if err := s.saveLocked(); err != nil {
		return err
	}
	s.closed = true
	return nil
}
