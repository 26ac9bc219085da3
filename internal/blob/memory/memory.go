// Package memory provides an in-process blob store used by tests and the
// memory data backend.
package memory

import (
	"context"
	"sync"

	"tally/internal/blob"
)

type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ blob.Store = (*Store)(nil)

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(key, value)
	return nil
}

func (s *Store) Mutate(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.blobs[key])
	if err != nil {
		return err
	}
	s.store(key, next)
	return nil
}

func (s *Store) store(key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.blobs[key] = stored
}
