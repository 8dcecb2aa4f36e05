package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral runs. Blobs round
// trip through JSON so stored values behave like their persisted form.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string]json.RawMessage
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string]json.RawMessage)}
}

// Get decodes the blob under key into out.
func (s *MemStore) Get(_ context.Context, key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.blobs[key]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set stores value under key.
func (s *MemStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode blob %q: %w", key, err)
	}

	s.mu.Lock()
	s.blobs[key] = raw
	s.mu.Unlock()
	return nil
}

// Remove deletes the blob under key.
func (s *MemStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}
