package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/questlog/pkg/logger"
	"github.com/okian/questlog/pkg/metrics"
)

// FileStore persists each blob as a JSON file under a state directory.
// Writes go through a temp file and rename so a crash never leaves a
// half-written blob behind.
type FileStore struct {
	dir string
	log logger.Logger
}

// NewFileStore creates the state directory if needed and returns a store
// over it.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory %q: %w", dir, err)
	}

	s := &FileStore{
		dir: dir,
		log: logger.Get(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Get decodes the blob under key into out. Corrupt or unreadable blobs are
// logged and reported absent so callers start from empty state.
func (s *FileStore) Get(ctx context.Context, key string, out any) bool {
	path, err := s.path(key)
	if err != nil {
		return false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn(ctx, "unreadable state blob, starting empty",
				logger.String("key", key), logger.Error(err))
			metrics.RecordStoreReadFailure()
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn(ctx, "corrupt state blob, starting empty",
			logger.String("key", key), logger.Error(err))
		metrics.RecordStoreReadFailure()
		return false
	}

	return true
}

// Set persists value as JSON under key.
func (s *FileStore) Set(_ context.Context, key string, value any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode blob %q: %w", key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish blob %q: %w", key, err)
	}

	return nil
}

// Remove deletes the blob under key if present.
func (s *FileStore) Remove(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %q: %w", key, err)
	}
	return nil
}

// path maps a key to its file, rejecting keys that would escape the state
// directory.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
