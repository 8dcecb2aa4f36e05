package blobstore

import "github.com/okian/questlog/pkg/logger"

// FileStoreOption applies a configuration option to the FileStore.
type FileStoreOption func(*FileStore)

// WithLogger sets the logger used for degraded reads.
func WithLogger(log logger.Logger) FileStoreOption {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}
