package blobstore

import "errors"

var (
	// ErrInvalidDir indicates an unusable state directory.
	ErrInvalidDir = errors.New("invalid state directory")

	// ErrInvalidKey indicates a blob key that cannot map to a file.
	ErrInvalidKey = errors.New("invalid blob key")
)
