// Package blobstore defines string-keyed JSON blob persistence for session
// state that lives outside the relational store.
package blobstore

import "context"

// Store provides read/write access to named JSON blobs.
//
// Get reports absent for missing, unreadable or corrupt blobs instead of
// failing; readers degrade to empty state and keep serving.
type Store interface {
	// Get decodes the blob under key into out. Returns false when the
	// blob is absent or cannot be decoded.
	Get(ctx context.Context, key string, out any) bool

	// Set encodes value and persists it under key, replacing any prior blob.
	Set(ctx context.Context, key string, value any) error

	// Remove deletes the blob under key. Removing an absent key is not an
	// error.
	Remove(ctx context.Context, key string) error
}
