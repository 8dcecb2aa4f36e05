package userboard

import "time"

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithStorageKey sets the blob store key the roster is persisted under.
func WithStorageKey(key string) Option {
	return func(b *Board) {
		if key != "" {
			b.key = key
		}
	}
}

// WithNow sets the clock. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator sets the user id generator. Intended for tests.
func WithIDGenerator(newID func() string) Option {
	return func(b *Board) {
		if newID != nil {
			b.newID = newID
		}
	}
}
