package actionlog

import "time"

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCapacity bounds the number of retained actions.
func WithCapacity(capacity int) Option {
	return func(l *Log) {
		if capacity > 0 {
			l.capacity = capacity
		}
	}
}

// WithSessionStart anchors session offsets to an explicit start time.
func WithSessionStart(start time.Time) Option {
	return func(l *Log) {
		l.sessionStart = start
	}
}

// WithNow sets the clock used for timestamps. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}
