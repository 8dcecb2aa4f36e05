package session

import "time"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithStart anchors the session to an explicit start time.
func WithStart(start time.Time) Option {
	return func(t *Tracker) {
		t.startedAt = start
	}
}

// WithResumeWindow sets how recently a prior session must have ended for its
// counters to be merged in.
func WithResumeWindow(window time.Duration) Option {
	return func(t *Tracker) {
		if window > 0 {
			t.resumeWindow = window
		}
	}
}

// WithNow sets the clock. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// HistoryOption applies a configuration option to the History.
type HistoryOption func(*History)

// WithHistoryKey sets the blob store key sessions are persisted under.
func WithHistoryKey(key string) HistoryOption {
	return func(h *History) {
		if key != "" {
			h.key = key
		}
	}
}

// WithHistorySize bounds how many snapshots are retained.
func WithHistorySize(max int) HistoryOption {
	return func(h *History) {
		if max > 0 {
			h.max = max
		}
	}
}
