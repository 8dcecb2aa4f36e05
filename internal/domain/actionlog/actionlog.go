// Package actionlog provides the bounded, session-owned log of user actions.
//
// The log keeps insertion order and evicts the oldest entry once the
// configured capacity is reached. Appends never fail.
package actionlog

import (
	"sync"
	"time"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/metrics"
)

// defaultCapacity bounds the retained actions per session.
const defaultCapacity = 100

// Log is a bounded FIFO of recorded actions.
type Log struct {
	mu           sync.RWMutex
	actions      []model.Action
	capacity     int
	sessionStart time.Time
	now          func() time.Time
}

// New creates a Log with configuration options.
func New(opts ...Option) *Log {
	l := &Log{
		capacity: defaultCapacity,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.sessionStart.IsZero() {
		l.sessionStart = l.now()
	}
	l.actions = make([]model.Action, 0, l.capacity)

	return l
}

// Record appends a new action with the current timestamp and session offset.
// The oldest entry is evicted when the log is full.
func (l *Log) Record(kind string, payload map[string]any) model.Action {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	offset := now.Sub(l.sessionStart).Milliseconds()
	if offset < 0 {
		offset = 0
	}

	a := model.Action{
		Kind:            kind,
		Payload:         payload,
		OccurredAt:      now,
		SessionOffsetMs: offset,
	}

	l.actions = append(l.actions, a)
	if len(l.actions) > l.capacity {
		// FIFO eviction: drop the oldest entries.
		over := len(l.actions) - l.capacity
		l.actions = append(l.actions[:0], l.actions[over:]...)
	}

	metrics.RecordActionTracked(kind)
	metrics.UpdateActionLogSize(len(l.actions))

	return a
}

// Recent returns the last k entries in chronological order. If the log holds
// fewer than k entries, all of them are returned.
func (l *Log) Recent(k int) []model.Action {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if k < 0 {
		k = 0
	}
	if k > len(l.actions) {
		k = len(l.actions)
	}

	out := make([]model.Action, k)
	copy(out, l.actions[len(l.actions)-k:])
	return out
}

// All returns a copy of every retained action in chronological order.
func (l *Log) All() []model.Action {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Action, len(l.actions))
	copy(out, l.actions)
	return out
}

// Len returns the current number of retained actions.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.actions)
}

// Capacity returns the maximum number of retained actions.
func (l *Log) Capacity() int {
	return l.capacity
}

// SessionStart returns the session start time the offsets are relative to.
func (l *Log) SessionStart() time.Time {
	return l.sessionStart
}
