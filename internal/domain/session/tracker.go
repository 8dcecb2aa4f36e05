// Package session aggregates per-session metrics on top of the action log.
//
// A Tracker owns the six session counters, records every interaction into
// its action log, and can resume counters from a recently ended session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/questlog/internal/domain/actionlog"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/metrics"
)

// Recognized metric names accepted by Increment.
const (
	MetricTotalClicks       = "totalClicks"
	MetricTotalTimeSpent    = "totalTimeSpent"
	MetricItemsCreated      = "itemsCreated"
	MetricXPGained          = "xpGained"
	MetricPointsEarned      = "pointsEarned"
	MetricMissionsCompleted = "missionsCompleted"
)

// defaultResumeWindow is how recently a prior session must have ended for its
// counters to be carried into a new one.
const defaultResumeWindow = time.Hour

// Tracker accumulates session metrics and forwards actions to the log.
type Tracker struct {
	mu           sync.Mutex
	log          *actionlog.Log
	counters     model.SessionMetrics
	startedAt    time.Time
	merged       bool
	resumeWindow time.Duration
	now          func() time.Time
}

// New creates a Tracker recording into the given action log.
func New(log *actionlog.Log, opts ...Option) *Tracker {
	t := &Tracker{
		log:          log,
		resumeWindow: defaultResumeWindow,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.startedAt.IsZero() {
		t.startedAt = t.now()
	}

	return t
}

// Track records an interaction into the action log. Click actions also bump
// the click counter.
func (t *Tracker) Track(kind string, payload map[string]any) model.Action {
	a := t.log.Record(kind, payload)

	if kind == model.ActionClick {
		t.mu.Lock()
		t.counters.TotalClicks++
		t.mu.Unlock()
	}

	return a
}

// Increment adds a non-negative amount to a named counter and records a
// metric_update action. Unknown names and negative amounts are rejected.
func (t *Tracker) Increment(_ context.Context, name string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	t.mu.Lock()
	switch name {
	case MetricTotalClicks:
		t.counters.TotalClicks += amount
	case MetricTotalTimeSpent:
		t.counters.TotalTimeSpentMs += amount
	case MetricItemsCreated:
		t.counters.ItemsCreated += amount
	case MetricXPGained:
		t.counters.XPGained += amount
	case MetricPointsEarned:
		t.counters.PointsEarned += amount
	case MetricMissionsCompleted:
		t.counters.MissionsCompleted += amount
	default:
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	t.mu.Unlock()

	t.log.Record(model.ActionMetricUpdate, map[string]any{
		"metric": name,
		"amount": amount,
	})
	metrics.RecordMetricIncrement(name)

	return nil
}

// MergeFromPriorSession carries a prior session's counters into this one when
// the prior session ended inside the resume window. The merge attempt is
// consumed on first call; repeated calls are no-ops.
func (t *Tracker) MergeFromPriorSession(prior model.SessionSnapshot) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.merged {
		return false
	}
	t.merged = true

	if prior.EndedAt.IsZero() || t.now().Sub(prior.EndedAt) >= t.resumeWindow {
		return false
	}

	t.counters.TotalClicks += prior.Metrics.TotalClicks
	t.counters.ItemsCreated += prior.Metrics.ItemsCreated
	t.counters.XPGained += prior.Metrics.XPGained
	t.counters.PointsEarned += prior.Metrics.PointsEarned
	t.counters.MissionsCompleted += prior.Metrics.MissionsCompleted
	t.counters.TotalTimeSpentMs += prior.Metrics.TotalTimeSpentMs

	metrics.RecordSessionMerged()
	return true
}

// Metrics returns a copy of the counters with elapsed time refreshed.
func (t *Tracker) Metrics() model.SessionMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveCounters()
}

// RefreshElapsed recomputes the elapsed-time counter from the wall clock.
// Meant to be driven by a periodic ticker.
func (t *Tracker) RefreshElapsed() {
	t.mu.Lock()
	c := t.liveCounters()
	t.counters.TotalTimeSpentMs = c.TotalTimeSpentMs
	t.mu.Unlock()

	metrics.UpdateSessionSeconds(float64(c.TotalTimeSpentMs) / 1000)
}

// Snapshot builds a point-in-time snapshot of the running session, keeping
// the last recentK actions.
func (t *Tracker) Snapshot(recentK int) model.SessionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	return model.SessionSnapshot{
		StartedAt:     t.startedAt,
		EndedAt:       now,
		DurationMs:    now.Sub(t.startedAt).Milliseconds(),
		Metrics:       t.liveCounters(),
		RecentActions: t.log.Recent(recentK),
	}
}

// StartedAt returns the session start time.
func (t *Tracker) StartedAt() time.Time {
	return t.startedAt
}

// Log returns the underlying action log.
func (t *Tracker) Log() *actionlog.Log {
	return t.log
}

// liveCounters copies the counters with elapsed time computed from the
// clock. Callers must hold t.mu.
func (t *Tracker) liveCounters() model.SessionMetrics {
	c := t.counters

	elapsed := t.now().Sub(t.startedAt).Milliseconds()
	if elapsed > c.TotalTimeSpentMs {
		c.TotalTimeSpentMs = elapsed
	}

	return c
}
