// Package bus decouples HTTP ingestion from session mutation. Tracking
// requests become commands on a bounded in-memory queue; a dispatcher
// applies them to the session tracker in arrival order.
package bus

import (
	"context"
	"sync"
	"time"

	"github.com/okian/questlog/pkg/metrics"
)

// Command operations.
const (
	OpTrackAction     = "track_action"
	OpIncrementMetric = "increment_metric"
)

// defaultCapacity bounds the pending commands.
const defaultCapacity = 10000

// Command is one deferred session mutation.
type Command struct {
	Op         string
	ActionKind string
	Payload    map[string]any
	Metric     string
	Amount     int64
	EnqueuedAt time.Time
}

// TrackAction builds a command recording one user action.
func TrackAction(kind string, payload map[string]any) Command {
	return Command{
		Op:         OpTrackAction,
		ActionKind: kind,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}
}

// IncrementMetric builds a command bumping one session counter.
func IncrementMetric(metric string, amount int64) Command {
	return Command{
		Op:         OpIncrementMetric,
		Metric:     metric,
		Amount:     amount,
		EnqueuedAt: time.Now(),
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue struct {
	commands chan Command
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewQueue creates a bounded command queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.commands = make(chan Command, q.capacity)

	metrics.UpdateCommandQueueCapacity(q.capacity)
	metrics.UpdateCommandQueueSize(0)
	metrics.UpdateCommandQueueUtilization(0)

	return q
}

// Enqueue adds a command without blocking. Returns false when the queue is
// full or closed; the command is dropped in that case.
func (q *Queue) Enqueue(ctx context.Context, cmd Command) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordCommandDropped()
		metrics.RecordErrorByComponent("bus", "closed")
		return false
	}

	select {
	case q.commands <- cmd:
		metrics.RecordCommandEnqueued()
		size := len(q.commands)
		metrics.UpdateCommandQueueSize(size)
		metrics.UpdateCommandQueueUtilization(float64(size) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordCommandDropped()
		metrics.RecordErrorByComponent("bus", "context_cancelled")
		return false
	default:
		metrics.RecordCommandDropped()
		metrics.RecordErrorByComponent("bus", "queue_full")
		return false
	}
}

// Dequeue returns the channel commands are consumed from. The channel is
// closed when the queue is closed and drained.
func (q *Queue) Dequeue() <-chan Command {
	return q.commands
}

// Len returns the current number of pending commands.
func (q *Queue) Len() int {
	size := len(q.commands)
	metrics.UpdateCommandQueueSize(size)
	return size
}

// Close stops accepting new commands. Pending commands remain consumable.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.commands)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
