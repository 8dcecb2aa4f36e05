package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/logger"
	"github.com/okian/questlog/pkg/metrics"
)

// dispatcherShutdownTimeout caps how long Shutdown waits for the loop.
const dispatcherShutdownTimeout = 5 * time.Second

// Tracker is the session surface commands are applied to.
type Tracker interface {
	Track(kind string, payload map[string]any) model.Action
	Increment(ctx context.Context, name string, amount int64) error
}

// Dispatcher drains the queue and applies commands to the tracker. A single
// dispatcher preserves arrival order, which keeps the action log faithful to
// what the user actually did.
type Dispatcher struct {
	queue   *Queue
	tracker Tracker

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewDispatcher creates a dispatcher over the queue and tracker.
func NewDispatcher(queue *Queue, tracker Tracker, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queue:    queue,
		tracker:  tracker,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("dispatcher"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run starts the dispatch loop until ctx is canceled, Shutdown is called or
// the queue is closed and drained.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.shutdown:
			d.drain(ctx)
			return
		case cmd, ok := <-d.queue.Dequeue():
			if !ok {
				return
			}
			d.apply(ctx, cmd)
		}
	}
}

// Shutdown stops the loop after draining pending commands.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	close(d.shutdown)

	waitCtx, cancel := context.WithTimeout(ctx, dispatcherShutdownTimeout)
	defer cancel()

	select {
	case <-d.done:
		return nil
	case <-waitCtx.Done():
		d.logger.Warn(ctx, "dispatcher shutdown timed out")
		return fmt.Errorf("dispatcher shutdown: %w", waitCtx.Err())
	}
}

// drain applies whatever is already queued without waiting for more.
func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case cmd, ok := <-d.queue.Dequeue():
			if !ok {
				return
			}
			d.apply(ctx, cmd)
		default:
			return
		}
	}
}

// apply executes one command against the tracker.
func (d *Dispatcher) apply(ctx context.Context, cmd Command) {
	start := time.Now()
	defer func() {
		metrics.RecordDispatchLatency(float64(time.Since(start).Milliseconds()))
	}()

	switch cmd.Op {
	case OpTrackAction:
		d.tracker.Track(cmd.ActionKind, cmd.Payload)
		metrics.RecordCommandDispatched()
	case OpIncrementMetric:
		if err := d.tracker.Increment(ctx, cmd.Metric, cmd.Amount); err != nil {
			metrics.RecordDispatchError()
			metrics.RecordErrorByComponent("dispatcher", "increment_rejected")
			d.logger.Error(ctx, "metric increment rejected",
				logger.String("metric", cmd.Metric),
				logger.Int64("amount", cmd.Amount),
				logger.Error(err),
			)
			return
		}
		metrics.RecordCommandDispatched()
	default:
		metrics.RecordDispatchError()
		metrics.RecordErrorByComponent("dispatcher", "unknown_op")
		d.logger.Warn(ctx, "unknown command op", logger.String("op", cmd.Op))
	}
}
