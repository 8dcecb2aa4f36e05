package bus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/questlog/internal/adapters/bus"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type recordingTracker struct {
	mu      sync.Mutex
	actions []bus.Command
	counts  map[string]int64
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{counts: make(map[string]int64)}
}

func (r *recordingTracker) Track(kind string, payload map[string]any) model.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, bus.Command{Op: bus.OpTrackAction, ActionKind: kind, Payload: payload})
	return model.Action{Kind: kind, Payload: payload}
}

func (r *recordingTracker) Increment(_ context.Context, name string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[name] += amount
	return nil
}

func (r *recordingTracker) snapshot() ([]bus.Command, map[string]int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := make([]bus.Command, len(r.actions))
	copy(actions, r.actions)
	counts := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		counts[k] = v
	}
	return actions, counts
}

func waitFor(check func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestQueue(t *testing.T) {
	convey.Convey("Given a bounded command queue", t, func() {
		ctx := context.Background()
		queue := bus.NewQueue(bus.WithCapacity(2))

		convey.Convey("When enqueuing within capacity", func() {
			ok1 := queue.Enqueue(ctx, bus.TrackAction(model.ActionClick, nil))
			ok2 := queue.Enqueue(ctx, bus.IncrementMetric("xpGained", 10))

			convey.Convey("Then both commands should be accepted", func() {
				convey.So(ok1, convey.ShouldBeTrue)
				convey.So(ok2, convey.ShouldBeTrue)
				convey.So(queue.Len(), convey.ShouldEqual, 2)
			})

			convey.Convey("And the next enqueue should be dropped", func() {
				convey.So(queue.Enqueue(ctx, bus.TrackAction(model.ActionClick, nil)), convey.ShouldBeFalse)
				convey.So(queue.Len(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the queue is closed", func() {
			convey.So(queue.Close(), convey.ShouldBeNil)

			convey.Convey("Then enqueues should be rejected and Close should stay idempotent", func() {
				convey.So(queue.Enqueue(ctx, bus.TrackAction(model.ActionClick, nil)), convey.ShouldBeFalse)
				convey.So(queue.IsClosed(), convey.ShouldBeTrue)
				convey.So(queue.Close(), convey.ShouldBeNil)
			})
		})
	})
}

func TestDispatcher(t *testing.T) {
	convey.Convey("Given a dispatcher over a queue and tracker", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		queue := bus.NewQueue(bus.WithCapacity(100))
		tracker := newRecordingTracker()
		dispatcher := bus.NewDispatcher(queue, tracker)
		go dispatcher.Run(ctx)

		convey.Convey("When commands of both kinds are enqueued", func() {
			queue.Enqueue(ctx, bus.TrackAction(model.ActionClick, map[string]any{"element": "BUTTON"}))
			queue.Enqueue(ctx, bus.IncrementMetric("xpGained", 25))
			queue.Enqueue(ctx, bus.TrackAction(model.ActionItemCreated, nil))

			applied := waitFor(func() bool {
				actions, counts := tracker.snapshot()
				return len(actions) == 2 && counts["xpGained"] == 25
			})

			convey.Convey("Then they should reach the tracker in arrival order", func() {
				convey.So(applied, convey.ShouldBeTrue)

				actions, counts := tracker.snapshot()
				convey.So(actions[0].ActionKind, convey.ShouldEqual, model.ActionClick)
				convey.So(actions[1].ActionKind, convey.ShouldEqual, model.ActionItemCreated)
				convey.So(counts["xpGained"], convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When the dispatcher is shut down with work pending", func() {
			for i := 0; i < 10; i++ {
				queue.Enqueue(ctx, bus.TrackAction(model.ActionClick, nil))
			}

			err := dispatcher.Shutdown(context.Background())

			convey.Convey("Then pending commands should drain before it stops", func() {
				convey.So(err, convey.ShouldBeNil)
				actions, _ := tracker.snapshot()
				convey.So(len(actions), convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the queue closes", func() {
			convey.So(queue.Close(), convey.ShouldBeNil)

			convey.Convey("Then the dispatch loop should end on its own", func() {
				convey.So(dispatcher.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})
	})
}
