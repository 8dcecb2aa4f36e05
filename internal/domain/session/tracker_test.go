package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/questlog/internal/domain/actionlog"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/domain/session"
	"github.com/smartystreets/goconvey/convey"
)

func newTracker(start time.Time, clock *time.Time) *session.Tracker {
	log := actionlog.New(
		actionlog.WithSessionStart(start),
		actionlog.WithNow(func() time.Time { return *clock }),
	)
	return session.New(log,
		session.WithStart(start),
		session.WithNow(func() time.Time { return *clock }),
	)
}

func TestTracker_Increment(t *testing.T) {
	convey.Convey("Given a session tracker", t, func() {
		ctx := context.Background()
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		clock := start
		tracker := newTracker(start, &clock)

		convey.Convey("When incrementing a recognized counter", func() {
			err := tracker.Increment(ctx, session.MetricXPGained, 50)

			convey.Convey("Then the counter should grow and an action be logged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tracker.Metrics().XPGained, convey.ShouldEqual, 50)
				convey.So(tracker.Log().Len(), convey.ShouldEqual, 1)

				logged := tracker.Log().All()[0]
				convey.So(logged.Kind, convey.ShouldEqual, model.ActionMetricUpdate)
				convey.So(logged.Payload["metric"], convey.ShouldEqual, session.MetricXPGained)
			})
		})

		convey.Convey("When incrementing an unknown metric", func() {
			err := tracker.Increment(ctx, "totalFrobs", 1)

			convey.Convey("Then it should fail and leave the log untouched", func() {
				convey.So(err, convey.ShouldWrap, session.ErrUnknownMetric)
				convey.So(tracker.Log().Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When incrementing with a negative amount", func() {
			err := tracker.Increment(ctx, session.MetricPointsEarned, -5)

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldWrap, session.ErrInvalidAmount)
				convey.So(tracker.Metrics().PointsEarned, convey.ShouldEqual, 0)
			})
		})
	})
}

func TestTracker_Track(t *testing.T) {
	convey.Convey("Given a session tracker", t, func() {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		clock := start
		tracker := newTracker(start, &clock)

		convey.Convey("When tracking click actions", func() {
			tracker.Track(model.ActionClick, map[string]any{"element": "BUTTON"})
			tracker.Track(model.ActionClick, map[string]any{"element": "DIV"})
			tracker.Track(model.ActionItemCreated, nil)

			convey.Convey("Then only clicks should bump the click counter", func() {
				convey.So(tracker.Metrics().TotalClicks, convey.ShouldEqual, 2)
				convey.So(tracker.Log().Len(), convey.ShouldEqual, 3)
			})
		})
	})
}

func TestTracker_Snapshot(t *testing.T) {
	convey.Convey("Given a tracker with some activity", t, func() {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		clock := start
		tracker := newTracker(start, &clock)

		for i := 0; i < 30; i++ {
			tracker.Track(model.ActionClick, map[string]any{"n": i})
		}
		clock = start.Add(2 * time.Minute)

		convey.Convey("When taking a snapshot keeping the last 20 actions", func() {
			snap := tracker.Snapshot(20)

			convey.Convey("Then it should carry live elapsed time and the action tail", func() {
				convey.So(snap.StartedAt, convey.ShouldEqual, start)
				convey.So(snap.EndedAt, convey.ShouldEqual, clock)
				convey.So(snap.DurationMs, convey.ShouldEqual, int64(2*time.Minute/time.Millisecond))
				convey.So(snap.Metrics.TotalTimeSpentMs, convey.ShouldEqual, snap.DurationMs)
				convey.So(snap.Metrics.TotalClicks, convey.ShouldEqual, 30)
				convey.So(snap.RecentActions, convey.ShouldHaveLength, 20)
				convey.So(snap.RecentActions[19].Payload["n"], convey.ShouldEqual, 29)
			})
		})
	})
}

func TestTracker_MergeFromPriorSession(t *testing.T) {
	convey.Convey("Given a fresh tracker and a prior session snapshot", t, func() {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		clock := start
		tracker := newTracker(start, &clock)

		prior := model.SessionSnapshot{
			StartedAt: start.Add(-2 * time.Hour),
			EndedAt:   start.Add(-30 * time.Minute),
			Metrics:   model.SessionMetrics{XPGained: 50, TotalClicks: 7},
		}

		convey.Convey("When the prior session ended inside the resume window", func() {
			merged := tracker.MergeFromPriorSession(prior)

			convey.Convey("Then its counters should carry over", func() {
				convey.So(merged, convey.ShouldBeTrue)
				convey.So(tracker.Metrics().XPGained, convey.ShouldEqual, 50)
				convey.So(tracker.Metrics().TotalClicks, convey.ShouldEqual, 7)
			})

			convey.Convey("And a second merge attempt should be a no-op", func() {
				convey.So(tracker.MergeFromPriorSession(prior), convey.ShouldBeFalse)
				convey.So(tracker.Metrics().XPGained, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When the prior session ended outside the resume window", func() {
			stale := prior
			stale.EndedAt = start.Add(-90 * time.Minute)
			merged := tracker.MergeFromPriorSession(stale)

			convey.Convey("Then nothing should carry over", func() {
				convey.So(merged, convey.ShouldBeFalse)
				convey.So(tracker.Metrics().XPGained, convey.ShouldEqual, 0)
			})
		})
	})
}
