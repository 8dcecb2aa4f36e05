package actionlog_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/okian/questlog/internal/domain/actionlog"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLog_Record(t *testing.T) {
	convey.Convey("Given an action log", t, func() {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		clock := start
		log := actionlog.New(
			actionlog.WithCapacity(3),
			actionlog.WithSessionStart(start),
			actionlog.WithNow(func() time.Time { return clock }),
		)

		convey.Convey("When recording a single action", func() {
			clock = start.Add(1500 * time.Millisecond)
			a := log.Record(model.ActionClick, map[string]any{"element": "BUTTON"})

			convey.Convey("Then it should carry timestamp and session offset", func() {
				convey.So(a.Kind, convey.ShouldEqual, model.ActionClick)
				convey.So(a.OccurredAt, convey.ShouldEqual, clock)
				convey.So(a.SessionOffsetMs, convey.ShouldEqual, 1500)
				convey.So(log.Len(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When recording beyond capacity", func() {
			for i := 0; i < 5; i++ {
				log.Record(model.ActionClick, map[string]any{"n": i})
			}

			convey.Convey("Then the oldest entries should be evicted", func() {
				convey.So(log.Len(), convey.ShouldEqual, 3)
				all := log.All()
				convey.So(all[0].Payload["n"], convey.ShouldEqual, 2)
				convey.So(all[2].Payload["n"], convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When a clock skew puts the action before session start", func() {
			clock = start.Add(-time.Second)
			a := log.Record(model.ActionClick, nil)

			convey.Convey("Then the offset should be clamped to zero", func() {
				convey.So(a.SessionOffsetMs, convey.ShouldEqual, 0)
			})
		})
	})
}

func TestLog_Recent(t *testing.T) {
	convey.Convey("Given a log with several actions", t, func() {
		log := actionlog.New(actionlog.WithCapacity(10))
		for i := 0; i < 6; i++ {
			log.Record(model.ActionClick, map[string]any{"element": fmt.Sprintf("el-%d", i)})
		}

		convey.Convey("When asking for the last three", func() {
			recent := log.Recent(3)

			convey.Convey("Then they should come back in chronological order", func() {
				convey.So(recent, convey.ShouldHaveLength, 3)
				convey.So(recent[0].Payload["element"], convey.ShouldEqual, "el-3")
				convey.So(recent[2].Payload["element"], convey.ShouldEqual, "el-5")
			})
		})

		convey.Convey("When asking for more than are retained", func() {
			recent := log.Recent(100)

			convey.Convey("Then everything should be returned", func() {
				convey.So(recent, convey.ShouldHaveLength, 6)
			})
		})

		convey.Convey("When asking for a negative count", func() {
			recent := log.Recent(-1)

			convey.Convey("Then the result should be empty", func() {
				convey.So(recent, convey.ShouldBeEmpty)
			})
		})
	})
}
