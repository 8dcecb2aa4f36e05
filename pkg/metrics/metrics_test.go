package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("testns"),
			WithSubsystem("testsub"),
			WithPrometheusRegistry(reg),
		)

		Convey("Then it should be fully initialized", func() {
			So(m, ShouldNotBeNil)
			So(m.namespace, ShouldEqual, "testns")
			So(m.subsystem, ShouldEqual, "testsub")
			So(m.actionsTracked, ShouldNotBeNil)
			So(m.achievementsUnlocked, ShouldNotBeNil)
			So(m.rankingRebuilds, ShouldNotBeNil)
			So(m.commandQueueSize, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then recording helpers should not panic", func() {
			So(func() {
				RecordActionTracked("click")
				RecordMetricIncrement("totalClicks")
				RecordAchievementUnlocked("first-item")
				RecordMissionCompleted()
				RecordSessionMerged()
				RecordRankingRebuild(1.5)
				UpdateLeaderboardSize(10)
				UpdateHeroCount(3)
				UpdateUserCount(2)
				UpdateItemCount(7)
				UpdateActionLogSize(42)
				UpdateSessionSeconds(60)
				UpdateCommandQueueSize(5)
				UpdateCommandQueueCapacity(100)
				UpdateCommandQueueUtilization(0.05)
				RecordCommandEnqueued()
				RecordCommandDropped()
				RecordCommandDispatched()
				RecordDispatchLatency(0.2)
				RecordDispatchError()
				RecordStoreReadFailure()
				RecordRepositoryQueryLatency(3)
				RecordRepositoryUpdateLatency(4)
				RecordHTTPRequest("ranking", "GET", "200")
				RecordHTTPRequestDuration("ranking", "GET", "200", 12)
				RecordErrorByComponent("bus", "queue_full")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("items", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
