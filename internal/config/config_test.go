package config_test

import (
	"testing"

	"github.com/okian/questlog/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.ActionLogSize, convey.ShouldEqual, 100)
			convey.So(cfg.SnapshotActions, convey.ShouldEqual, 20)
			convey.So(cfg.SessionHistorySize, convey.ShouldEqual, 10)
			convey.So(cfg.SessionResumeMinutes, convey.ShouldEqual, 60)
			convey.So(cfg.RankingLimit, convey.ShouldEqual, 10)
			convey.So(cfg.RankingRefreshSeconds, convey.ShouldEqual, 30)
			convey.So(cfg.ElapsedRefreshSeconds, convey.ShouldEqual, 1)
			convey.So(cfg.PointsMasterThreshold, convey.ShouldEqual, 50)
			convey.So(cfg.TurningPointThreshold, convey.ShouldEqual, 10)
		})
	})
}
