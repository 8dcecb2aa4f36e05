package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/domain/session"
	"github.com/smartystreets/goconvey/convey"
)

type fakeStore struct {
	blobs map[string]json.RawMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string]json.RawMessage)}
}

func (s *fakeStore) Get(_ context.Context, key string, out any) bool {
	raw, ok := s.blobs[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *fakeStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.blobs[key] = raw
	return nil
}

func TestHistory(t *testing.T) {
	convey.Convey("Given a session history over a blob store", t, func() {
		ctx := context.Background()
		store := newFakeStore()
		history := session.NewHistory(store, session.WithHistorySize(3))

		snapAt := func(min int) model.SessionSnapshot {
			return model.SessionSnapshot{
				EndedAt: time.Date(2024, 6, 1, 10, min, 0, 0, time.UTC),
				Metrics: model.SessionMetrics{TotalClicks: int64(min)},
			}
		}

		convey.Convey("When no sessions have been appended", func() {
			_, ok := history.Last(ctx)

			convey.Convey("Then there should be no last session", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(history.All(ctx), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When appending within the bound", func() {
			convey.So(history.Append(ctx, snapAt(1)), convey.ShouldBeNil)
			convey.So(history.Append(ctx, snapAt(2)), convey.ShouldBeNil)

			convey.Convey("Then Last should return the newest snapshot", func() {
				last, ok := history.Last(ctx)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(last.Metrics.TotalClicks, convey.ShouldEqual, 2)
				convey.So(history.All(ctx), convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When appending beyond the bound", func() {
			for min := 1; min <= 5; min++ {
				convey.So(history.Append(ctx, snapAt(min)), convey.ShouldBeNil)
			}

			convey.Convey("Then the oldest snapshots should be evicted", func() {
				all := history.All(ctx)
				convey.So(all, convey.ShouldHaveLength, 3)
				convey.So(all[0].Metrics.TotalClicks, convey.ShouldEqual, 3)
				convey.So(all[2].Metrics.TotalClicks, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the store holds corrupt data", func() {
			store.blobs["sessions"] = json.RawMessage(`{"not":"a list"`)
			_, ok := history.Last(ctx)

			convey.Convey("Then the history should read as empty", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})

			convey.Convey("And appends should start fresh", func() {
				convey.So(history.Append(ctx, snapAt(9)), convey.ShouldBeNil)
				convey.So(history.All(ctx), convey.ShouldHaveLength, 1)
			})
		})
	})
}
