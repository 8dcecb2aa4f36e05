package userboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okian/questlog/internal/adapters/blobstore"
	"github.com/okian/questlog/internal/userboard"
	"github.com/smartystreets/goconvey/convey"
)

func newBoard(store *blobstore.MemStore) *userboard.Board {
	ids := 0
	return userboard.New(store,
		userboard.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("user-%d", ids)
		}),
		userboard.WithNow(func() time.Time {
			return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		}),
	)
}

func TestBoard_Login(t *testing.T) {
	convey.Convey("Given an empty user board", t, func() {
		ctx := context.Background()
		store := blobstore.NewMemStore()
		board := newBoard(store)

		convey.Convey("When logging in a new name", func() {
			user, err := board.Login(ctx, "Rowan")

			convey.Convey("Then a user should be created", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(user.ID, convey.ShouldEqual, "user-1")
				convey.So(user.Name, convey.ShouldEqual, "Rowan")
				convey.So(board.Users(), convey.ShouldHaveLength, 1)
			})

			convey.Convey("And logging in again with different casing should reuse it", func() {
				again, err := board.Login(ctx, "  rowan ")
				convey.So(err, convey.ShouldBeNil)
				convey.So(again.ID, convey.ShouldEqual, user.ID)
				convey.So(board.Users(), convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When logging in with a blank name", func() {
			_, err := board.Login(ctx, "   ")

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldWrap, userboard.ErrEmptyName)
			})
		})

		convey.Convey("When reloading from the store", func() {
			_, err := board.Login(ctx, "Rowan")
			convey.So(err, convey.ShouldBeNil)

			reloaded := userboard.New(store)
			reloaded.Load(ctx)

			convey.Convey("Then the roster should survive", func() {
				convey.So(reloaded.Users(), convey.ShouldHaveLength, 1)
				convey.So(reloaded.Users()[0].Name, convey.ShouldEqual, "Rowan")
			})
		})
	})
}

func TestBoard_PointsAndRanking(t *testing.T) {
	convey.Convey("Given a board with a few users", t, func() {
		ctx := context.Background()
		board := newBoard(blobstore.NewMemStore())

		alice, err := board.Login(ctx, "Alice")
		convey.So(err, convey.ShouldBeNil)
		bob, err := board.Login(ctx, "Bob")
		convey.So(err, convey.ShouldBeNil)
		cara, err := board.Login(ctx, "Cara")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When awarding points", func() {
			_, err := board.AddPoints(ctx, bob.ID, 30)
			convey.So(err, convey.ShouldBeNil)
			updated, err := board.AddPoints(ctx, alice.ID, 10)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the user should carry the new total", func() {
				convey.So(updated.Points, convey.ShouldEqual, 10)
			})

			convey.Convey("And the ranking should order by points with join order on ties", func() {
				_, err := board.AddPoints(ctx, cara.ID, 10)
				convey.So(err, convey.ShouldBeNil)

				ranked := board.Ranking()
				convey.So(ranked[0].Name, convey.ShouldEqual, "Bob")
				convey.So(ranked[1].Name, convey.ShouldEqual, "Alice")
				convey.So(ranked[2].Name, convey.ShouldEqual, "Cara")
			})
		})

		convey.Convey("When recording item activity", func() {
			_, err := board.RecordItemAdded(ctx, alice.ID)
			convey.So(err, convey.ShouldBeNil)
			updated, err := board.RecordItemCompleted(ctx, alice.ID)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the counters should track it", func() {
				convey.So(updated.TotalItems, convey.ShouldEqual, 1)
				convey.So(updated.CompletedItems, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When touching an unknown user", func() {
			_, err := board.AddPoints(ctx, "nope", 5)

			convey.Convey("Then it should report not found", func() {
				convey.So(err, convey.ShouldWrap, userboard.ErrUserNotFound)
			})
		})
	})
}
