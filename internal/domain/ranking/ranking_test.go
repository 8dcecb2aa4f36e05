package ranking_test

import (
	"testing"

	"github.com/okian/questlog/internal/domain/ranking"
	"github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	convey.Convey("Given a set of hero rows", t, func() {
		convey.Convey("When two heroes tie on points", func() {
			rows := []ranking.Row{
				{ID: 1, Name: "A", Points: 10},
				{ID: 2, Name: "B", Points: 30},
				{ID: 3, Name: "C", Points: 10},
			}

			entries := ranking.Build(rows)

			convey.Convey("Then positions should be distinct and input order should break the tie", func() {
				convey.So(entries, convey.ShouldHaveLength, 3)
				convey.So(entries[0].Position, convey.ShouldEqual, 1)
				convey.So(entries[0].Name, convey.ShouldEqual, "B")
				convey.So(entries[1].Position, convey.ShouldEqual, 2)
				convey.So(entries[1].Name, convey.ShouldEqual, "A")
				convey.So(entries[2].Position, convey.ShouldEqual, 3)
				convey.So(entries[2].Name, convey.ShouldEqual, "C")
			})
		})

		convey.Convey("When points tie but experience differs", func() {
			rows := []ranking.Row{
				{ID: 1, Name: "A", Points: 10, Experience: 50},
				{ID: 2, Name: "B", Points: 10, Experience: 200},
			}

			entries := ranking.Build(rows)

			convey.Convey("Then higher experience should rank first", func() {
				convey.So(entries[0].Name, convey.ShouldEqual, "B")
				convey.So(entries[1].Name, convey.ShouldEqual, "A")
			})
		})

		convey.Convey("When the input is empty", func() {
			convey.So(ranking.Build(nil), convey.ShouldBeEmpty)
		})
	})
}

func TestTop(t *testing.T) {
	convey.Convey("Given more rows than the requested size", t, func() {
		rows := make([]ranking.Row, 15)
		for i := range rows {
			rows[i] = ranking.Row{ID: uint(i + 1), Points: i}
		}

		convey.Convey("When taking the top ten", func() {
			entries := ranking.Top(rows, 10)

			convey.Convey("Then only ten positioned entries should remain", func() {
				convey.So(entries, convey.ShouldHaveLength, 10)
				convey.So(entries[0].Points, convey.ShouldEqual, 14)
				convey.So(entries[9].Position, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When n is non-positive", func() {
			convey.So(ranking.Top(rows, 0), convey.ShouldHaveLength, 15)
		})
	})
}

func TestBoard(t *testing.T) {
	convey.Convey("Given a leaderboard cache", t, func() {
		board := ranking.NewBoard()

		convey.Convey("When nothing has been published", func() {
			convey.So(board.Entries(), convey.ShouldBeEmpty)
			convey.So(board.RebuiltAt().IsZero(), convey.ShouldBeTrue)
		})

		convey.Convey("When a build is published", func() {
			board.Publish(ranking.Build([]ranking.Row{
				{ID: 1, Name: "A", Points: 5},
				{ID: 2, Name: "B", Points: 9},
			}))

			convey.Convey("Then reads should see the new board", func() {
				entries := board.Entries()
				convey.So(entries, convey.ShouldHaveLength, 2)
				convey.So(entries[0].Name, convey.ShouldEqual, "B")
				convey.So(board.Top(1), convey.ShouldHaveLength, 1)
				convey.So(board.RebuiltAt().IsZero(), convey.ShouldBeFalse)
			})
		})
	})
}
