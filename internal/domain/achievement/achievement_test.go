package achievement_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/questlog/internal/domain/achievement"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

type fakeStore struct {
	blobs map[string]json.RawMessage
	sets  int
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
	s.sets++
	return nil
}

func TestEvaluator_Evaluate(t *testing.T) {
	convey.Convey("Given a badge evaluator with default thresholds", t, func() {
		eval := achievement.NewEvaluator()

		convey.Convey("When the collection is empty", func() {
			keys := eval.Evaluate(achievement.Stats{})

			convey.Convey("Then nothing should qualify", func() {
				convey.So(keys, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a single quest exists", func() {
			keys := eval.Evaluate(achievement.Stats{TotalItems: 1})

			convey.Convey("Then only first-item should qualify", func() {
				convey.So(keys, convey.ShouldResemble, []string{achievement.KeyFirstItem})
			})
		})

		convey.Convey("When the collection is well developed", func() {
			keys := eval.Evaluate(achievement.Stats{
				TotalItems:     6,
				CompletedItems: 3,
				TotalPoints:    55,
				AverageRating:  4.2,
				EditCount:      4,
			})

			convey.Convey("Then every badge should qualify", func() {
				convey.So(keys, convey.ShouldResemble, []string{
					achievement.KeyFirstItem,
					achievement.KeyCollector,
					achievement.KeyPointsMaster,
					achievement.KeyTurningPoint,
					achievement.KeyFinisher,
					achievement.KeyQualityPremium,
					achievement.KeyEditMaster,
				})
			})
		})

		convey.Convey("When points sit between the two point thresholds", func() {
			keys := eval.Evaluate(achievement.Stats{TotalItems: 1, TotalPoints: 20})

			convey.Convey("Then turning-point should qualify but points-master should not", func() {
				convey.So(keys, convey.ShouldContain, achievement.KeyTurningPoint)
				convey.So(keys, convey.ShouldNotContain, achievement.KeyPointsMaster)
			})
		})

		convey.Convey("When thresholds are customized", func() {
			custom := achievement.NewEvaluator(
				achievement.WithPointsMasterThreshold(30),
				achievement.WithTurningPointThreshold(5),
			)
			keys := custom.Evaluate(achievement.Stats{TotalPoints: 30})

			convey.Convey("Then the custom thresholds should apply", func() {
				convey.So(keys, convey.ShouldContain, achievement.KeyPointsMaster)
				convey.So(keys, convey.ShouldContain, achievement.KeyTurningPoint)
			})
		})
	})
}

func TestUnlocks(t *testing.T) {
	convey.Convey("Given a persisted unlock set", t, func() {
		ctx := context.Background()
		store := newFakeStore()
		at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		unlocks := achievement.NewUnlocks(store,
			achievement.WithNow(func() time.Time { return at }),
		)

		convey.Convey("When applying qualifying keys for the first time", func() {
			fresh, err := unlocks.Apply(ctx, []string{achievement.KeyFirstItem, achievement.KeyTurningPoint})

			convey.Convey("Then both badges should unlock with timestamps", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(fresh, convey.ShouldHaveLength, 2)
				convey.So(fresh[0].UnlockedAt, convey.ShouldNotBeNil)
				convey.So(*fresh[0].UnlockedAt, convey.ShouldEqual, at)
				convey.So(unlocks.Has(achievement.KeyFirstItem), convey.ShouldBeTrue)
				convey.So(store.sets, convey.ShouldEqual, 1)
			})

			convey.Convey("And re-applying the same keys should change nothing", func() {
				again, err := unlocks.Apply(ctx, []string{achievement.KeyFirstItem})
				convey.So(err, convey.ShouldBeNil)
				convey.So(again, convey.ShouldBeEmpty)
				convey.So(store.sets, convey.ShouldEqual, 1)
			})

			convey.Convey("And applying an empty evaluation should keep prior unlocks", func() {
				none, err := unlocks.Apply(ctx, nil)
				convey.So(err, convey.ShouldBeNil)
				convey.So(none, convey.ShouldBeEmpty)
				convey.So(unlocks.Unlocked(), convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When applying an unknown key", func() {
			fresh, err := unlocks.Apply(ctx, []string{"no-such-badge"})

			convey.Convey("Then it should be ignored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(fresh, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When reloading from the store", func() {
			_, err := unlocks.Apply(ctx, []string{achievement.KeyFinisher})
			convey.So(err, convey.ShouldBeNil)

			reloaded := achievement.NewUnlocks(store)
			reloaded.Load(ctx)

			convey.Convey("Then prior unlocks should survive", func() {
				convey.So(reloaded.Has(achievement.KeyFinisher), convey.ShouldBeTrue)
			})
		})
	})
}

func TestHeroLadder(t *testing.T) {
	convey.Convey("Given the hero milestone ladder", t, func() {
		convey.Convey("When a hero is freshly created", func() {
			rules := achievement.QualifyingHeroRules(model.Hero{Level: 1})

			convey.Convey("Then only the first step should qualify", func() {
				convey.So(rules, convey.ShouldHaveLength, 1)
				convey.So(rules[0].Key, convey.ShouldEqual, "first-step")
			})
		})

		convey.Convey("When a hero is level 5 with 600 points", func() {
			rules := achievement.QualifyingHeroRules(model.Hero{Level: 5, Points: 600})

			keys := make([]string, 0, len(rules))
			for _, r := range rules {
				keys = append(keys, r.Key)
			}

			convey.Convey("Then level rungs up to 5 and point rungs up to 500 should qualify", func() {
				convey.So(keys, convey.ShouldResemble, []string{
					"first-step", "dedicated-apprentice", "seasoned-warrior",
					"treasure-collector", "points-sovereign",
				})
			})
		})
	})
}
