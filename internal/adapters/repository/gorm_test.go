package repository_test

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/questlog/internal/adapters/repository"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func newStore(t *testing.T) *repository.GormStore {
	t.Helper()

	if err := logger.Init(); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	store, err := repository.NewGormStore(
		filepath.Join(t.TempDir(), "questlog.sqlite"),
		repository.WithRand(rand.New(rand.NewSource(1))),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestGormStore_Heroes(t *testing.T) {
	convey.Convey("Given an empty hero store", t, func() {
		ctx := context.Background()
		store := newStore(t)

		convey.Convey("When creating a hero", func() {
			hero := model.Hero{Name: "Lyra", Class: "Ranger"}
			err := store.CreateHero(ctx, &hero)

			convey.Convey("Then it should get an id and level 1", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(hero.ID, convey.ShouldBeGreaterThan, 0)
				convey.So(hero.Level, convey.ShouldEqual, 1)
			})

			convey.Convey("And it should be readable back", func() {
				got, err := store.Hero(ctx, hero.ID)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.Name, convey.ShouldEqual, "Lyra")
			})
		})

		convey.Convey("When loading an unknown hero", func() {
			_, err := store.Hero(ctx, 999)

			convey.Convey("Then it should report not found", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrHeroNotFound)
			})
		})

		convey.Convey("When updating selected fields", func() {
			hero := model.Hero{Name: "Bram", Class: "Knight"}
			convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)

			points := 120
			updated, err := store.UpdateHero(ctx, hero.ID, model.HeroPatch{Points: &points})

			convey.Convey("Then only those fields should change", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(updated.Points, convey.ShouldEqual, 120)
				convey.So(updated.Name, convey.ShouldEqual, "Bram")
			})
		})

		convey.Convey("When deleting a hero", func() {
			hero := model.Hero{Name: "Mira", Class: "Mage"}
			convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)

			convey.So(store.DeleteHero(ctx, hero.ID), convey.ShouldBeNil)

			convey.Convey("Then it should be gone and a second delete should fail", func() {
				_, err := store.Hero(ctx, hero.ID)
				convey.So(err, convey.ShouldWrap, repository.ErrHeroNotFound)
				convey.So(store.DeleteHero(ctx, hero.ID), convey.ShouldWrap, repository.ErrHeroNotFound)
			})
		})

		convey.Convey("When ranking heroes", func() {
			for _, h := range []model.Hero{
				{Name: "A", Class: "Mage", Points: 10, Experience: 50},
				{Name: "B", Class: "Mage", Points: 30},
				{Name: "C", Class: "Mage", Points: 10, Experience: 200},
			} {
				hero := h
				convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)
			}

			top, err := store.TopHeroes(ctx, 2)

			convey.Convey("Then points desc then experience desc should order them", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(top, convey.ShouldHaveLength, 2)
				convey.So(top[0].Name, convey.ShouldEqual, "B")
				convey.So(top[1].Name, convey.ShouldEqual, "C")
			})
		})
	})
}

func TestGormStore_CompleteMission(t *testing.T) {
	convey.Convey("Given a hero and an open mission", t, func() {
		ctx := context.Background()
		store := newStore(t)

		hero := model.Hero{Name: "Edda", Class: "Paladin", Experience: 80}
		convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)

		mission := model.Mission{Title: "Trial", RewardXP: 150, RewardPoints: 20}
		convey.So(store.CreateMission(ctx, &mission), convey.ShouldBeNil)

		convey.Convey("When the hero completes the mission", func() {
			updated, reward, err := store.CompleteMission(ctx, mission.ID, hero.ID)

			convey.Convey("Then reward, level and mission state should all apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(reward, convey.ShouldResemble, model.MissionReward{XP: 150, Points: 20})
				convey.So(updated.Experience, convey.ShouldEqual, 230)
				convey.So(updated.Level, convey.ShouldEqual, 3)
				convey.So(updated.Points, convey.ShouldEqual, 20)

				missions, err := store.Missions(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(missions[0].Completed, convey.ShouldBeTrue)
				convey.So(*missions[0].HeroID, convey.ShouldEqual, hero.ID)
			})

			convey.Convey("And completing it again should conflict without changes", func() {
				_, _, err := store.CompleteMission(ctx, mission.ID, hero.ID)
				convey.So(err, convey.ShouldWrap, repository.ErrMissionCompleted)

				unchanged, herr := store.Hero(ctx, hero.ID)
				convey.So(herr, convey.ShouldBeNil)
				convey.So(unchanged.Experience, convey.ShouldEqual, 230)
			})
		})

		convey.Convey("When the mission does not exist", func() {
			_, _, err := store.CompleteMission(ctx, 999, hero.ID)
			convey.So(err, convey.ShouldWrap, repository.ErrMissionNotFound)
		})

		convey.Convey("When the hero does not exist", func() {
			_, _, err := store.CompleteMission(ctx, mission.ID, 999)
			convey.So(err, convey.ShouldWrap, repository.ErrHeroNotFound)

			convey.Convey("Then the mission should stay open", func() {
				missions, merr := store.Missions(ctx)
				convey.So(merr, convey.ShouldBeNil)
				convey.So(missions[0].Completed, convey.ShouldBeFalse)
			})
		})
	})
}

func TestGormStore_MissionSeeding(t *testing.T) {
	convey.Convey("Given an empty mission table", t, func() {
		ctx := context.Background()
		store := newStore(t)

		convey.Convey("When seeding the starter missions twice", func() {
			convey.So(store.SeedDefaultMissions(ctx), convey.ShouldBeNil)
			convey.So(store.SeedDefaultMissions(ctx), convey.ShouldBeNil)

			missions, err := store.Missions(ctx)

			convey.Convey("Then the starter set should exist exactly once", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(missions, convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When generating daily missions twice on the same day", func() {
			now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

			first, err := store.GenerateDailyMissions(ctx, now)
			convey.So(err, convey.ShouldBeNil)

			second, err := store.GenerateDailyMissions(ctx, now.Add(4*time.Hour))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then only the first call should create missions", func() {
				convey.So(first, convey.ShouldBeBetweenOrEqual, 2, 3)
				convey.So(second, convey.ShouldEqual, 0)

				missions, merr := store.Missions(ctx)
				convey.So(merr, convey.ShouldBeNil)
				convey.So(missions, convey.ShouldHaveLength, first)
			})
		})
	})
}

func TestGormStore_Achievements(t *testing.T) {
	convey.Convey("Given a hero", t, func() {
		ctx := context.Background()
		store := newStore(t)

		hero := model.Hero{Name: "Tam", Class: "Bard"}
		convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)

		convey.Convey("When granting the same milestone twice", func() {
			fresh, err := store.GrantAchievement(ctx, hero.ID, "first-step", "First Step", "Begin training", "🎯")
			convey.So(err, convey.ShouldBeNil)

			again, err := store.GrantAchievement(ctx, hero.ID, "first-step", "First Step", "Begin training", "🎯")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then only the first grant should be new", func() {
				convey.So(fresh, convey.ShouldBeTrue)
				convey.So(again, convey.ShouldBeFalse)

				grants, gerr := store.HeroAchievements(ctx, hero.ID)
				convey.So(gerr, convey.ShouldBeNil)
				convey.So(grants, convey.ShouldHaveLength, 1)
				convey.So(grants[0].Key, convey.ShouldEqual, "first-step")

				count, cerr := store.AchievementCount(ctx, hero.ID)
				convey.So(cerr, convey.ShouldBeNil)
				convey.So(count, convey.ShouldEqual, 1)
			})
		})
	})
}

func TestGormStore_EventsAndStats(t *testing.T) {
	convey.Convey("Given some recorded activity", t, func() {
		ctx := context.Background()
		store := newStore(t)

		hero := model.Hero{Name: "Nim", Class: "Rogue", Points: 40, Experience: 310}
		convey.So(store.CreateHero(ctx, &hero), convey.ShouldBeNil)

		mission := model.Mission{Title: "Heist", RewardXP: 90, RewardPoints: 10}
		convey.So(store.CreateMission(ctx, &mission), convey.ShouldBeNil)
		_, _, err := store.CompleteMission(ctx, mission.ID, hero.ID)
		convey.So(err, convey.ShouldBeNil)

		convey.So(store.LogEvent(ctx, "hero_created", "Nim joined", &hero.ID, ""), convey.ShouldBeNil)

		convey.Convey("When reading recent events", func() {
			events, err := store.RecentEvents(ctx, 10)

			convey.Convey("Then the journal rows should come back newest first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(events, convey.ShouldNotBeEmpty)
				convey.So(events[0].EventType, convey.ShouldEqual, "hero_created")
			})
		})

		convey.Convey("When aggregating system stats", func() {
			stats, err := store.SystemStats(ctx)

			convey.Convey("Then counts and maxima should reflect the data", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats.TotalHeroes, convey.ShouldEqual, 1)
				convey.So(stats.TotalMissions, convey.ShouldEqual, 1)
				convey.So(stats.CompletedMissions, convey.ShouldEqual, 1)
				convey.So(stats.TopPoints, convey.ShouldEqual, 50)
				convey.So(stats.TopExperience, convey.ShouldEqual, 400)
				convey.So(stats.TopLevel, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When counting completed missions for the hero", func() {
			count, err := store.CompletedMissionCount(ctx, hero.ID)
			convey.So(err, convey.ShouldBeNil)
			convey.So(count, convey.ShouldEqual, 1)
		})
	})
}
