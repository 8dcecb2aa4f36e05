// Package repository defines the relational store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/questlog/internal/domain/model"
)

// Store provides read/write access to heroes, missions, hero achievements
// and the system event journal.
type Store interface {
	// CreateHero inserts a hero and fills in its generated fields.
	CreateHero(ctx context.Context, hero *model.Hero) error
	// Hero returns one hero. Returns ErrHeroNotFound if the id is unknown.
	Hero(ctx context.Context, id uint) (model.Hero, error)
	// Heroes returns every hero, newest first.
	Heroes(ctx context.Context) ([]model.Hero, error)
	// UpdateHero applies the non-nil fields and returns the updated hero.
	UpdateHero(ctx context.Context, id uint, patch model.HeroPatch) (model.Hero, error)
	// DeleteHero removes a hero. Returns ErrHeroNotFound if the id is unknown.
	DeleteHero(ctx context.Context, id uint) error
	// TopHeroes returns up to limit heroes ordered by points then experience,
	// both descending.
	TopHeroes(ctx context.Context, limit int) ([]model.Hero, error)

	// Missions returns every mission, open ones first.
	Missions(ctx context.Context) ([]model.Mission, error)
	// CreateMission inserts a mission and fills in its generated fields.
	CreateMission(ctx context.Context, mission *model.Mission) error
	// CompleteMission atomically marks the mission completed and applies its
	// reward to the hero. Returns ErrMissionNotFound, ErrHeroNotFound or
	// ErrMissionCompleted when the operation cannot apply; on any error the
	// store is left unchanged.
	CompleteMission(ctx context.Context, missionID, heroID uint) (model.Hero, model.MissionReward, error)
	// SeedDefaultMissions inserts the starter missions when the table is empty.
	SeedDefaultMissions(ctx context.Context) error
	// GenerateDailyMissions inserts a small random batch of missions, at most
	// once per calendar day. Returns how many missions were created.
	GenerateDailyMissions(ctx context.Context, now time.Time) (int, error)
	// CompletedMissionCount returns how many missions the hero has completed.
	CompletedMissionCount(ctx context.Context, heroID uint) (int64, error)

	// GrantAchievement awards a hero milestone once. Returns true when the
	// grant is new, false when the hero already holds it.
	GrantAchievement(ctx context.Context, heroID uint, key, name, description, icon string) (bool, error)
	// HeroAchievements returns a hero's milestones, oldest first.
	HeroAchievements(ctx context.Context, heroID uint) ([]model.HeroAchievement, error)
	// AchievementCount returns how many milestones the hero holds.
	AchievementCount(ctx context.Context, heroID uint) (int64, error)

	// LogEvent appends a row to the system event journal.
	LogEvent(ctx context.Context, eventType, description string, heroID *uint, data string) error
	// RecentEvents returns up to limit journal rows, newest first.
	RecentEvents(ctx context.Context, limit int) ([]model.SystemEvent, error)

	// SystemStats aggregates the headline numbers.
	SystemStats(ctx context.Context) (model.SystemStats, error)

	// Close releases the underlying database handle.
	Close() error
}
