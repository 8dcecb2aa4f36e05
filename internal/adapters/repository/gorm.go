package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/logger"
	"github.com/okian/questlog/pkg/metrics"
)

// eventDailyMissions marks one generated daily batch in the journal. The
// per-day guard queries for it.
const eventDailyMissions = "daily_missions_generated"

// xpPerLevel is how much experience one hero level costs.
const xpPerLevel = 100

// defaultMissions seed an empty missions table so a fresh install has
// something to complete.
var defaultMissions = []model.Mission{
	{Title: "First Training", Description: "Complete your first training at the academy", RewardXP: 50, RewardPoints: 5, Difficulty: "Easy"},
	{Title: "Forest Patrol", Description: "Patrol the forest around the academy", RewardXP: 100, RewardPoints: 10, Difficulty: "Normal"},
	{Title: "Goblin Hunt", Description: "Drive the goblins out of the training grounds", RewardXP: 200, RewardPoints: 25, Difficulty: "Hard"},
	{Title: "Dragon's Trial", Description: "Face the dragon and prove your worth", RewardXP: 500, RewardPoints: 60, Difficulty: "Epic"},
}

// dailyMissionTemplates feed the once-a-day random batch.
var dailyMissionTemplates = []model.Mission{
	{Title: "Morning Drills", Description: "Run the morning training drills", RewardXP: 60, RewardPoints: 6, Difficulty: "Easy"},
	{Title: "Supply Run", Description: "Fetch supplies from the village", RewardXP: 80, RewardPoints: 8, Difficulty: "Easy"},
	{Title: "Sparring Match", Description: "Win a sparring match against a classmate", RewardXP: 120, RewardPoints: 12, Difficulty: "Normal"},
	{Title: "Night Watch", Description: "Stand the night watch on the academy walls", RewardXP: 150, RewardPoints: 15, Difficulty: "Normal"},
	{Title: "Ruin Expedition", Description: "Explore the ruins beyond the hills", RewardXP: 250, RewardPoints: 30, Difficulty: "Hard"},
}

// GormStore is the sqlite-backed Store.
type GormStore struct {
	db   *gorm.DB
	log  logger.Logger
	rand *rand.Rand
}

// NewGormStore opens (or creates) the database at path and migrates the
// schema.
func NewGormStore(path string, opts ...GormOption) (*GormStore, error) {
	s := &GormStore{
		log:  logger.Get(),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(s)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDatabase, err)
	}

	if err := db.AutoMigrate(
		&model.Hero{},
		&model.Mission{},
		&model.HeroAchievement{},
		&model.SystemEvent{},
	); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrOpenDatabase, err)
	}

	s.db = db
	return s, nil
}

// CreateHero inserts a hero.
func (s *GormStore) CreateHero(ctx context.Context, hero *model.Hero) error {
	started := time.Now()
	if hero.Level < 1 {
		hero.Level = 1
	}

	if err := s.db.WithContext(ctx).Create(hero).Error; err != nil {
		return fmt.Errorf("create hero: %w", err)
	}

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(started).Milliseconds()))
	return nil
}

// Hero returns one hero by id.
func (s *GormStore) Hero(ctx context.Context, id uint) (model.Hero, error) {
	var hero model.Hero
	if err := s.db.WithContext(ctx).First(&hero, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Hero{}, fmt.Errorf("%w: id %d", ErrHeroNotFound, id)
		}
		return model.Hero{}, fmt.Errorf("load hero %d: %w", id, err)
	}
	return hero, nil
}

// Heroes returns every hero, newest first.
func (s *GormStore) Heroes(ctx context.Context) ([]model.Hero, error) {
	started := time.Now()

	var heroes []model.Hero
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&heroes).Error; err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}

	metrics.RecordRepositoryQueryLatency(float64(time.Since(started).Milliseconds()))
	return heroes, nil
}

// UpdateHero applies the non-nil fields and returns the updated row.
func (s *GormStore) UpdateHero(ctx context.Context, id uint, patch model.HeroPatch) (model.Hero, error) {
	fields := make(map[string]any)
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Class != nil {
		fields["class"] = *patch.Class
	}
	if patch.Experience != nil {
		fields["experience"] = *patch.Experience
	}
	if patch.Level != nil {
		fields["level"] = *patch.Level
	}
	if patch.Points != nil {
		fields["points"] = *patch.Points
	}

	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&model.Hero{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return model.Hero{}, fmt.Errorf("update hero %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return model.Hero{}, fmt.Errorf("%w: id %d", ErrHeroNotFound, id)
		}
	}

	return s.Hero(ctx, id)
}

// DeleteHero removes a hero by id.
func (s *GormStore) DeleteHero(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Hero{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete hero %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrHeroNotFound, id)
	}
	return nil
}

// TopHeroes returns up to limit heroes by points desc, experience desc.
func (s *GormStore) TopHeroes(ctx context.Context, limit int) ([]model.Hero, error) {
	started := time.Now()

	q := s.db.WithContext(ctx).Order("points DESC, experience DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var heroes []model.Hero
	if err := q.Find(&heroes).Error; err != nil {
		return nil, fmt.Errorf("top heroes: %w", err)
	}

	metrics.RecordRepositoryQueryLatency(float64(time.Since(started).Milliseconds()))
	return heroes, nil
}

// Missions returns every mission with open ones first, newest within each
// group.
func (s *GormStore) Missions(ctx context.Context) ([]model.Mission, error) {
	var missions []model.Mission
	if err := s.db.WithContext(ctx).Order("completed ASC, created_at DESC").Find(&missions).Error; err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

// CreateMission inserts a mission.
func (s *GormStore) CreateMission(ctx context.Context, mission *model.Mission) error {
	if err := s.db.WithContext(ctx).Create(mission).Error; err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	return nil
}

// CompleteMission marks the mission completed and applies its reward to the
// hero in one transaction. Either both rows change or neither does.
func (s *GormStore) CompleteMission(ctx context.Context, missionID, heroID uint) (model.Hero, model.MissionReward, error) {
	var (
		hero   model.Hero
		reward model.MissionReward
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mission model.Mission
		if err := tx.First(&mission, missionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrMissionNotFound, missionID)
			}
			return fmt.Errorf("load mission %d: %w", missionID, err)
		}
		if mission.Completed {
			return fmt.Errorf("%w: id %d", ErrMissionCompleted, missionID)
		}

		if err := tx.First(&hero, heroID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrHeroNotFound, heroID)
			}
			return fmt.Errorf("load hero %d: %w", heroID, err)
		}

		hero.Experience += mission.RewardXP
		hero.Points += mission.RewardPoints
		hero.Level = hero.Experience/xpPerLevel + 1

		if err := tx.Model(&model.Hero{}).Where("id = ?", hero.ID).Updates(map[string]any{
			"experience": hero.Experience,
			"level":      hero.Level,
			"points":     hero.Points,
		}).Error; err != nil {
			return fmt.Errorf("apply reward to hero %d: %w", heroID, err)
		}

		if err := tx.Model(&model.Mission{}).Where("id = ?", mission.ID).Updates(map[string]any{
			"completed": true,
			"hero_id":   heroID,
		}).Error; err != nil {
			return fmt.Errorf("close mission %d: %w", missionID, err)
		}

		reward = model.MissionReward{XP: mission.RewardXP, Points: mission.RewardPoints}
		return nil
	})
	if err != nil {
		return model.Hero{}, model.MissionReward{}, err
	}

	metrics.RecordMissionCompleted()
	return hero, reward, nil
}

// SeedDefaultMissions inserts the starter missions when the table is empty.
func (s *GormStore) SeedDefaultMissions(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Mission{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count missions: %w", err)
	}
	if count > 0 {
		return nil
	}

	missions := make([]model.Mission, len(defaultMissions))
	copy(missions, defaultMissions)
	if err := s.db.WithContext(ctx).Create(&missions).Error; err != nil {
		return fmt.Errorf("seed missions: %w", err)
	}

	s.log.Info(ctx, "seeded starter missions", logger.Int("count", len(missions)))
	return nil
}

// GenerateDailyMissions inserts 2-3 random template missions, at most once
// per calendar day. The journal row is the per-day guard.
func (s *GormStore) GenerateDailyMissions(ctx context.Context, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var generated int64
	if err := s.db.WithContext(ctx).Model(&model.SystemEvent{}).
		Where("event_type = ? AND created_at >= ?", eventDailyMissions, dayStart).
		Count(&generated).Error; err != nil {
		return 0, fmt.Errorf("check daily missions: %w", err)
	}
	if generated > 0 {
		return 0, nil
	}

	n := 2 + s.rand.Intn(2)
	picks := s.rand.Perm(len(dailyMissionTemplates))[:n]

	missions := make([]model.Mission, 0, n)
	for _, i := range picks {
		missions = append(missions, dailyMissionTemplates[i])
	}
	if err := s.db.WithContext(ctx).Create(&missions).Error; err != nil {
		return 0, fmt.Errorf("create daily missions: %w", err)
	}

	if err := s.LogEvent(ctx, eventDailyMissions,
		fmt.Sprintf("generated %d daily missions", n), nil, ""); err != nil {
		return n, err
	}

	s.log.Info(ctx, "generated daily missions", logger.Int("count", n))
	return n, nil
}

// CompletedMissionCount returns how many missions the hero completed.
func (s *GormStore) CompletedMissionCount(ctx context.Context, heroID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Mission{}).
		Where("completed = ? AND hero_id = ?", true, heroID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count completed missions for hero %d: %w", heroID, err)
	}
	return count, nil
}

// GrantAchievement awards a milestone once per hero and key.
func (s *GormStore) GrantAchievement(ctx context.Context, heroID uint, key, name, description, icon string) (bool, error) {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.HeroAchievement{}).
		Where("hero_id = ? AND key = ?", heroID, key).
		Count(&existing).Error; err != nil {
		return false, fmt.Errorf("check achievement %q: %w", key, err)
	}
	if existing > 0 {
		return false, nil
	}

	grant := model.HeroAchievement{
		Key:         key,
		HeroID:      heroID,
		Name:        name,
		Description: description,
		Icon:        icon,
	}
	if err := s.db.WithContext(ctx).Create(&grant).Error; err != nil {
		return false, fmt.Errorf("grant achievement %q: %w", key, err)
	}

	metrics.RecordAchievementUnlocked(key)
	return true, nil
}

// HeroAchievements returns a hero's milestones, oldest first.
func (s *GormStore) HeroAchievements(ctx context.Context, heroID uint) ([]model.HeroAchievement, error) {
	var grants []model.HeroAchievement
	if err := s.db.WithContext(ctx).
		Where("hero_id = ?", heroID).
		Order("earned_at ASC").
		Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("list achievements for hero %d: %w", heroID, err)
	}
	return grants, nil
}

// AchievementCount returns how many milestones the hero holds.
func (s *GormStore) AchievementCount(ctx context.Context, heroID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.HeroAchievement{}).
		Where("hero_id = ?", heroID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count achievements for hero %d: %w", heroID, err)
	}
	return count, nil
}

// LogEvent appends a journal row.
func (s *GormStore) LogEvent(ctx context.Context, eventType, description string, heroID *uint, data string) error {
	event := model.SystemEvent{
		EventType:   eventType,
		Description: description,
		HeroID:      heroID,
		Data:        data,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("log event %q: %w", eventType, err)
	}
	return nil
}

// RecentEvents returns up to limit journal rows, newest first.
func (s *GormStore) RecentEvents(ctx context.Context, limit int) ([]model.SystemEvent, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []model.SystemEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return events, nil
}

// SystemStats aggregates the headline numbers.
func (s *GormStore) SystemStats(ctx context.Context) (model.SystemStats, error) {
	var stats model.SystemStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Hero{}).Count(&stats.TotalHeroes).Error; err != nil {
		return stats, fmt.Errorf("count heroes: %w", err)
	}
	if err := db.Model(&model.Mission{}).Count(&stats.TotalMissions).Error; err != nil {
		return stats, fmt.Errorf("count missions: %w", err)
	}
	if err := db.Model(&model.Mission{}).Where("completed = ?", true).Count(&stats.CompletedMissions).Error; err != nil {
		return stats, fmt.Errorf("count completed missions: %w", err)
	}
	if err := db.Model(&model.HeroAchievement{}).Count(&stats.TotalAchievements).Error; err != nil {
		return stats, fmt.Errorf("count achievements: %w", err)
	}

	var tops struct {
		Level      int
		Experience int
		Points     int
	}
	if err := db.Model(&model.Hero{}).
		Select("COALESCE(MAX(level), 0) AS level, COALESCE(MAX(experience), 0) AS experience, COALESCE(MAX(points), 0) AS points").
		Scan(&tops).Error; err != nil {
		return stats, fmt.Errorf("hero maxima: %w", err)
	}
	stats.TopLevel = tops.Level
	stats.TopExperience = tops.Experience
	stats.TopPoints = tops.Points

	metrics.UpdateHeroCount(int(stats.TotalHeroes))
	return stats, nil
}

// Close releases the database handle.
func (s *GormStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("unwrap database handle: %w", err)
	}
	return db.Close()
}
