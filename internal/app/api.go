package service

import (
	"context"
	"fmt"

	"github.com/okian/questlog/internal/adapters/bus"
	"github.com/okian/questlog/internal/domain/achievement"
	"github.com/okian/questlog/internal/domain/engagement"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/domain/ranking"
	"github.com/okian/questlog/internal/domain/scoring"
	"github.com/okian/questlog/internal/domain/session"
	"github.com/okian/questlog/pkg/logger"
)

// Session operations.

// EnqueueAction submits a tracked action for asynchronous processing.
func (s *Service) EnqueueAction(ctx context.Context, kind string, payload map[string]any) bool {
	return s.queue.Enqueue(ctx, bus.TrackAction(kind, payload))
}

// EnqueueMetric submits a counter increment for asynchronous processing.
func (s *Service) EnqueueMetric(ctx context.Context, name string, amount int64) bool {
	return s.queue.Enqueue(ctx, bus.IncrementMetric(name, amount))
}

// SessionOverview returns the live view of the running session.
func (s *Service) SessionOverview(_ context.Context) model.SessionOverview {
	s.mu.RLock()
	log, tracker := s.log, s.tracker
	s.mu.RUnlock()

	metrics := tracker.Metrics()
	return model.SessionOverview{
		StartedAt:       tracker.StartedAt(),
		DurationSeconds: metrics.TotalTimeSpentMs / 1000,
		TotalActions:    log.Len(),
		Metrics:         metrics,
		RecentActions:   log.Recent(recentActionsInOverview),
	}
}

// EngagementSummary classifies the running session.
func (s *Service) EngagementSummary(_ context.Context) engagement.Summary {
	s.mu.RLock()
	analyzer := s.analyzer
	s.mu.RUnlock()
	return analyzer.Classify()
}

// SessionReport builds the full session analysis.
func (s *Service) SessionReport(_ context.Context) engagement.Report {
	s.mu.RLock()
	analyzer := s.analyzer
	s.mu.RUnlock()
	return analyzer.Report()
}

// SessionExport bundles the running session, its history and the unlocked
// badges for download.
func (s *Service) SessionExport(ctx context.Context) model.SessionExport {
	s.mu.RLock()
	tracker, history, unlocks := s.tracker, s.history, s.unlocks
	snapshotActions := s.snapshotActions
	s.mu.RUnlock()

	return model.SessionExport{
		ExportedAt: s.clock(),
		Session:    tracker.Snapshot(snapshotActions),
		History:    history.All(ctx),
		Badges:     unlocks.Unlocked(),
	}
}

// ResetSession archives the running session and starts a fresh one. The new
// session does not inherit any counters.
func (s *Service) ResetSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.tracker.Snapshot(s.snapshotActions)
	if err := s.history.Append(ctx, snap); err != nil {
		return fmt.Errorf("archive session: %w", err)
	}

	s.newSessionLocked()
	s.logger.Info(ctx, "session reset",
		logger.Int64("archived_duration_ms", snap.DurationMs))
	return nil
}

// Hero operations.

// CreateHero adds a hero to the roster and awards any starting milestones.
func (s *Service) CreateHero(ctx context.Context, name, class string) (model.Hero, error) {
	hero := model.Hero{Name: name, Class: class, Level: 1}
	if err := s.repo.CreateHero(ctx, &hero); err != nil {
		return model.Hero{}, err
	}

	if _, err := s.syncHeroAchievements(ctx, hero); err != nil {
		s.logger.Warn(ctx, "achievement sync failed", logger.Error(err))
	}
	if err := s.repo.LogEvent(ctx, "hero_created",
		fmt.Sprintf("%s the %s joined the academy", name, class), &hero.ID, ""); err != nil {
		s.logger.Warn(ctx, "event log failed", logger.Error(err))
	}
	s.Track(model.ActionHeroCreated, map[string]any{"hero_id": hero.ID})

	return hero, nil
}

// Heroes returns the full roster.
func (s *Service) Heroes(ctx context.Context) ([]model.Hero, error) {
	return s.repo.Heroes(ctx)
}

// HeroView returns one hero with milestones and composite score.
func (s *Service) HeroView(ctx context.Context, id uint) (model.HeroView, error) {
	hero, err := s.repo.Hero(ctx, id)
	if err != nil {
		return model.HeroView{}, err
	}

	grants, err := s.repo.HeroAchievements(ctx, id)
	if err != nil {
		return model.HeroView{}, err
	}
	completed, err := s.repo.CompletedMissionCount(ctx, id)
	if err != nil {
		return model.HeroView{}, err
	}

	return model.HeroView{
		Hero:              hero,
		Achievements:      grants,
		CompletedMissions: completed,
		Score: s.scorer.Score(scoring.Input{
			Points:            hero.Points,
			Level:             hero.Level,
			Experience:        hero.Experience,
			Achievements:      len(grants),
			CompletedMissions: int(completed),
		}),
	}, nil
}

// UpdateHero applies a partial update and re-checks milestones.
func (s *Service) UpdateHero(ctx context.Context, id uint, patch model.HeroPatch) (model.Hero, error) {
	hero, err := s.repo.UpdateHero(ctx, id, patch)
	if err != nil {
		return model.Hero{}, err
	}

	if _, err := s.syncHeroAchievements(ctx, hero); err != nil {
		s.logger.Warn(ctx, "achievement sync failed", logger.Error(err))
	}
	return hero, nil
}

// DeleteHero removes a hero from the roster.
func (s *Service) DeleteHero(ctx context.Context, id uint) error {
	if err := s.repo.DeleteHero(ctx, id); err != nil {
		return err
	}
	if err := s.repo.LogEvent(ctx, "hero_deleted",
		fmt.Sprintf("hero %d left the academy", id), nil, ""); err != nil {
		s.logger.Warn(ctx, "event log failed", logger.Error(err))
	}
	return nil
}

// Mission operations.

// Missions returns the mission board.
func (s *Service) Missions(ctx context.Context) ([]model.Mission, error) {
	return s.repo.Missions(ctx)
}

// CreateMission adds a mission to the board.
func (s *Service) CreateMission(ctx context.Context, mission model.Mission) (model.Mission, error) {
	if err := s.repo.CreateMission(ctx, &mission); err != nil {
		return model.Mission{}, err
	}
	if err := s.repo.LogEvent(ctx, "mission_created", mission.Title, nil, ""); err != nil {
		s.logger.Warn(ctx, "event log failed", logger.Error(err))
	}
	return mission, nil
}

// CompleteMission applies the mission reward to the hero and feeds the
// outcome into session metrics, milestones and the leaderboard.
func (s *Service) CompleteMission(ctx context.Context, missionID, heroID uint) (model.MissionOutcome, error) {
	hero, reward, err := s.repo.CompleteMission(ctx, missionID, heroID)
	if err != nil {
		return model.MissionOutcome{}, err
	}

	newGrants, err := s.syncHeroAchievements(ctx, hero)
	if err != nil {
		s.logger.Warn(ctx, "achievement sync failed", logger.Error(err))
	}
	if err := s.repo.LogEvent(ctx, "mission_completed",
		fmt.Sprintf("%s completed mission %d", hero.Name, missionID), &heroID, ""); err != nil {
		s.logger.Warn(ctx, "event log failed", logger.Error(err))
	}

	s.Track(model.ActionMissionCompleted, map[string]any{
		"mission_id": missionID,
		"hero_id":    heroID,
	})
	s.incrementQuietly(ctx, session.MetricXPGained, int64(reward.XP))
	s.incrementQuietly(ctx, session.MetricPointsEarned, int64(reward.Points))
	s.incrementQuietly(ctx, session.MetricMissionsCompleted, 1)

	s.rebuildRanking(ctx)

	return model.MissionOutcome{Hero: hero, Reward: reward, NewBadges: newGrants}, nil
}

// Ranking operations.

// Ranking returns the cached leaderboard, at most limit entries.
func (s *Service) Ranking(_ context.Context, limit int) []ranking.Entry {
	if limit <= 0 {
		limit = s.rankingLimit
	}
	return s.board.Top(limit)
}

// Stats operations.

// SystemStats aggregates the headline numbers.
func (s *Service) SystemStats(ctx context.Context) (model.SystemStats, error) {
	return s.repo.SystemStats(ctx)
}

// RecentEvents returns the newest journal rows.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]model.SystemEvent, error) {
	return s.repo.RecentEvents(ctx, limit)
}

// Item operations.

// Items returns the quest collection.
func (s *Service) Items(_ context.Context) []model.Item {
	return s.deck.Items()
}

// SearchItems filters the collection by text and minimum points.
func (s *Service) SearchItems(_ context.Context, text string, minPoints int) []model.Item {
	return s.deck.Search(text, minPoints)
}

// CreateItem adds a quest and reports badges the change unlocked.
func (s *Service) CreateItem(ctx context.Context, name, description string, points int) (model.Item, []model.Badge, error) {
	item, err := s.deck.Create(ctx, name, description, points)
	if err != nil {
		return model.Item{}, nil, err
	}

	s.Track(model.ActionItemCreated, map[string]any{"item_id": item.ID})
	s.incrementQuietly(ctx, session.MetricItemsCreated, 1)

	return item, s.refreshBadges(ctx), nil
}

// UpdateItem edits a quest and reports badges the change unlocked.
func (s *Service) UpdateItem(ctx context.Context, id, name, description string, points int) (model.Item, []model.Badge, error) {
	item, err := s.deck.Update(ctx, id, name, description, points)
	if err != nil {
		return model.Item{}, nil, err
	}

	s.Track(model.ActionItemEdited, map[string]any{"item_id": item.ID})

	return item, s.refreshBadges(ctx), nil
}

// DeleteItem removes a quest.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.deck.Delete(ctx, id); err != nil {
		return err
	}
	s.Track(model.ActionItemDeleted, map[string]any{"item_id": id})
	return nil
}

// RateItem sets a quest's star rating and reports badges the change
// unlocked.
func (s *Service) RateItem(ctx context.Context, id string, stars int) (model.Item, []model.Badge, error) {
	item, err := s.deck.Rate(ctx, id, stars)
	if err != nil {
		return model.Item{}, nil, err
	}

	s.Track(model.ActionItemRated, map[string]any{"item_id": id, "stars": stars})

	return item, s.refreshBadges(ctx), nil
}

// CompleteItem marks a quest done, banks its points into the session and
// reports badges the change unlocked.
func (s *Service) CompleteItem(ctx context.Context, id string) (model.Item, []model.Badge, error) {
	item, err := s.deck.Complete(ctx, id)
	if err != nil {
		return model.Item{}, nil, err
	}

	s.Track(model.ActionPointsEarned, map[string]any{"item_id": id, "points": item.Points})
	s.incrementQuietly(ctx, session.MetricPointsEarned, int64(item.Points))

	return item, s.refreshBadges(ctx), nil
}

// Profile operations.

// Profile summarizes the quest collection and unlocked badges.
func (s *Service) Profile(_ context.Context) model.Profile {
	stats := s.deck.Stats()
	return model.Profile{
		TotalItems:     stats.TotalItems,
		CompletedItems: stats.CompletedItems,
		TotalPoints:    stats.TotalPoints,
		AverageRating:  stats.AverageRating,
		EditCount:      stats.EditCount,
		Badges:         s.unlocks.Unlocked(),
	}
}

// User operations.

// Login finds or creates a user by name.
func (s *Service) Login(ctx context.Context, name string) (model.User, error) {
	user, err := s.users.Login(ctx, name)
	if err != nil {
		return model.User{}, err
	}
	s.Track(model.ActionLogin, map[string]any{"user_id": user.ID})
	return user, nil
}

// UserRanking returns the roster ordered by points.
func (s *Service) UserRanking(_ context.Context) []model.User {
	return s.users.Ranking()
}

// Helpers.

// refreshBadges re-evaluates profile badges against the collection and
// returns the newly unlocked ones.
func (s *Service) refreshBadges(ctx context.Context) []model.Badge {
	keys := s.evaluator.Evaluate(s.deck.Stats())
	fresh, err := s.unlocks.Apply(ctx, keys)
	if err != nil {
		s.logger.Warn(ctx, "badge persistence failed", logger.Error(err))
	}
	return fresh
}

// syncHeroAchievements grants every ladder milestone the hero now qualifies
// for and returns the new grants.
func (s *Service) syncHeroAchievements(ctx context.Context, hero model.Hero) ([]model.HeroAchievement, error) {
	var fresh []model.HeroAchievement
	for _, rule := range achievement.QualifyingHeroRules(hero) {
		granted, err := s.repo.GrantAchievement(ctx, hero.ID, rule.Key, rule.Name, rule.Description, rule.Icon)
		if err != nil {
			return fresh, err
		}
		if granted {
			fresh = append(fresh, model.HeroAchievement{
				Key:         rule.Key,
				HeroID:      hero.ID,
				Name:        rule.Name,
				Description: rule.Description,
				Icon:        rule.Icon,
				EarnedAt:    s.clock(),
			})
			if err := s.repo.LogEvent(ctx, "achievement_earned",
				fmt.Sprintf("%s earned %s", hero.Name, rule.Name), &hero.ID, rule.Key); err != nil {
				s.logger.Warn(ctx, "event log failed", logger.Error(err))
			}
		}
	}
	return fresh, nil
}

// incrementQuietly bumps a session counter, logging instead of failing.
func (s *Service) incrementQuietly(ctx context.Context, name string, amount int64) {
	if err := s.Increment(ctx, name, amount); err != nil {
		s.logger.Warn(ctx, "session counter update failed",
			logger.String("metric", name), logger.Error(err))
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"queueSize":    s.queueSize,
		"rankingLimit": s.rankingLimit,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len()
		stats["actionCount"] = s.log.Len()
		stats["itemCount"] = len(s.deck.Items())
		stats["userCount"] = len(s.users.Users())
		stats["leaderboardSize"] = len(s.board.Entries())
	}

	return stats
}
