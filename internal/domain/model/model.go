// Package model contains domain models passed between layers.
package model

import "time"

// Action kinds recorded in the session action log.
const (
	ActionClick            = "click"
	ActionMetricUpdate     = "metric_update"
	ActionHeroCreated      = "hero_created"
	ActionXPGained         = "xp_gained"
	ActionPointsEarned     = "points_earned"
	ActionMissionCompleted = "mission_completed"
	ActionItemCreated      = "item_created"
	ActionItemEdited       = "item_edited"
	ActionItemDeleted      = "item_deleted"
	ActionItemRated        = "item_rated"
	ActionLogin            = "login"
)

// Action is an immutable record of a single tracked user interaction.
type Action struct {
	Kind            string         `json:"kind"`
	Payload         map[string]any `json:"payload,omitempty"`
	OccurredAt      time.Time      `json:"occurred_at"`
	SessionOffsetMs int64          `json:"session_offset_ms"`
}

// SessionMetrics holds the six per-session counters. Counters only ever
// grow within a session; they are reset by starting a new session.
type SessionMetrics struct {
	TotalClicks       int64 `json:"total_clicks"`
	TotalTimeSpentMs  int64 `json:"total_time_spent_ms"`
	ItemsCreated      int64 `json:"items_created"`
	XPGained          int64 `json:"xp_gained"`
	PointsEarned      int64 `json:"points_earned"`
	MissionsCompleted int64 `json:"missions_completed"`
}

// SessionSnapshot is an immutable point-in-time copy of a finished (or
// resumed-from) session, persisted to the blob store history.
type SessionSnapshot struct {
	StartedAt     time.Time      `json:"started_at"`
	EndedAt       time.Time      `json:"ended_at"`
	DurationMs    int64          `json:"duration_ms"`
	Metrics       SessionMetrics `json:"metrics"`
	RecentActions []Action       `json:"recent_actions,omitempty"`
}

// User is a lightweight leaderboard participant created on first login.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Points         int       `json:"points"`
	CompletedItems int       `json:"completed_items"`
	TotalItems     int       `json:"total_items"`
	JoinedAt       time.Time `json:"joined_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// Item is a single entry in the user's quest collection.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Stars       int       `json:"stars"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Badge is a profile achievement definition plus its unlock time once earned.
type Badge struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// Hero is a row in the relational store.
type Hero struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Class      string    `json:"class" gorm:"not null"`
	Experience int       `json:"experience" gorm:"default:0"`
	Level      int       `json:"level" gorm:"default:1"`
	Points     int       `json:"points" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Mission is a quest heroes can complete for xp/point rewards.
type Mission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	RewardXP     int       `json:"reward_xp" gorm:"column:reward_xp;default:100"`
	RewardPoints int       `json:"reward_points" gorm:"default:10"`
	Difficulty   string    `json:"difficulty" gorm:"default:Normal"`
	Completed    bool      `json:"completed" gorm:"default:false"`
	HeroID       *uint     `json:"hero_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HeroPatch carries optional hero fields for partial updates. Nil fields
// are left unchanged.
type HeroPatch struct {
	Name       *string `json:"name,omitempty"`
	Class      *string `json:"class,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Level      *int    `json:"level,omitempty"`
	Points     *int    `json:"points,omitempty"`
}

// MissionReward reports what a hero earned from completing a mission.
type MissionReward struct {
	XP     int `json:"xp"`
	Points int `json:"points"`
}

// HeroAchievement is a granted hero milestone. Grants are never revoked.
type HeroAchievement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"not null;index:idx_hero_achievement,unique"`
	HeroID      uint      `json:"hero_id" gorm:"not null;index:idx_hero_achievement,unique"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at" gorm:"autoCreateTime"`
}

// SystemEvent is an append-only audit row for notable system activity.
type SystemEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	EventType   string    `json:"event_type" gorm:"not null"`
	Description string    `json:"description"`
	HeroID      *uint     `json:"hero_id,omitempty"`
	Data        string    `json:"data,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionOverview is the live view of the running session.
type SessionOverview struct {
	StartedAt       time.Time      `json:"started_at"`
	DurationSeconds int64          `json:"duration_seconds"`
	TotalActions    int            `json:"total_actions"`
	Metrics         SessionMetrics `json:"metrics"`
	RecentActions   []Action       `json:"recent_actions,omitempty"`
}

// SessionExport is the full downloadable session state.
type SessionExport struct {
	ExportedAt time.Time         `json:"exported_at"`
	Session    SessionSnapshot   `json:"session"`
	History    []SessionSnapshot `json:"history,omitempty"`
	Badges     []Badge           `json:"badges,omitempty"`
}

// Profile summarizes the quest collection and its unlocked badges.
type Profile struct {
	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	TotalPoints    int     `json:"total_points"`
	AverageRating  float64 `json:"average_rating"`
	EditCount      int     `json:"edit_count"`
	Badges         []Badge `json:"badges"`
}

// HeroView is a hero together with milestones and composite score.
type HeroView struct {
	Hero
	Achievements      []HeroAchievement `json:"achievements"`
	CompletedMissions int64             `json:"completed_missions"`
	Score             int               `json:"score"`
}

// MissionOutcome reports the result of completing a mission.
type MissionOutcome struct {
	Hero      Hero              `json:"hero"`
	Reward    MissionReward     `json:"reward"`
	NewBadges []HeroAchievement `json:"new_achievements,omitempty"`
}

// SystemStats aggregates headline numbers for the stats endpoint.
type SystemStats struct {
	TotalHeroes       int64 `json:"total_heroes"`
	TotalMissions     int64 `json:"total_missions"`
	CompletedMissions int64 `json:"completed_missions"`
	TotalAchievements int64 `json:"total_achievements"`
	TopLevel          int   `json:"top_level"`
	TopExperience     int   `json:"top_experience"`
	TopPoints         int   `json:"top_points"`
}
