// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite database for heroes and missions.
	DBPath string `koanf:"db_path"`

	// StatePath locates the directory backing the JSON blob store.
	StatePath string `koanf:"state_path"`

	// ActionLogSize bounds the per-session action log (FIFO eviction).
	ActionLogSize int `koanf:"action_log_size"`

	// SnapshotActions is the number of trailing actions kept in a session snapshot.
	SnapshotActions int `koanf:"snapshot_actions"`

	// SessionHistorySize bounds the persisted session history (FIFO eviction).
	SessionHistorySize int `koanf:"session_history_size"`

	// SessionResumeMinutes is the window within which a prior session is
	// merged into a fresh one instead of starting from zero.
	SessionResumeMinutes int `koanf:"session_resume_minutes"`

	// RankingLimit caps the leaderboard returned by GET /api/ranking.
	RankingLimit int `koanf:"ranking_limit"`

	// RankingRefreshSeconds sets the leaderboard rebuild interval.
	RankingRefreshSeconds int `koanf:"ranking_refresh_seconds"`

	// ElapsedRefreshSeconds sets the session elapsed-time refresh interval.
	ElapsedRefreshSeconds int `koanf:"elapsed_refresh_seconds"`

	// CommandQueueSize bounds the in-memory command bus queue.
	CommandQueueSize int `koanf:"command_queue_size"`

	// PointsMasterThreshold and TurningPointThreshold guard the two
	// points-milestone badges. They are intentionally independent.
	PointsMasterThreshold int `koanf:"points_master_threshold"`
	TurningPointThreshold int `koanf:"turning_point_threshold"`

	// DailyMissionSchedule is a cron expression for daily mission generation.
	DailyMissionSchedule string `koanf:"daily_mission_schedule"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9090",
		DBPath:                "questlog.sqlite",
		StatePath:             "state",
		ActionLogSize:         100,
		SnapshotActions:       20,
		SessionHistorySize:    10,
		SessionResumeMinutes:  60,
		RankingLimit:          10,
		RankingRefreshSeconds: 30,
		ElapsedRefreshSeconds: 1,
		CommandQueueSize:      10_000,
		PointsMasterThreshold: 50,
		TurningPointThreshold: 10,
		DailyMissionSchedule:  "0 0 * * *",
	}
}
