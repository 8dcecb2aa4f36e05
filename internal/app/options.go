package service

import (
	"time"

	"github.com/okian/questlog/internal/adapters/blobstore"
	"github.com/okian/questlog/internal/adapters/repository"
	"github.com/okian/questlog/pkg/logger"
)

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// WithDBPath sets the sqlite database path.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// WithStatePath sets the blob store directory.
func WithStatePath(path string) Option {
	return func(s *Service) {
		s.statePath = path
	}
}

// WithBlobStore injects a blob store, bypassing the file store.
func WithBlobStore(store blobstore.Store) Option {
	return func(s *Service) {
		s.blobs = store
	}
}

// WithRepository injects a relational store, bypassing the sqlite one.
func WithRepository(repo repository.Store) Option {
	return func(s *Service) {
		s.repo = repo
	}
}

// WithActionLogSize bounds the session action log.
func WithActionLogSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.actionLogSize = size
		}
	}
}

// WithSnapshotActions bounds the action tail kept in session snapshots.
func WithSnapshotActions(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.snapshotActions = k
		}
	}
}

// WithHistorySize bounds the retained session snapshots.
func WithHistorySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.historySize = size
		}
	}
}

// WithResumeWindow sets how recently a prior session must have ended for its
// counters to carry into a new one.
func WithResumeWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.resumeWindow = window
		}
	}
}

// WithRankingLimit sets the default leaderboard size.
func WithRankingLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.rankingLimit = limit
		}
	}
}

// WithRankingRefresh sets the leaderboard rebuild interval.
func WithRankingRefresh(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.rankingRefresh = interval
		}
	}
}

// WithElapsedRefresh sets the elapsed-time counter refresh interval.
func WithElapsedRefresh(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.elapsedRefresh = interval
		}
	}
}

// WithQueueSize sets the command queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithPointsMasterThreshold sets the points needed for the points-master
// badge.
func WithPointsMasterThreshold(points int) Option {
	return func(s *Service) {
		s.pointsMaster = points
	}
}

// WithTurningPointThreshold sets the points needed for the turning-point
// badge.
func WithTurningPointThreshold(points int) Option {
	return func(s *Service) {
		s.turningPoint = points
	}
}

// WithDailySchedule sets the cron expression for daily mission generation.
func WithDailySchedule(expr string) Option {
	return func(s *Service) {
		if expr != "" {
			s.dailySchedule = expr
		}
	}
}

// WithClock sets the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}
