// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/questlog/internal/adapters/blobstore"
	"github.com/okian/questlog/internal/adapters/bus"
	"github.com/okian/questlog/internal/adapters/repository"
	"github.com/okian/questlog/internal/domain/achievement"
	"github.com/okian/questlog/internal/domain/actionlog"
	"github.com/okian/questlog/internal/domain/engagement"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/domain/ranking"
	"github.com/okian/questlog/internal/domain/scoring"
	"github.com/okian/questlog/internal/domain/session"
	"github.com/okian/questlog/internal/itemdeck"
	"github.com/okian/questlog/internal/userboard"
	"github.com/okian/questlog/pkg/logger"
	"github.com/okian/questlog/pkg/metrics"
)

// recentActionsInOverview bounds the action tail in the live session view.
const recentActionsInOverview = 5

// Service implements the API dependencies for the academy system.
type Service struct {
	mu sync.RWMutex

	// Core components
	blobs      blobstore.Store
	repo       repository.Store
	deck       *itemdeck.Deck
	users      *userboard.Board
	log        *actionlog.Log
	tracker    *session.Tracker
	analyzer   *engagement.Analyzer
	history    *session.History
	unlocks    *achievement.Unlocks
	evaluator  *achievement.Evaluator
	queue      *bus.Queue
	dispatcher *bus.Dispatcher
	board      *ranking.Board
	scorer     *scoring.Scorer
	cron       *cron.Cron

	// Configuration
	dbPath          string
	statePath       string
	actionLogSize   int
	snapshotActions int
	historySize     int
	resumeWindow    time.Duration
	rankingLimit    int
	rankingRefresh  time.Duration
	elapsedRefresh  time.Duration
	queueSize       int
	pointsMaster    int
	turningPoint    int
	dailySchedule   string
	clock           func() time.Time

	// State
	started bool
	cancel  context.CancelFunc

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:          "questlog.sqlite",
		statePath:       "state",
		actionLogSize:   100,
		snapshotActions: 20,
		historySize:     10,
		resumeWindow:    time.Hour,
		rankingLimit:    10,
		rankingRefresh:  30 * time.Second,
		elapsedRefresh:  time.Second,
		queueSize:       10000,
		pointsMaster:    50,
		turningPoint:    10,
		dailySchedule:   "0 0 * * *",
		clock:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting academy service...")

	if s.blobs == nil {
		blobs, err := blobstore.NewFileStore(s.statePath, blobstore.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("open state store: %w", err)
		}
		s.blobs = blobs
	}

	if s.repo == nil {
		repo, err := repository.NewGormStore(s.dbPath, repository.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("open repository: %w", err)
		}
		s.repo = repo
	}
	if err := s.repo.SeedDefaultMissions(ctx); err != nil {
		return fmt.Errorf("seed missions: %w", err)
	}
	if _, err := s.repo.GenerateDailyMissions(ctx, s.clock()); err != nil {
		s.logger.Warn(ctx, "daily mission generation failed", logger.Error(err))
	}

	s.deck = itemdeck.New(s.blobs)
	s.deck.Load(ctx)
	s.users = userboard.New(s.blobs)
	s.users.Load(ctx)

	s.unlocks = achievement.NewUnlocks(s.blobs)
	s.unlocks.Load(ctx)
	s.evaluator = achievement.NewEvaluator(
		achievement.WithPointsMasterThreshold(s.pointsMaster),
		achievement.WithTurningPointThreshold(s.turningPoint),
	)

	s.history = session.NewHistory(s.blobs, session.WithHistorySize(s.historySize))
	s.newSessionLocked()
	if prior, ok := s.history.Last(ctx); ok {
		if s.tracker.MergeFromPriorSession(prior) {
			s.logger.Info(ctx, "resumed metrics from recent session",
				logger.Duration("since_end", s.clock().Sub(prior.EndedAt)))
		}
	}

	s.scorer = scoring.New()
	s.board = ranking.NewBoard()

	s.queue = bus.NewQueue(bus.WithCapacity(s.queueSize))
	s.dispatcher = bus.NewDispatcher(s.queue, s, bus.WithLogger(s.logger.Named("dispatcher")))

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.dispatcher.Run(runCtx)

	s.rebuildRanking(ctx)
	go s.runTickers(runCtx)

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.dailySchedule, func() {
		dailyCtx := context.Background()
		if _, err := s.repo.GenerateDailyMissions(dailyCtx, s.clock()); err != nil {
			s.logger.Error(dailyCtx, "daily mission generation failed", logger.Error(err))
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("schedule daily missions: %w", err)
	}
	s.cron.Start()

	s.started = true
	s.logger.Info(ctx, "academy service started",
		logger.Int("actionLogSize", s.actionLogSize),
		logger.Int("queueSize", s.queueSize),
		logger.Int("rankingLimit", s.rankingLimit),
	)

	return nil
}

// Stop gracefully shuts down the service, persisting the running session.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping academy service...")

	snap := s.tracker.Snapshot(s.snapshotActions)
	if err := s.history.Append(ctx, snap); err != nil {
		s.logger.Error(ctx, "failed to persist session snapshot", logger.Error(err))
	}

	if s.cron != nil {
		s.cron.Stop()
	}

	_ = s.queue.Close()
	if err := s.dispatcher.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "dispatcher did not stop cleanly", logger.Error(err))
	}

	if s.cancel != nil {
		s.cancel()
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Warn(ctx, "repository close failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "academy service stopped")
}

// newSessionLocked replaces the session trio with a fresh one. Callers must
// hold s.mu.
func (s *Service) newSessionLocked() {
	start := s.clock()
	s.log = actionlog.New(
		actionlog.WithCapacity(s.actionLogSize),
		actionlog.WithSessionStart(start),
		actionlog.WithNow(s.clock),
	)
	s.tracker = session.New(s.log,
		session.WithStart(start),
		session.WithResumeWindow(s.resumeWindow),
		session.WithNow(s.clock),
	)
	s.analyzer = engagement.New(s.log, s.tracker, engagement.WithNow(s.clock))
}

// runTickers drives the periodic elapsed-time refresh and ranking rebuild.
func (s *Service) runTickers(ctx context.Context) {
	elapsed := time.NewTicker(s.elapsedRefresh)
	defer elapsed.Stop()
	rank := time.NewTicker(s.rankingRefresh)
	defer rank.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-elapsed.C:
			s.mu.RLock()
			tracker := s.tracker
			s.mu.RUnlock()
			tracker.RefreshElapsed()
		case <-rank.C:
			s.rebuildRanking(ctx)
		}
	}
}

// rebuildRanking queries the repository and publishes a fresh leaderboard.
func (s *Service) rebuildRanking(ctx context.Context) {
	started := time.Now()

	heroes, err := s.repo.TopHeroes(ctx, 0)
	if err != nil {
		s.logger.Error(ctx, "ranking rebuild failed", logger.Error(err))
		metrics.RecordErrorByComponent("ranking", "rebuild_failed")
		return
	}

	rows := make([]ranking.Row, len(heroes))
	for i, h := range heroes {
		rows[i] = ranking.Row{
			ID:         h.ID,
			Name:       h.Name,
			Level:      h.Level,
			Points:     h.Points,
			Experience: h.Experience,
		}
	}
	s.board.Publish(ranking.Build(rows))

	metrics.RecordRankingRebuild(float64(time.Since(started).Milliseconds()))
}

// Track applies a tracked action to the current session. Part of the
// dispatcher's tracker surface.
func (s *Service) Track(kind string, payload map[string]any) model.Action {
	s.mu.RLock()
	tracker := s.tracker
	s.mu.RUnlock()
	return tracker.Track(kind, payload)
}

// Increment bumps a session counter. Part of the dispatcher's tracker
// surface.
func (s *Service) Increment(ctx context.Context, name string, amount int64) error {
	s.mu.RLock()
	tracker := s.tracker
	s.mu.RUnlock()
	return tracker.Increment(ctx, name, amount)
}
