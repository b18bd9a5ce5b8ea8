package alerting

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"stocksentry/internal/logger"
	"stocksentry/internal/models"
)

// UserDirectory enumerates every registered user.
type UserDirectory interface {
	AllUserIDs() ([]string, error)
}

// WatchlistIndex lists a user's watchlists.
type WatchlistIndex interface {
	GetUserWatchlists(userID string) ([]models.Watchlist, error)
}

// Evaluator classifies a symbol's current news.
type Evaluator interface {
	Evaluate(ctx context.Context, symbol string) (Verdict, error)
}

// FanOuter delivers one alert to all channels and subscribers.
type FanOuter interface {
	FanOut(ctx context.Context, symbol, message string)
}

// Scheduler drives the periodic alert scan. Each cycle walks all users and
// watchlists, evaluates every distinct symbol once, and fans out the worthy
// ones. A fault in one unit (user, watchlist, symbol) is logged and skipped;
// only a user-enumeration failure abandons the cycle.
type Scheduler struct {
	users      UserDirectory
	watchlists WatchlistIndex
	policy     Evaluator
	dispatcher FanOuter
	metrics    Metrics
	interval   time.Duration

	cron    *gocron.Scheduler
	running atomic.Bool
}

// NewScheduler creates a scheduler with the given scan interval. metrics may
// be nil.
func NewScheduler(users UserDirectory, watchlists WatchlistIndex, policy Evaluator, dispatcher FanOuter, metrics Metrics, interval time.Duration) *Scheduler {
	return &Scheduler{
		users:      users,
		watchlists: watchlists,
		policy:     policy,
		dispatcher: dispatcher,
		metrics:    metrics,
		interval:   interval,
		cron:       gocron.NewScheduler(time.UTC),
	}
}

// Start registers the periodic scan and starts the ticker in the background.
func (s *Scheduler) Start() error {
	_, err := s.cron.Every(s.interval).SingletonMode().Do(func() {
		if err := s.RunCycle(context.Background()); err != nil {
			logger.Get().Errorw("alert scan cycle failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register alert scan job: %w", err)
	}
	s.cron.StartAsync()
	logger.Get().Infow("alert scheduler started", "interval", s.interval.String())
	return nil
}

// Stop stops the ticker. A cycle already in flight runs to completion; there
// is no mid-cycle abort.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Get().Info("alert scheduler stopped")
}

// RunCycle executes one full scan. If a cycle is already in flight the call
// is dropped, not queued: the single-flight guard keeps cycles from
// overlapping even if the ticker fires early.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		logger.Get().Warn("alert scan already in progress, skipping tick")
		return nil
	}
	defer s.running.Store(false)

	start := time.Now()

	userIDs, err := s.users.AllUserIDs()
	if err != nil {
		// Without the user enumeration there is nothing to scan; abandon
		// the cycle and let the next tick retry.
		return fmt.Errorf("enumerate users: %w", err)
	}

	seen := make(map[string]bool)
	for _, userID := range userIDs {
		watchlists, err := s.watchlists.GetUserWatchlists(userID)
		if err != nil {
			logger.Get().Warnw("skipping user in scan cycle",
				"user_id", userID,
				"error", err,
			)
			continue
		}

		for _, wl := range watchlists {
			for _, row := range wl.Symbols {
				if seen[row.Symbol] {
					continue
				}
				seen[row.Symbol] = true
				s.scanSymbol(ctx, row.Symbol)
			}
		}
	}

	if s.metrics != nil {
		s.metrics.RecordCycle(time.Since(start).Seconds())
	}
	logger.Get().Infow("alert scan cycle completed",
		"users", len(userIDs),
		"symbols", len(seen),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// scanSymbol evaluates one symbol and fans out on a worthy verdict. All
// failures stay contained to this symbol.
func (s *Scheduler) scanSymbol(ctx context.Context, symbol string) {
	if s.metrics != nil {
		s.metrics.RecordSymbolScanned()
	}

	verdict, err := s.policy.Evaluate(ctx, symbol)
	if err != nil {
		logger.Get().Warnw("skipping symbol in scan cycle",
			"symbol", symbol,
			"error", err,
		)
		return
	}
	if !verdict.Worthy {
		return
	}

	s.dispatcher.FanOut(ctx, symbol, verdict.Message)
}
