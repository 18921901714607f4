package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
)

const defaultMatchRefreshInterval = 60 * time.Second

// MatchRefresher periodically reloads today's matches and evicts idle
// lineup sessions.
type MatchRefresher struct {
	svc      *LineupService
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

func NewMatchRefresher(svc *LineupService, interval time.Duration, logger *logging.Logger) *MatchRefresher {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = defaultMatchRefreshInterval
	}
	return &MatchRefresher{
		svc:      svc,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (r *MatchRefresher) Run(ctx context.Context) {
	r.logger.InfoContext(ctx, "match refresher started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("match refresher stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *MatchRefresher) tick(ctx context.Context) {
	// failures are logged by the service and the last schedule is kept
	_, _ = r.svc.RefreshMatches(ctx)

	if evicted := r.svc.EvictIdle(r.now()); evicted > 0 {
		r.logger.InfoContext(ctx, "evicted idle lineup sessions", "count", evicted, "remaining", r.svc.SessionCount())
	}
}
