package resilience

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound calls. A nil or disabled limiter never
// blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.burst())}
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

func (l *RateLimiter) Enabled() bool {
	return l != nil && l.limiter != nil
}
