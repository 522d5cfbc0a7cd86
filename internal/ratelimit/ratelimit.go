// Package ratelimit implements a per-identifier sliding-window request
// limiter.
//
// For every identifier the limiter keeps the timestamps of the requests it
// admitted. On each check, timestamps at or before now-window are dropped;
// if the remaining count has reached the limit the request is rejected and
// nothing is recorded, otherwise now is recorded and the request proceeds.
//
// Where the timestamps live is a [Store] decision: [MemoryStore] serves a
// single process, [RedisStore] shares the window between instances.
package ratelimit

import (
	"context"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
)

const (
	DefaultMaxRequests = 100
	DefaultWindow      = time.Minute
)

// Store records request timestamps per identifier. Hit must prune, count
// and conditionally record atomically with respect to other Hit calls for
// the same key.
type Store interface {
	// Hit prunes timestamps of key at or before now-window, then records now
	// if fewer than limit remain. It reports whether now was recorded and
	// the number of timestamps in the window afterwards.
	Hit(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int, err error)
}

// Limiter applies a sliding-window policy on top of a [Store].
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

// NewLimiter builds a limiter allowing maxRequests per window. Non-positive
// values fall back to [DefaultMaxRequests] and [DefaultWindow].
func NewLimiter(store Store, maxRequests int, window time.Duration, logger *logger.Logger) *Limiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		logger:      logger,
	}
}

// Check applies the limiter's default policy to identifier.
func (l *Limiter) Check(ctx context.Context, identifier string) error {
	return l.Allow(ctx, identifier, l.maxRequests, l.window)
}

// Allow applies an explicit policy to identifier. It returns the
// RATE_LIMIT_ERROR API error when the identifier is over its quota.
//
// A store failure is logged and the request is let through: losing the
// limiter must not take the API down with it.
func (l *Limiter) Allow(ctx context.Context, identifier string, maxRequests int, window time.Duration) error {
	allowed, count, err := l.store.Hit(ctx, identifier, l.now(), window, maxRequests)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*Limiter.Allow").
			Str("identifier", identifier).
			Msg("rate limit store failed, request admitted")
		return nil
	}

	if !allowed {
		logger.FromContext(ctx).Warn().
			Str("identifier", identifier).
			Int("count", count).
			Int("max_requests", maxRequests).
			Dur("window", window).
			Msg("rate limit exceeded")
		return apierr.RateLimit()
	}

	return nil
}

// Window returns the default window of the limiter.
func (l *Limiter) Window() time.Duration {
	return l.window
}
