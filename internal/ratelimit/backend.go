package ratelimit

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
)

var ErrUnknownBackend = errors.New("unknown rate limit backend")

// Backend is a configured [Limiter] together with what keeps its store
// alive: the janitor for the memory store, the client for Redis.
type Backend struct {
	Limiter *Limiter

	// Janitor is nil unless the memory store is used.
	Janitor *Janitor

	redis *redis.Client
}

// NewBackend builds the limiter selected by cfg.Backend. The Redis backend
// is pinged once so that a wrong address fails at startup.
func NewBackend(ctx context.Context, cfg config.RateLimit, logger *logger.Logger) (*Backend, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		store := NewMemoryStore()
		return &Backend{
			Limiter: NewLimiter(store, cfg.MaxRequests, cfg.Window, logger),
			Janitor: NewJanitor(store, cfg.JanitorInterval, cfg.Window, logger),
		}, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("error connecting to rate limit redis at %s: %w", cfg.RedisAddress, err)
		}
		logger.Info().Str("address", cfg.RedisAddress).Msg("rate limiter uses redis")
		return &Backend{
			Limiter: NewLimiter(NewRedisStore(client), cfg.MaxRequests, cfg.Window, logger),
			redis:   client,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Close releases the Redis connection, if any.
func (b *Backend) Close() error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Close()
}
