package ratelimit

import (
	"context"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
)

// Janitor periodically sweeps a [MemoryStore] so that identifiers which
// stopped sending requests do not stay in memory forever. It implements
// workers.Worker.
type Janitor struct {
	store    *MemoryStore
	interval time.Duration
	window   time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewJanitor returns a janitor sweeping store every interval, dropping
// timestamps older than window or the longest window the store has served,
// whichever is wider. A non-positive interval defaults to window.
func NewJanitor(store *MemoryStore, interval, window time.Duration, logger *logger.Logger) *Janitor {
	if window <= 0 {
		window = DefaultWindow
	}
	if interval <= 0 {
		interval = window
	}
	return &Janitor{
		store:    store,
		interval: interval,
		window:   window,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps on every tick until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug().Msg("rate limit janitor stopped")
			return
		case <-ticker.C:
			removed := j.store.Sweep(j.now(), j.window)
			if removed > 0 {
				j.logger.Debug().Int("removed", removed).Int("tracked", j.store.Len()).Msg("rate limit janitor swept idle identifiers")
			}
		}
	}
}
