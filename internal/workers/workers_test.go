// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/ratelimit"
)

// blockingWorker counts its runs and blocks until the context is done.
type blockingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (m *blockingWorker) Run(ctx context.Context) {
	m.started.Add(1)
	<-ctx.Done()
	m.stopped.Add(1)
}

func TestWorkers_Run_AllWorkersRunConcurrently(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1 && w3.started.Load() == 1
	}, time.Second, 5*time.Millisecond, "a blocking worker must not hold up the others")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	for i, w := range []*blockingWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.stopped.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should return immediately with nothing to run
	ws.Run(context.Background())
	assert.Equal(t, 0, ws.Len())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestNewWorkers_SkipsNil(t *testing.T) {
	ws := NewWorkers(nil, &blockingWorker{})

	assert.Equal(t, 1, ws.Len())
}

func TestWorkers_RunsRateLimitJanitor(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	_, _, err := store.Hit(context.Background(), "idle", time.Now().Add(-time.Hour), time.Minute, 10)
	assert.NoError(t, err)
	ws := NewWorkers(ratelimit.NewJanitor(store, 10*time.Millisecond, time.Minute, logger.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ws.Run(ctx)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}
