package workers

import (
	"context"
	"sync"
)

type Workers struct {
	workers []Worker
}

// NewWorkers skips nil workers, so optional ones can be passed unconditionally.
func NewWorkers(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in its own goroutine and returns once all of
// them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// Len reports the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
