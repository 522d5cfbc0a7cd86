// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs
// several workers side by side for the lifetime of a context.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done. The rate limiter's janitor is the typical
// implementation:
//
//	janitor := ratelimit.NewJanitor(store, time.Minute, time.Minute, log)
//	go janitor.Run(ctx)
type Worker interface {
	Run(ctx context.Context)
}
