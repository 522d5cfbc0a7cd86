// Package retry re-runs fallible, idempotent operations with exponential
// backoff.
//
// The delay before retry n (0-based) is BaseDelay * 2^n. After the last
// retry fails the final error is returned unchanged, so callers can still
// match it with errors.Is / errors.As. Sleeping honours the context: a
// cancelled context stops the loop and returns ctx.Err().
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// Policy configures [Do]. The zero value retries every error
// [DefaultMaxRetries] times starting at [DefaultBaseDelay].
type Policy struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries uint64

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// Retryable decides whether an error is worth another attempt. A nil
	// Retryable retries every error; errors it rejects are returned at once.
	Retryable func(error) bool

	// OnRetry, if set, is called before each backoff sleep with the
	// 1-based retry number, the delay and the error that caused it.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns the policy used for connection establishment.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries == 0 && p.BaseDelay == 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// Do runs op until it succeeds, the policy gives up or ctx is done.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.withDefaults()

	var (
		result  T
		lastErr error
		retries int
	)

	backoff := goretry.WithMaxRetries(policy.MaxRetries, goretry.NewExponential(policy.BaseDelay))
	if policy.OnRetry != nil {
		inner := backoff
		backoff = goretry.BackoffFunc(func() (time.Duration, bool) {
			delay, stop := inner.Next()
			if !stop {
				retries++
				policy.OnRetry(retries, delay, lastErr)
			}
			return delay, stop
		})
	}

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		value, opErr := op(ctx)
		if opErr == nil {
			result = value
			return nil
		}

		lastErr = opErr
		if policy.Retryable != nil && !policy.Retryable(opErr) {
			return opErr
		}
		return goretry.RetryableError(opErr)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// Run is [Do] for operations that only report an error.
func Run(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
