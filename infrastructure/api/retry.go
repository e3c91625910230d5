package api

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy bounds the submit retry loop. The delay and classifier
// functions are injected so tests can run without real waiting.
type RetryPolicy struct {
	// MaxAttempts is the total attempt ceiling, first try included.
	MaxAttempts int
	// BaseDelay is the exponential backoff base between attempts.
	BaseDelay time.Duration
	// MaxJitter is the upper bound of the random delay added per backoff.
	MaxJitter time.Duration
	// Sleep suspends between attempts. It must honor ctx cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
	// RetryableStatus classifies an HTTP status as worth re-attempting.
	RetryableStatus func(code int) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		BaseDelay:       time.Second,
		MaxJitter:       500 * time.Millisecond,
		Sleep:           sleepContext,
		RetryableStatus: retryableStatus,
	}
}

// Backoff computes the delay before the given retry (attempt is 1-based):
// base doubled per attempt, plus random jitter.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := p.BaseDelay << (attempt - 1)
	if p.MaxJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.MaxJitter)))
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
