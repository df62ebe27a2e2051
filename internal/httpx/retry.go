package httpx

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy bounds the retry schedule for rate-limited upstream calls
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy makes up to 5 attempts, waiting 1s, 2s, 4s, 8s between them
var DefaultPolicy = Policy{MaxAttempts: 5, BaseDelay: time.Second}

// NoRetry makes exactly one attempt
var NoRetry = Policy{MaxAttempts: 1, BaseDelay: time.Millisecond}

func (p Policy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
}

// Retryable marks err so that Do schedules another attempt
func Retryable(err error) error {
	return retry.RetryableError(err)
}

// Do runs fn until it succeeds, returns an error not marked Retryable, or the
// policy runs out of attempts. The last error is returned unwrapped.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, p.backoff(), fn)
}
