package httputil

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/ihmgraph/pkg/errors"
)

// RetryableError marks a transient failure, such as a timeout or a 5xx
// response, that [Retry] may attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy bounds how often and how long [Retry] waits.
type Policy struct {
	Attempts int           // total calls, at least 1
	Delay    time.Duration // wait after the first failure; doubles each time
	MaxDelay time.Duration // cap on a single wait, including Retry-After; 0 means none
}

// DefaultPolicy makes 3 attempts starting at 1s. NCBI asks clients without
// an API key to stay under 3 requests per second.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 30 * time.Second}

// Retry calls fn until it succeeds, fails with an error that is not a
// [RetryableError], or p.Attempts calls were made. A rate-limited failure
// waits at least as long as the server's Retry-After. It returns the last
// error, or ctx.Err() when ctx is done while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) || i == attempts-1 {
			break
		}

		wait := delay
		if after := retryAfter(err); after > wait {
			wait = after
		}
		if p.MaxDelay > 0 {
			wait = min(wait, p.MaxDelay)
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultPolicy, fn)
}

func isRetryable(err error) bool {
	return stderrors.As(err, new(*RetryableError))
}

func retryAfter(err error) time.Duration {
	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}
