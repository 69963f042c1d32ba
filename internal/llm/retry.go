package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// CallError is the terminal error for a target after the retry policy gave
// up on its LLM call.
type CallError struct {
	Attempts int
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("llm call failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// RetryPolicy retries transient call failures a bounded number of times.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int

	// Backoff returns the delay before retry number attempt (0-based).
	Backoff func(attempt int) time.Duration
}

// DefaultRetryPolicy retries with exponential backoff from 1s, capped at 30s.
func DefaultRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     ExponentialBackoff(time.Second, 30*time.Second),
	}
}

// ExponentialBackoff doubles the delay per attempt, starting at base and
// never exceeding max.
func ExponentialBackoff(base, max time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base << uint(attempt)
		if d <= 0 || d > max {
			return max
		}
		return d
	}
}

// Do invokes client.Rewrite under the policy. Transient failures (rate
// limits, 5xx, network errors) are retried; anything else fails at once.
// The returned error is always a *CallError on failure.
func (p RetryPolicy) Do(ctx context.Context, client Client, prompt string) (string, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(0)
			if p.Backoff != nil {
				delay = p.Backoff(attempt - 1)
			}
			select {
			case <-ctx.Done():
				return "", &CallError{Attempts: attempt, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		out, err := client.Rewrite(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !Transient(err) {
			return "", &CallError{Attempts: attempt + 1, Err: err}
		}
	}
	return "", &CallError{Attempts: attempts, Err: lastErr}
}

// Transient reports whether err is worth retrying: HTTP 429 or 5xx from the
// API, or a network-level failure. Context cancellation is never retried.
func Transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
