package main

import (
	"context"
	"time"

	"github.com/fwojciec/lawdoc"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for rate-limited asks: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// AskWithRetry asks a question with backoff retries on rate limiting. Only
// ERATELIMIT errors are retried; the orchestrator itself never retries, so
// backoff policy lives here at the caller.
func AskWithRetry(ctx context.Context, asker lawdoc.Asker, question string, logger LogFunc) (*lawdoc.StructuredAnswer, error) {
	return AskWithRetryDelays(ctx, asker, question, logger, DefaultRetryDelays())
}

// AskWithRetryDelays is like AskWithRetry but allows configurable delays.
// This is useful for testing without waiting for real delays.
func AskWithRetryDelays(ctx context.Context, asker lawdoc.Asker, question string, logger LogFunc, delays []time.Duration) (*lawdoc.StructuredAnswer, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := asker.Ask(ctx, question)
		if err == nil {
			return answer, nil
		}
		lastErr = err

		if lawdoc.ErrorCode(err) != lawdoc.ERATELIMIT {
			return nil, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  rate limited, retrying (attempt %d)", attempt+2)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
