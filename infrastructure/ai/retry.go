package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"screenplay-worker/domain/ports"
)

const (
	defaultMaxRetries = ports.MaxGenerateRetries
	baseRetryDelay    = 3 * time.Second
	maxRetryDelay     = 30 * time.Second
	maxJitter         = time.Second
)

// retryPolicy drives repeated model calls with exponential backoff. The
// sleep and jitter hooks are injectable so tests run without waiting.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	jitter     func() time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxRetries: defaultMaxRetries,
		baseDelay:  baseRetryDelay,
		maxDelay:   maxRetryDelay,
		sleep:      sleepCtx,
		jitter:     func() time.Duration { return time.Duration(rand.Int63n(int64(maxJitter))) },
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff returns the delay before retry attempt a (a >= 1). The cap applies
// to the jittered sum, so capped delays sit at exactly maxDelay.
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.baseDelay*(1<<(attempt-1)) + p.jitter()
	if d > p.maxDelay || d <= 0 {
		d = p.maxDelay
	}
	return d
}

// generateJSON runs a schema-constrained generation call under the retry
// policy and decodes the sanitized output into T. Quota and fatal errors
// abort immediately; transient errors and malformed output are retried up
// to maxRetries times.
func generateJSON[T any](ctx context.Context, p retryPolicy, call func(ctx context.Context) (string, error), onRetry ports.RetryFunc) (*T, error) {
	var (
		lastKind   = kindMalformed
		lastReason = "no response"
	)
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			delay := p.backoff(attempt)
			if onRetry != nil {
				onRetry(attempt, delay, lastReason)
			}
			if err := p.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		text, err := call(ctx)
		if err != nil {
			kind, reason := classify(err)
			switch kind {
			case kindQuota:
				return nil, fmt.Errorf("%w: %s", ports.ErrQuotaExhausted, reason)
			case kindTransient:
				lastKind, lastReason = kindTransient, reason
				continue
			default:
				return nil, err
			}
		}

		cleaned := stripMarkdownFences(text)
		if cleaned == "" {
			lastKind, lastReason = kindMalformed, "model returned empty text"
			continue
		}
		cleaned = sanitizeJSONNumbers(cleaned)

		out := new(T)
		if err := json.Unmarshal([]byte(cleaned), out); err != nil {
			lastKind, lastReason = kindMalformed, fmt.Sprintf("invalid json: %v", err)
			continue
		}
		return out, nil
	}

	if lastKind == kindTransient {
		return nil, fmt.Errorf("the model is currently overloaded, retries exhausted: %s", lastReason)
	}
	return nil, fmt.Errorf("the model returned invalid data or was unreachable after %d retries: %s", p.maxRetries, lastReason)
}
