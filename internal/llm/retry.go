package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryClass buckets a failure by how the retry loop should react.
type retryClass int

const (
	// retryNever: the error will not improve on its own (context
	// cancellation, token budget exhausted).
	retryNever retryClass = iota
	// retryOnceOnly: worth exactly one more attempt. Malformed model
	// output usually clears on a regenerate but a second failure means
	// the prompt or schema is at fault.
	retryOnceOnly
	// retryTransient: standard backoff applies.
	retryTransient
)

func classifyFailure(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return retryNever
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnceOnly
	}
	// Rate limits, provider outages and plain network errors all fall
	// through to the transient bucket.
	return retryTransient
}

// retryingProvider decorates a Provider with bounded retries.
type retryingProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried with
// exponential backoff and jitter, honoring RetryAfter hints from rate
// limit responses.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryingProvider{inner: p, cfg: cfg}
}

func (r *retryingProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	regenerated := false

	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classifyFailure(err) {
		case retryNever:
			return nil, err
		case retryOnceOnly:
			if regenerated {
				return nil, err
			}
			regenerated = true
		}

		if attempt >= r.cfg.MaxAttempts-1 {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delay(attempt, err)):
		}
	}
}

// delay picks the wait before the next attempt. A RetryAfter hint wins
// over the computed backoff.
func (r *retryingProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))

	// Spread retries out with up to 20% jitter either way.
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}
