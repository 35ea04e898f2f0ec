package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries transient failures with exponential backoff and
// ±20% jitter. Rate limits honour the server's RetryAfter hint. An
// invalid response is retried once, truncation and cancellation never.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	wait := r.cfg.InitialWait
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts || !retryable(err, &invalidSeen) {
			return nil, err
		}

		pause := jitter(wait)
		var e *Error
		if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
			pause = e.RetryAfter
		}
		if !sleep(ctx, pause) {
			return nil, ctx.Err()
		}
		wait = time.Duration(float64(wait) * r.cfg.Multiplier)
		if r.cfg.MaxWait > 0 && wait > r.cfg.MaxWait {
			wait = r.cfg.MaxWait
		}
	}
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		// Plain errors are network-level failures from the SDKs.
		return true
	}
	switch kind {
	case KindTruncated:
		return false
	case KindInvalid:
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

func jitter(d time.Duration) time.Duration {
	f := 1 + 0.2*(2*rand.Float64()-1)
	return max(time.Duration(float64(d)*f), 0)
}

// sleep waits for d or until ctx is done, reporting false in the latter case.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

var _ Provider = (*retryProvider)(nil)
