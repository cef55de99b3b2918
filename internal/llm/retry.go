package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

type retrying struct {
	Provider
	cfg RetryConfig
	log *zap.Logger

	// sleep waits d or until ctx is done. Tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p so transient failures are retried with exponential
// backoff and ±20% jitter. Rate limits honour RetryAfter. Invalid output
// is retried once; truncation, rejection and context errors are not.
func WithRetry(p Provider, cfg RetryConfig, log *zap.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &retrying{Provider: p, cfg: cfg, log: log, sleep: sleepCtx}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		if !retryable(err) {
			return nil, err
		}
		if IsKind(err, KindInvalidOutput) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		wait := r.delay(attempt, err)
		r.log.Info("retrying llm request",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Kind != KindTruncated && e.Kind != KindRejected
}

// delay returns the wait before the attempt after the given one (1-based).
func (r *retrying) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	wait := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		wait *= r.cfg.Multiplier
	}
	if limit := float64(r.cfg.MaxWait); limit > 0 && wait > limit {
		wait = limit
	}
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
