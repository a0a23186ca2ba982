package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // Exponential backoff
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so WithRetry returns it immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// WithRetry calls fn until it succeeds, returns a Permanent error, the
// attempts run out, or ctx is done. MaxAttempts <= 1 means a single call.
func WithRetry(ctx context.Context, config RetryConfig, fn func(ctx context.Context) error) error {
	if config.MaxAttempts <= 1 {
		return unwrapPermanent(fn(ctx))
	}

	delay := config.Delay
	if delay <= 0 {
		delay = time.Second
	}

	var b goretry.Backoff = goretry.NewConstant(delay)
	if config.Backoff {
		b = goretry.NewExponential(delay)
	}
	b = goretry.WithMaxRetries(uint64(config.MaxAttempts-1), b)

	err := goretry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return err
		}
		return goretry.RetryableError(err)
	})
	return unwrapPermanent(err)
}

func unwrapPermanent(err error) error {
	var p *permanentError
	if errors.As(err, &p) {
		return p.err
	}
	return err
}
