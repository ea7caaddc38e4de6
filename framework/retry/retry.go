package retry

import (
	"context"
	"errors"
	"time"

	kwait "k8s.io/apimachinery/pkg/util/wait"
)

// Policy defaults. Callers talking to fixture services usually lower the
// delay; browser code does not retry at all.
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 1 * time.Second
	DefaultMultiplier   = 2.0
	DefaultJitter       = 0.1
)

// Policy says how often and how patiently an operation is re-run
type Policy struct {
	// MaxAttempts counts the first call
	MaxAttempts int

	InitialDelay time.Duration
	Multiplier   float64

	// Jitter is a fraction of the delay (0.0-1.0)
	Jitter float64

	// RetryIf limits retries to matching errors; nil retries everything
	RetryIf func(error) bool

	// OnRetry runs before each re-run with the attempt that just failed
	OnRetry func(attempt int, err error)
}

// DefaultPolicy returns a Policy with default values
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		Multiplier:   DefaultMultiplier,
		Jitter:       DefaultJitter,
	}
}

// Option adjusts a Policy
type Option func(*Policy)

// WithMaxAttempts sets the maximum number of attempts
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithInitialDelay sets the initial delay
func WithInitialDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.InitialDelay = d
	}
}

// WithMultiplier sets the backoff multiplier
func WithMultiplier(m float64) Option {
	return func(p *Policy) {
		p.Multiplier = m
	}
}

// WithJitter sets the jitter factor
func WithJitter(j float64) Option {
	return func(p *Policy) {
		p.Jitter = j
	}
}

// WithRetryIf sets the retry predicate function
func WithRetryIf(fn func(error) bool) Option {
	return func(p *Policy) {
		p.RetryIf = fn
	}
}

// WithOnRetry sets the retry callback function
func WithOnRetry(fn func(attempt int, err error)) Option {
	return func(p *Policy) {
		p.OnRetry = fn
	}
}

// PermanentError wraps an error to indicate it should not be retried
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps an error to mark it as permanent (non-retryable)
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent returns true if the error is marked as permanent
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// Backoff converts the policy into an apimachinery backoff
func (p *Policy) Backoff() kwait.Backoff {
	steps := p.MaxAttempts
	if steps <= 0 {
		steps = 1
	}
	return kwait.Backoff{
		Duration: p.InitialDelay,
		Factor:   p.Multiplier,
		Jitter:   p.Jitter,
		Steps:    steps,
	}
}

// Do executes fn until it succeeds, returns a permanent error, or the attempts
// are exhausted. The last error from fn is returned.
func Do(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	policy := DefaultPolicy()
	for _, opt := range opts {
		opt(policy)
	}
	backoff := policy.Backoff()

	var lastErr error
	attempt := 0
	err := kwait.ExponentialBackoffWithContext(ctx, backoff, func(ctx context.Context) (bool, error) {
		attempt++
		lastErr = fn(ctx)
		if lastErr == nil {
			return true, nil
		}

		var pe *PermanentError
		if errors.As(lastErr, &pe) {
			return false, pe.Err
		}
		if policy.RetryIf != nil && !policy.RetryIf(lastErr) {
			return false, lastErr
		}

		if attempt < backoff.Steps && policy.OnRetry != nil {
			policy.OnRetry(attempt, lastErr)
		}
		return false, nil
	})

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case kwait.Interrupted(err):
		return lastErr
	default:
		return err
	}
}

// DoWithData executes the function with retries and returns a result
func DoWithData[T any](ctx context.Context, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var result T
	err := Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	}, opts...)
	return result, err
}
