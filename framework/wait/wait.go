// Package wait polls a condition until it holds or a timeout elapses.
//
// The condition is always evaluated at least once, even for a zero timeout,
// and polling stops on the first true result. An error returned by the
// condition ends the wait with that error; conditions that want to tolerate
// lookup failures must absorb them and return false instead.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	kwait "k8s.io/apimachinery/pkg/util/wait"
)

// DefaultInterval is the polling cadence when no interval option is given
const DefaultInterval = 100 * time.Millisecond

// ErrTimeout matches every *TimeoutError through errors.Is
var ErrTimeout = errors.New("wait timed out")

// Condition reports whether the awaited state has been reached
type Condition func(ctx context.Context) (bool, error)

// TimeoutError is returned when a condition never held within its timeout
type TimeoutError struct {
	Message string
	Timeout time.Duration
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s\nWait timed out after %dms", e.Message, e.Timeout.Milliseconds())
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

type options struct {
	interval time.Duration
}

// Option customises a single wait
type Option func(*options)

// WithInterval sets the polling interval; non-positive values keep the default
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Until evaluates cond until it returns true, returns an error, or timeout elapses.
// On expiry it returns a *TimeoutError carrying message. Cancelling ctx ends the
// wait with the context error.
func Until(ctx context.Context, cond Condition, message string, timeout time.Duration, opts ...Option) error {
	o := options{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if timeout < 0 {
		timeout = 0
	}

	// A condition error may itself wrap context.DeadlineExceeded, so it is
	// returned as is rather than classified by the poller's result.
	var condErr error
	poll := func(ctx context.Context) (bool, error) {
		done, err := cond(ctx)
		if err != nil {
			condErr = err
		}
		return done, err
	}

	start := time.Now()
	err := kwait.PollUntilContextTimeout(ctx, o.interval, timeout, true, poll)
	if err == nil {
		return nil
	}

	if condErr != nil {
		return condErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", message, ctxErr)
	}
	if kwait.Interrupted(err) {
		return &TimeoutError{
			Message: message,
			Timeout: timeout,
			Elapsed: time.Since(start),
		}
	}
	return err
}

// UntilValue polls fn until it reports ok and returns the value it produced
func UntilValue[T any](ctx context.Context, fn func(ctx context.Context) (T, bool, error), message string, timeout time.Duration, opts ...Option) (T, error) {
	var result T
	err := Until(ctx, func(ctx context.Context) (bool, error) {
		v, ok, err := fn(ctx)
		if err != nil || !ok {
			return false, err
		}
		result = v
		return true, nil
	}, message, timeout, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// IsTimeout reports whether err came from an expired wait
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
