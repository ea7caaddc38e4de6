// Package softfail turns known flaky failures into skipped specs instead of
// failed ones.
package softfail

import (
	"errors"
	"fmt"
)

// Reason is passed to the skip function
const Reason = "Soft failure of payment"

var (
	// ErrPayment marks errors raised by a payment provider
	ErrPayment = errors.New("payment error")

	// ErrNoSkip is returned when Guard has no way to skip the spec
	ErrNoSkip = errors.New("spec context has no skip function; pass ginkgo.Skip")
)

// SkipFunc skips the running spec. ginkgo.Skip does not return.
type SkipFunc func(message string, callerSkip ...int)

// Payment wraps err so it matches ErrPayment
func Payment(err error) error {
	return fmt.Errorf("%w: %w", ErrPayment, err)
}

// Guard runs fn. A payment error, or any error when running against
// production, skips the spec and reports false. Other errors are returned.
func Guard(skip SkipFunc, isProd bool, fn func() error) (bool, error) {
	if skip == nil {
		return false, ErrNoSkip
	}

	err := fn()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrPayment) || isProd {
		skip(Reason)
		return false, nil
	}
	return false, err
}
