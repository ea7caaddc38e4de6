package framework

import (
	"errors"
	"fmt"

	"github.com/redhat/browser-e2e-tests/test/framework/a11y"
	"github.com/redhat/browser-e2e-tests/test/framework/page"
	"github.com/redhat/browser-e2e-tests/test/framework/wait"
)

// Sentinel errors for framework operations
var (
	// ErrNoSession indicates a hook ran for a spec without a browser session
	ErrNoSession = errors.New("spec has no browser session")

	// ErrAlreadyStarted indicates Start was called twice for one context
	ErrAlreadyStarted = errors.New("spec already started")

	// ErrGridNotReady indicates the Selenium grid reported it cannot take sessions
	ErrGridNotReady = errors.New("selenium grid not ready")
)

// ConfigurationError is a broken suite setup. It is fatal for the run.
type ConfigurationError struct {
	Hook string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s hook: %v", e.Hook, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(hook string, err error) *ConfigurationError {
	return &ConfigurationError{
		Hook: hook,
		Err:  err,
	}
}

// PrerequisiteError represents an error when checking prerequisites
type PrerequisiteError struct {
	Component string
	Err       error
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("prerequisite check failed for %s: %v", e.Component, e.Err)
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

// NewPrerequisiteError creates a new PrerequisiteError
func NewPrerequisiteError(component string, err error) *PrerequisiteError {
	return &PrerequisiteError{
		Component: component,
		Err:       err,
	}
}

// CleanupError represents errors during cleanup operations
type CleanupError struct {
	Phase string
	Errs  []error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed during %s phase: %v", e.Phase, errors.Join(e.Errs...))
}

func (e *CleanupError) Unwrap() error {
	return errors.Join(e.Errs...)
}

// NewCleanupError creates a new CleanupError
func NewCleanupError(phase string, errs ...error) *CleanupError {
	return &CleanupError{
		Phase: phase,
		Errs:  errs,
	}
}

// IsConfiguration returns true if the error is a broken suite setup
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsTimeout returns true if the error is a wait that ran out of time
func IsTimeout(err error) bool {
	return wait.IsTimeout(err)
}

// IsNotFound returns true if the error indicates an element was not found
func IsNotFound(err error) bool {
	return errors.Is(err, page.ErrElementNotFound)
}

// IsA11yViolation returns true if the error is a failed accessibility audit
func IsA11yViolation(err error) bool {
	return errors.Is(err, a11y.ErrViolations)
}
