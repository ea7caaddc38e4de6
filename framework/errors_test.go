package framework

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redhat/browser-e2e-tests/test/framework/a11y"
	"github.com/redhat/browser-e2e-tests/test/framework/page"
	"github.com/redhat/browser-e2e-tests/test/framework/wait"
)

func TestConfigurationError(t *testing.T) {
	cfgErr := NewConfigurationError("teardown", ErrNoSession)

	expected := "configuration error in teardown hook: spec has no browser session"
	if cfgErr.Error() != expected {
		t.Errorf("expected %q, got %q", expected, cfgErr.Error())
	}

	if !errors.Is(cfgErr, ErrNoSession) {
		t.Error("expected ConfigurationError to wrap ErrNoSession")
	}

	wrapped := fmt.Errorf("after each: %w", cfgErr)
	if !IsConfiguration(wrapped) {
		t.Error("wrapped ConfigurationError should be detected")
	}
	if IsConfiguration(ErrNoSession) {
		t.Error("bare sentinel is not a ConfigurationError")
	}
}

func TestPrerequisiteError(t *testing.T) {
	baseErr := errors.New("connection refused")
	preErr := NewPrerequisiteError("grid", baseErr)

	expected := "prerequisite check failed for grid: connection refused"
	if preErr.Error() != expected {
		t.Errorf("expected %q, got %q", expected, preErr.Error())
	}

	if !errors.Is(preErr, baseErr) {
		t.Error("expected PrerequisiteError to wrap base error")
	}
}

func TestCleanupError(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")
	cleanupErr := NewCleanupError("session quit", err1, err2)

	if cleanupErr.Phase != "session quit" {
		t.Errorf("expected phase 'session quit', got %q", cleanupErr.Phase)
	}

	if !errors.Is(cleanupErr, err1) || !errors.Is(cleanupErr, err2) {
		t.Error("expected CleanupError to wrap both errors")
	}
}

func TestIsNotFound(t *testing.T) {
	if IsNotFound(errors.New("random error")) {
		t.Error("random error should not be NotFound")
	}

	nf := &page.ElementNotFoundError{Locator: page.CSS(".x")}
	if !IsNotFound(fmt.Errorf("lookup: %w", nf)) {
		t.Error("ElementNotFoundError should be NotFound")
	}
}

func TestIsTimeout(t *testing.T) {
	if IsTimeout(errors.New("random error")) {
		t.Error("random error should not be Timeout")
	}

	timeoutErr := &wait.TimeoutError{Message: "Wait for banner being visible failed", Timeout: time.Second}
	if !IsTimeout(timeoutErr) {
		t.Error("TimeoutError should be Timeout")
	}
}

func TestIsA11yViolation(t *testing.T) {
	if IsA11yViolation(errors.New("random error")) {
		t.Error("random error should not be a violation")
	}

	violation := &a11y.ViolationError{Results: &a11y.Results{}}
	if !IsA11yViolation(violation) {
		t.Error("ViolationError should be a violation")
	}
}

func TestSentinelErrors(t *testing.T) {
	errs := []error{
		ErrNoSession,
		ErrAlreadyStarted,
		ErrGridNotReady,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors %v and %v should be distinct", err1, err2)
			}
		}
	}
}
