package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

// Session is one live browser. It is owned by a single spec (or a single
// ordered container) and must not be used from two goroutines at once.
type Session struct {
	selenium.WebDriver

	target  Target
	service Stopper
	logger  *zap.Logger

	mu   sync.Mutex
	a11y interface{}
	quit bool
}

// Wrap turns an existing WebDriver into a Session without a local service
func Wrap(wd selenium.WebDriver, target Target) *Session {
	return &Session{WebDriver: wd, target: target, logger: zap.NewNop()}
}

// Target returns how the session was started
func (s *Session) Target() Target {
	return s.target
}

// SaveScreenshot writes the current viewport as PNG to filename, creating parent directories
func (s *Session) SaveScreenshot(filename string) error {
	png, err := s.Screenshot()
	if err != nil {
		return fmt.Errorf("take screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create screenshot directory: %w", err)
	}
	if err := os.WriteFile(filename, png, 0o644); err != nil {
		return fmt.Errorf("write screenshot %s: %w", filename, err)
	}
	return nil
}

// AttachA11yResults keeps audit results for the next artifact capture
func (s *Session) AttachA11yResults(results interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a11y = results
}

// TakeA11yResults returns and clears the attached audit results
func (s *Session) TakeA11yResults() (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.a11y
	s.a11y = nil
	return r, r != nil
}

// Quit ends the browser session and stops a local driver process.
// Calling it again is a no-op.
func (s *Session) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quit {
		return nil
	}
	s.quit = true

	var errs []error
	if err := s.WebDriver.Quit(); err != nil {
		errs = append(errs, fmt.Errorf("quit session: %w", err))
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop chromedriver: %w", err))
		}
	}
	s.logger.Debug("browser session closed")
	return errors.Join(errs...)
}

// Closed reports whether Quit has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}
