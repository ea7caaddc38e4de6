package framework

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/concurrent"
	"github.com/redhat/browser-e2e-tests/test/framework/driver"
)

// TrackSession registers a session so Cleanup can quit it if the spec that
// owned it never reached teardown. Sessions already quit are forgotten.
func (f *Framework) TrackSession(s *driver.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	open := f.sessions[:0]
	for _, tracked := range f.sessions {
		if !tracked.Closed() {
			open = append(open, tracked)
		}
	}
	for i := len(open); i < len(f.sessions); i++ {
		f.sessions[i] = nil
	}
	f.sessions = append(open, s)
}

// TrackedSessions returns a copy of the tracked sessions
func (f *Framework) TrackedSessions() []*driver.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*driver.Session, len(f.sessions))
	copy(result, f.sessions)
	return result
}

// Cleanup quits every tracked session still open, in parallel, and forgets
// all tracked sessions
func (f *Framework) Cleanup() error {
	f.mu.Lock()
	sessions := f.sessions
	f.sessions = nil
	f.mu.Unlock()

	var open []*driver.Session
	for _, s := range sessions {
		if !s.Closed() {
			open = append(open, s)
		}
	}
	if len(open) == 0 {
		return nil
	}

	f.logger.Info("quitting leftover browser sessions", zap.Int("count", len(open)))
	err := concurrent.ForEachWithContext(context.Background(), open, func(_ context.Context, s *driver.Session) error {
		if err := s.Quit(); err != nil {
			return fmt.Errorf("quit %s session: %w", s.Target().Mode, err)
		}
		return nil
	})
	if err != nil {
		return NewCleanupError("session quit", err)
	}
	return nil
}
