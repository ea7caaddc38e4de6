package framework

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/artifacts"
	"github.com/redhat/browser-e2e-tests/test/framework/report"
)

// Hooks drives one spec through its lifecycle:
//
//	pending --Start--> running --Finish--> passed | failed | skipped
//
// Teardown quits the Session and may run from any state after Start.
// Finish always runs before Teardown so failed specs are captured while the
// browser is still alive.
type Hooks struct {
	Factory   SessionFactory
	OutputDir string
	Logger    *zap.Logger
	Recorder  *report.Recorder
	Now       func() time.Time
}

func (h *Hooks) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Hooks) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// Start opens a Session for tc
func (h *Hooks) Start(ctx context.Context, tc *TestContext) error {
	if tc.State != "" && tc.State != StatePending {
		return fmt.Errorf("%w: state %s", ErrAlreadyStarted, tc.State)
	}
	if h.Factory == nil {
		return NewConfigurationError("start", fmt.Errorf("no session factory"))
	}

	session, err := h.Factory(ctx)
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	tc.Session = session
	tc.State = StateRunning
	tc.StartedAt = h.now()
	return nil
}

// Finish records the outcome of tc. A failed spec gets its artifacts
// captured; a passed one only drains the driver log. Capture errors are
// returned but do not change the spec's state.
func (h *Hooks) Finish(tc *TestContext, state State, failure string) error {
	tc.State = state
	tc.Failure = failure
	defer h.record(tc)

	if tc.Session == nil {
		return NewConfigurationError("finish", ErrNoSession)
	}

	switch state {
	case StatePassed:
		return artifacts.Drain(tc.Session)
	case StateFailed:
		base := artifacts.OutputPath(h.OutputDir, tc.Titles, h.now())
		tc.Artifacts = base
		written, err := artifacts.Capture(tc.Session, base)
		h.logger().Info("captured failure artifacts",
			zap.String("spec", report.SpecResult{Titles: tc.Titles}.Name()),
			zap.String("path", base),
			zap.Int("files", len(written)))
		if err != nil {
			return fmt.Errorf("failed to capture artifacts: %w", err)
		}
	}
	return nil
}

// Teardown quits the Session of tc
func (h *Hooks) Teardown(tc *TestContext) error {
	if tc.Session == nil {
		return NewConfigurationError("teardown", ErrNoSession)
	}
	if err := tc.Session.Quit(); err != nil {
		return fmt.Errorf("failed to quit browser session: %w", err)
	}
	return nil
}

func (h *Hooks) record(tc *TestContext) {
	if h.Recorder == nil {
		return
	}
	var d time.Duration
	if !tc.StartedAt.IsZero() {
		d = h.now().Sub(tc.StartedAt)
	}
	h.Recorder.Add(report.SpecResult{
		Titles:    tc.Titles,
		State:     string(tc.State),
		StartedAt: tc.StartedAt,
		Duration:  d,
		Failure:   tc.Failure,
		Artifacts: tc.Artifacts,
	})
}
