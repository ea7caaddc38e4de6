package framework

import (
	"context"
	"time"

	"github.com/redhat/browser-e2e-tests/test/framework/driver"
)

// State is where a spec is in its lifecycle
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StatePassed  State = "passed"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// TestContext is what the lifecycle hooks know about the running spec
type TestContext struct {
	// Titles is the container chain, outermost first, ending with the spec text
	Titles []string
	State  State

	// Session is the browser the spec runs in. In shared mode every spec of
	// the container points at the same Session.
	Session *driver.Session

	StartedAt time.Time
	Failure   string

	// Artifacts is the path stem capture wrote to, empty unless the spec failed
	Artifacts string
}

// SessionFactory opens a browser session
type SessionFactory func(ctx context.Context) (*driver.Session, error)
