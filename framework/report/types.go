// Package report records the outcome of every spec in a run and renders it
// as CSV, JSON or an HTML index that links each failure to its artifacts.
package report

import (
	"strings"
	"time"
)

// Spec states
const (
	StatePassed  = "passed"
	StateFailed  = "failed"
	StateSkipped = "skipped"
	StatePending = "pending"
)

// SpecResult is the outcome of one spec
type SpecResult struct {
	Titles    []string      `json:"titles"`
	State     string        `json:"state"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Failure   string        `json:"failure,omitempty"`
	Artifacts string        `json:"artifacts,omitempty"`
}

// Name joins the title chain
func (r SpecResult) Name() string {
	return strings.Join(r.Titles, " > ")
}

// Run is every spec result of one suite execution
type Run struct {
	ID         string       `json:"id"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Specs      []SpecResult `json:"specs"`
}

// Summary counts specs per state
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Summary counts the run's specs per state
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.Specs)}
	for _, spec := range r.Specs {
		switch spec.State {
		case StatePassed:
			s.Passed++
		case StateFailed:
			s.Failed++
		default:
			s.Skipped++
		}
	}
	return s
}

// Duration is the wall time of the run
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
