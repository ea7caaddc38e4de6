package report

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder collects spec results as they finish
type Recorder struct {
	mu  sync.Mutex
	run Run
	now func() time.Time
}

// NewRecorder starts a run with a fresh id
func NewRecorder() *Recorder {
	return newRecorder(time.Now)
}

func newRecorder(now func() time.Time) *Recorder {
	return &Recorder{
		run: Run{ID: uuid.NewString(), StartedAt: now()},
		now: now,
	}
}

// ID returns the run id
func (r *Recorder) ID() string {
	return r.run.ID
}

// Add records one spec result
func (r *Recorder) Add(result SpecResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.Titles = append([]string(nil), result.Titles...)
	r.run.Specs = append(r.run.Specs, result)
}

// Finish stamps the end of the run and returns a copy of it
func (r *Recorder) Finish() *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.run.FinishedAt = r.now()
	run := r.run
	run.Specs = append([]SpecResult(nil), r.run.Specs...)
	return &run
}
