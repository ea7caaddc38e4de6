// Package a11y audits the current page for accessibility violations.
//
// Results use the axe-core JSON layout so reports from the built-in static
// auditor and from an injected axe-core build look the same on disk.
package a11y

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrViolations matches any *ViolationError
var ErrViolations = errors.New("a11y violations")

// Engine identifies the auditor that produced results
type Engine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Node is one offending element
type Node struct {
	HTML           string   `json:"html"`
	Target         []string `json:"target"`
	Impact         string   `json:"impact,omitempty"`
	FailureSummary string   `json:"failureSummary,omitempty"`
}

// Violation is one failed rule and the elements that failed it
type Violation struct {
	ID          string   `json:"id"`
	Impact      string   `json:"impact,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description"`
	Help        string   `json:"help,omitempty"`
	HelpURL     string   `json:"helpUrl,omitempty"`
	Nodes       []Node   `json:"nodes"`
}

// Results is the outcome of one audit
type Results struct {
	URL        string      `json:"url"`
	Timestamp  time.Time   `json:"timestamp"`
	TestEngine Engine      `json:"testEngine"`
	Violations []Violation `json:"violations"`
	Passes     []Violation `json:"passes,omitempty"`
	Incomplete []Violation `json:"incomplete,omitempty"`
}

// HasViolations reports whether any rule failed
func (r *Results) HasViolations() bool {
	return r != nil && len(r.Violations) > 0
}

// ViolationError fails a spec whose page has violations
type ViolationError struct {
	Results *Results
}

func (e *ViolationError) Error() string {
	var b strings.Builder
	b.WriteString("A11Y Failures:")
	for _, v := range e.Results.Violations {
		fmt.Fprintf(&b, "\n * [%d] %s", len(v.Nodes), v.Description)
	}
	b.WriteString("\n Check output folder/artifacts for more details")
	return b.String()
}

func (e *ViolationError) Is(target error) bool {
	return target == ErrViolations
}
