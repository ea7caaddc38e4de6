package a11y

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
)

// Page is what an auditor needs from the browser
type Page interface {
	CurrentURL() (string, error)
	PageSource() (string, error)
	ExecuteScript(script string, args []interface{}) (interface{}, error)
	ExecuteScriptAsync(script string, args []interface{}) (interface{}, error)
}

// Target is a page whose session can carry results to artifact capture
type Target interface {
	Page
	AttachA11yResults(results interface{})
}

// Auditor produces results for the current page
type Auditor interface {
	Audit(ctx context.Context, page Page, cfg RuleConfig) (*Results, error)
}

type options struct {
	auditor Auditor
	rules   RuleConfig
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures Check
type Option func(*options)

// WithAuditor replaces the static auditor
func WithAuditor(a Auditor) Option {
	return func(o *options) {
		o.auditor = a
	}
}

// WithRules sets the rule configuration
func WithRules(cfg RuleConfig) Option {
	return func(o *options) {
		o.rules = cfg
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// FromConfig builds options from the resolved configuration: the rule file
// and, when an axe-core source is configured, the axe auditor.
func FromConfig(cfg config.A11yConfig) ([]Option, error) {
	rules, err := LoadRuleConfig(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithRules(rules)}
	if cfg.AxeSource != "" {
		axe, err := NewAxeAuditor(cfg.AxeSource)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAuditor(axe))
	}
	return opts, nil
}

// Check audits the page. When there are violations the results are attached
// to target for artifact capture and a *ViolationError is returned.
func Check(ctx context.Context, target Target, opts ...Option) (*Results, error) {
	o := options{
		auditor: StaticAuditor{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	results, err := o.auditor.Audit(ctx, target, o.rules)
	if err != nil {
		return nil, err
	}
	if results.Timestamp.IsZero() {
		results.Timestamp = o.now().UTC()
	}

	if !results.HasViolations() {
		return results, nil
	}

	o.logger.Info("a11y violations found",
		zap.String("url", results.URL),
		zap.Int("violations", len(results.Violations)))
	target.AttachA11yResults(results)
	return results, &ViolationError{Results: results}
}
