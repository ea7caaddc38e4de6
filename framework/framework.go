package framework

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/a11y"
	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/driver"
	"github.com/redhat/browser-e2e-tests/test/framework/logging"
	"github.com/redhat/browser-e2e-tests/test/framework/registration"
	"github.com/redhat/browser-e2e-tests/test/framework/report"
)

// ReportDir is where the run report is written, relative to the output dir
const ReportDir = "report"

// Framework ties configuration, logging, session creation and reporting
// together for a suite
type Framework struct {
	config     *config.Config
	logger     *zap.Logger
	ownedLog   *logging.Logger
	factory    SessionFactory
	httpClient *http.Client
	recorder   *report.Recorder
	now        func() time.Time
	a11yOpts   []a11y.Option

	// Session tracking
	mu       sync.Mutex
	sessions []*driver.Session
}

// Option is a function that configures the Framework
type Option func(*Framework)

// WithLogger sets a custom logger for the framework
func WithLogger(logger *zap.Logger) Option {
	return func(f *Framework) {
		f.logger = logger
	}
}

// WithConfig sets a custom configuration for the framework
func WithConfig(cfg *config.Config) Option {
	return func(f *Framework) {
		f.config = cfg
	}
}

// WithSessionFactory replaces driver.New as the source of sessions
func WithSessionFactory(factory SessionFactory) Option {
	return func(f *Framework) {
		f.factory = factory
	}
}

// WithHTTPClient sets the client used to probe the grid
func WithHTTPClient(c *http.Client) Option {
	return func(f *Framework) {
		f.httpClient = c
	}
}

// WithClock sets the time source for artifact paths and the report
func WithClock(now func() time.Time) Option {
	return func(f *Framework) {
		f.now = now
	}
}

// New creates a Framework from the environment unless options say otherwise
func New(opts ...Option) (*Framework, error) {
	f := &Framework{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.config == nil {
		f.config = config.FromEnv()
	}
	if f.logger == nil {
		f.ownedLog = logging.New(f.config.Log, ginkgo.GinkgoWriter)
		f.logger = f.ownedLog.Logger
	}
	if f.factory == nil {
		cfg, logger := f.config, f.logger
		f.factory = func(ctx context.Context) (*driver.Session, error) {
			return driver.New(ctx, cfg, driver.WithLogger(logger))
		}
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: f.config.NetworkTimeoutDuration()}
	}

	if err := f.config.Validate(); err != nil {
		return nil, NewConfigurationError("setup", err)
	}

	a11yOpts, err := a11y.FromConfig(f.config.A11y)
	if err != nil {
		return nil, NewConfigurationError("setup", err)
	}
	f.a11yOpts = append(a11yOpts, a11y.WithLogger(f.logger))

	f.recorder = report.NewRecorder()
	return f, nil
}

// MustNew is New for package-level suite variables
func MustNew(opts ...Option) *Framework {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the framework configuration
func (f *Framework) Config() *config.Config {
	return f.config
}

// Logger returns the logger
func (f *Framework) Logger() *zap.Logger {
	return f.logger
}

// RunID identifies this run in the report
func (f *Framework) RunID() string {
	return f.recorder.ID()
}

// Hooks returns lifecycle hooks bound to this framework
func (f *Framework) Hooks() *Hooks {
	return &Hooks{
		Factory:   f.NewSession,
		OutputDir: f.config.OutputDir,
		Logger:    f.logger,
		Recorder:  f.recorder,
		Now:       f.now,
	}
}

// NewSession opens a browser and tracks it for Cleanup
func (f *Framework) NewSession(ctx context.Context) (*driver.Session, error) {
	s, err := f.factory(ctx)
	if err != nil {
		return nil, err
	}
	f.TrackSession(s)
	return s, nil
}

// Registration returns a customer registration client for the configured environment
func (f *Framework) Registration(opts ...registration.Option) (*registration.Client, error) {
	opts = append([]registration.Option{registration.WithLogger(f.logger)}, opts...)
	return registration.New(f.config.Registration, f.config.OutputDir, opts...)
}

// WriteReport exports the run as JSON, CSV and an HTML index under the output dir
func (f *Framework) WriteReport() (string, error) {
	run := f.recorder.Finish()
	dir := filepath.Join(f.config.OutputDir, ReportDir)

	for _, name := range []string{"results.json", "results.csv"} {
		if err := report.NewExporter(filepath.Join(dir, name), "").Export(run); err != nil {
			return "", fmt.Errorf("failed to export %s: %w", name, err)
		}
	}
	index := filepath.Join(dir, "index.html")
	if err := report.WriteHTML(run, index); err != nil {
		return "", err
	}

	s := run.Summary()
	f.logger.Info("run report written",
		zap.String("run_id", run.ID),
		zap.String("path", index),
		zap.Int("passed", s.Passed),
		zap.Int("failed", s.Failed),
		zap.Int("skipped", s.Skipped))
	return index, nil
}

// Close quits leftover sessions, writes the report and closes the run log
func (f *Framework) Close() error {
	var errs []error
	if err := f.Cleanup(); err != nil {
		errs = append(errs, err)
	}
	if _, err := f.WriteReport(); err != nil {
		errs = append(errs, err)
	}
	if f.ownedLog != nil {
		if err := f.ownedLog.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return NewCleanupError("close", errs...)
	}
	return nil
}
