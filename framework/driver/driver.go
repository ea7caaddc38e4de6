// Package driver creates browser sessions against a Selenium grid or a local
// chromedriver, using the capability profile the configuration selects.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/profile"
)

// Mode says where the browser runs
type Mode string

const (
	// ModeRemote drives a browser on a Selenium grid
	ModeRemote Mode = "remote"

	// ModeLocal drives a browser through a chromedriver started by the framework
	ModeLocal Mode = "local"
)

// Async script timeouts per mode
const (
	RemoteScriptTimeout = 5 * time.Second
	LocalScriptTimeout  = 10 * time.Second
)

// Target is the outcome of the session decision policy
type Target struct {
	Mode          Mode
	URL           string
	Profile       *profile.Profile
	ScriptTimeout time.Duration
}

// Plan picks where and how to start a browser:
// a configured grid wins, then headless local, then headed local.
func Plan(cfg *config.Config) Target {
	if grid := cfg.GridURL(); grid != "" {
		return Target{
			Mode:          ModeRemote,
			URL:           grid,
			Profile:       cfg.Capability(profile.ModeStandard),
			ScriptTimeout: RemoteScriptTimeout,
		}
	}

	mode := profile.ModeStandard
	if cfg.Headless {
		mode = profile.ModeHeadless
	}
	return Target{
		Mode:          ModeLocal,
		URL:           fmt.Sprintf("http://localhost:%d/wd/hub", cfg.ChromeDriverPort),
		Profile:       cfg.Capability(mode),
		ScriptTimeout: LocalScriptTimeout,
	}
}

// Stopper is a running driver process
type Stopper interface {
	Stop() error
}

// RemoteFunc opens a WebDriver session at url
type RemoteFunc func(caps selenium.Capabilities, url string) (selenium.WebDriver, error)

// ServiceFunc starts a local driver process listening on port
type ServiceFunc func(path string, port int) (Stopper, error)

type options struct {
	remote  RemoteFunc
	service ServiceFunc
	logger  *zap.Logger
}

// Option configures New
type Option func(*options)

// WithRemote replaces selenium.NewRemote
func WithRemote(fn RemoteFunc) Option {
	return func(o *options) {
		o.remote = fn
	}
}

// WithService replaces the chromedriver service launcher
func WithService(fn ServiceFunc) Option {
	return func(o *options) {
		o.service = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func chromeDriverService(path string, port int) (Stopper, error) {
	return selenium.NewChromeDriverService(path, port)
}

// New starts a browser session. Connection failures are returned as-is; there
// is no retry.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	o := options{
		remote:  selenium.NewRemote,
		service: chromeDriverService,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := Plan(cfg)
	logger := o.logger.With(
		zap.String("mode", string(target.Mode)),
		zap.String("profile", target.Profile.Name),
	)

	var svc Stopper
	if target.Mode == ModeLocal {
		var err error
		svc, err = o.service(cfg.ChromeDriverPath, cfg.ChromeDriverPort)
		if err != nil {
			return nil, fmt.Errorf("start chromedriver %s on port %d: %w", cfg.ChromeDriverPath, cfg.ChromeDriverPort, err)
		}
	}

	wd, err := o.remote(target.Profile.Capabilities(), target.URL)
	if err != nil {
		stopQuietly(svc, logger)
		return nil, fmt.Errorf("open session at %s: %w", target.URL, err)
	}

	if err := wd.SetAsyncScriptTimeout(target.ScriptTimeout); err != nil {
		_ = wd.Quit()
		stopQuietly(svc, logger)
		return nil, fmt.Errorf("set script timeout: %w", err)
	}

	logger.Debug("browser session started", zap.String("url", target.URL))

	return &Session{
		WebDriver: wd,
		target:    target,
		service:   svc,
		logger:    logger,
	}, nil
}

func stopQuietly(svc Stopper, logger *zap.Logger) {
	if svc == nil {
		return
	}
	if err := svc.Stop(); err != nil {
		logger.Warn("failed to stop chromedriver", zap.Error(err))
	}
}
