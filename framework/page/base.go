// Package page wraps a WebDriver session with the lookups, interactions and
// waits page objects are built from.
package page

import (
	"context"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
)

// Base is the session wrapper every page object composes
type Base struct {
	wd       selenium.WebDriver
	cfg      *config.Config
	logger   *zap.Logger
	timeout  time.Duration
	interval time.Duration
}

// Option configures a Base
type Option func(*Base)

// WithLogger sets the logger used for best-effort operations
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) {
		b.logger = logger
	}
}

// New wraps wd. Default wait timeout and poll interval come from cfg.
func New(wd selenium.WebDriver, cfg *config.Config, opts ...Option) *Base {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Base{
		wd:       wd,
		cfg:      cfg,
		logger:   zap.NewNop(),
		timeout:  cfg.DefaultTimeoutDuration(),
		interval: cfg.PollIntervalDuration(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Driver returns the wrapped WebDriver
func (b *Base) Driver() selenium.WebDriver {
	return b.wd
}

// Config returns the configuration the page was built with
func (b *Base) Config() *config.Config {
	return b.cfg
}

// PageURL joins the configured base URL and base path with path
func (b *Base) PageURL(path string) string {
	return b.cfg.PageURL(path)
}

// Go navigates to url
func (b *Base) Go(url string) error {
	if err := b.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Back navigates one step back in history
func (b *Base) Back() error {
	return b.wd.Back()
}

// Refresh reloads the current page
func (b *Base) Refresh() error {
	return b.wd.Refresh()
}

// CurrentURL returns the URL of the current page
func (b *Base) CurrentURL() (string, error) {
	return b.wd.CurrentURL()
}

// Title returns the document title
func (b *Base) Title() (string, error) {
	return b.wd.Title()
}

// Domain returns document.domain of the current page
func (b *Base) Domain() (string, error) {
	v, err := b.wd.ExecuteScript("return document.domain;", nil)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Pause blocks for d or until ctx is done
func (b *Base) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WaitForTransitionComplete pauses for d. Animations are expected to be
// disabled, so callers normally pass zero.
func (b *Base) WaitForTransitionComplete(ctx context.Context, d time.Duration) error {
	return b.Pause(ctx, d)
}

// Cookie returns the named cookie
func (b *Base) Cookie(name string) (selenium.Cookie, error) {
	return b.wd.GetCookie(name)
}

// CookieValue returns the value of the named cookie
func (b *Base) CookieValue(name string) (string, error) {
	c, err := b.wd.GetCookie(name)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// DeleteCookie removes the named cookie
func (b *Base) DeleteCookie(name string) error {
	return b.wd.DeleteCookie(name)
}

// RemoveAllCookies removes every cookie visible to the current page
func (b *Base) RemoveAllCookies() error {
	return b.wd.DeleteAllCookies()
}
