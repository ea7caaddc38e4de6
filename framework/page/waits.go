package page

import (
	"context"
	"fmt"
	"time"

	"github.com/redhat/browser-e2e-tests/test/framework/wait"
)

type waitOptions struct {
	description string
	timeout     time.Duration
}

// WaitOption customises a single wait
type WaitOption func(*waitOptions)

// WithDescription names the awaited element in the failure message
func WithDescription(description string) WaitOption {
	return func(o *waitOptions) {
		o.description = description
	}
}

// WithTimeout overrides the configured default timeout
func WithTimeout(d time.Duration) WaitOption {
	return func(o *waitOptions) {
		o.timeout = d
	}
}

func (b *Base) waitOptions(opts []WaitOption) waitOptions {
	o := waitOptions{timeout: b.timeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// waitMessage renders "Wait for <description|locator> <state> failed", adding
// the locator on its own line when a description replaced it.
func waitMessage(loc Locator, description, state string) string {
	if description == "" {
		return fmt.Sprintf("Wait for %s %s failed", loc, state)
	}
	return fmt.Sprintf("Wait for %s %s failed\n%s", description, state, loc)
}

// WaitUntil polls cond until it holds or timeout elapses. A zero timeout
// uses the configured default.
func (b *Base) WaitUntil(ctx context.Context, cond wait.Condition, message string, timeout time.Duration) error {
	if message == "" {
		message = "Wait until failed"
	}
	if timeout == 0 {
		timeout = b.timeout
	}
	return wait.Until(ctx, cond, message, timeout, wait.WithInterval(b.interval))
}

func (b *Base) waitFor(ctx context.Context, loc Locator, state string, opts []WaitOption, probe func() (bool, error)) error {
	o := b.waitOptions(opts)
	return b.WaitUntil(ctx, func(context.Context) (bool, error) {
		return probe()
	}, waitMessage(loc, o.description, state), o.timeout)
}

// WaitForVisible waits until IsVisible holds for loc
func (b *Base) WaitForVisible(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, "being visible", opts, func() (bool, error) {
		return b.IsVisible(loc), nil
	})
}

// WaitForMissing waits until no element matches loc
func (b *Base) WaitForMissing(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, "being missing", opts, func() (bool, error) {
		return b.IsMissing(loc), nil
	})
}

// WaitForHidden waits until loc is missing or not visible
func (b *Base) WaitForHidden(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, "being hidden", opts, func() (bool, error) {
		return b.IsMissing(loc) || b.IsNotVisible(loc), nil
	})
}

// WaitForExists waits until at least one element matches loc
func (b *Base) WaitForExists(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, "being present", opts, func() (bool, error) {
		return b.IsExisting(loc), nil
	})
}

// WaitForEnabled waits until the first match is enabled. A missing element is
// polled again; other driver errors end the wait.
func (b *Base) WaitForEnabled(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, "being enabled", opts, func() (bool, error) {
		enabled, err := b.IsEnabled(loc)
		if err != nil && isTransient(err) {
			return false, nil
		}
		return enabled, err
	})
}

// WaitForElementWithText waits until the rendered text of at least one match
// equals text exactly
func (b *Base) WaitForElementWithText(ctx context.Context, loc Locator, text string, opts ...WaitOption) error {
	return b.waitFor(ctx, loc, `with "`+text+`" text`, opts, func() (bool, error) {
		texts, err := b.Texts(loc)
		if err != nil {
			if isTransient(err) {
				return false, nil
			}
			return false, err
		}
		for _, t := range texts {
			if t == text {
				return true, nil
			}
		}
		return false, nil
	})
}

// WindowCriteria picks a window handle from the current handles; ok=false keeps polling
type WindowCriteria func(handles []string) (handle string, ok bool)

// WaitForWindow polls the window handles until criteria picks one
func (b *Base) WaitForWindow(ctx context.Context, criteria WindowCriteria, opts ...WaitOption) (string, error) {
	o := b.waitOptions(opts)
	message := "Wait for window failed"
	if o.description != "" {
		message = fmt.Sprintf("Wait for %s window failed", o.description)
	}
	return wait.UntilValue(ctx, func(context.Context) (string, bool, error) {
		handles, err := b.wd.WindowHandles()
		if err != nil {
			return "", false, err
		}
		h, ok := criteria(handles)
		return h, ok, nil
	}, message, o.timeout, wait.WithInterval(b.interval))
}

// NewWindowOpened picks the second window once it exists
func NewWindowOpened(handles []string) (string, bool) {
	if len(handles) > 1 {
		return handles[1], true
	}
	return "", false
}

// BackToSingleWindow picks the only window once every other one closed
func BackToSingleWindow(handles []string) (string, bool) {
	if len(handles) == 1 {
		return handles[0], true
	}
	return "", false
}

// SwitchToWindowOpened waits for a second window and switches to it
func (b *Base) SwitchToWindowOpened(ctx context.Context, opts ...WaitOption) error {
	h, err := b.WaitForWindow(ctx, NewWindowOpened, append([]WaitOption{WithDescription("new")}, opts...)...)
	if err != nil {
		return err
	}
	return b.wd.SwitchWindow(h)
}

// SwitchBackFromWindowClosed waits until a single window remains and switches to it
func (b *Base) SwitchBackFromWindowClosed(ctx context.Context, opts ...WaitOption) error {
	h, err := b.WaitForWindow(ctx, BackToSingleWindow, append([]WaitOption{WithDescription("single")}, opts...)...)
	if err != nil {
		return err
	}
	return b.wd.SwitchWindow(h)
}
