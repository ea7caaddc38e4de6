package page

import (
	"context"
	"time"

	"github.com/tebeka/selenium"

	"github.com/redhat/browser-e2e-tests/test/framework/wait"
)

// Interactor is the capability set page objects are written against.
// *Base is the production implementation.
type Interactor interface {
	PageURL(path string) string

	Go(url string) error
	Back() error
	Refresh() error
	CurrentURL() (string, error)
	Title() (string, error)
	Domain() (string, error)
	Pause(ctx context.Context, d time.Duration) error

	AddSimpleCookie(name, value, path string) error
	Cookie(name string) (selenium.Cookie, error)
	CookieValue(name string) (string, error)
	DeleteCookie(name string) error
	RemoveAllCookies() error

	Element(loc Locator) (selenium.WebElement, error)
	Elements(loc Locator) ([]selenium.WebElement, error)
	ElementWithText(loc Locator, text string) (selenium.WebElement, error)
	Attribute(loc Locator, name string) (string, error)
	Value(loc Locator) (string, error)
	CSSProperty(loc Locator, name string) (string, error)
	Text(loc Locator) (string, error)
	Texts(loc Locator) ([]string, error)
	Clear(loc Locator) error
	Keys(loc Locator, text string) error
	Click(loc Locator, description string) error
	IsEnabled(loc Locator) (bool, error)
	IsSelected(loc Locator) (bool, error)

	IsExisting(loc Locator) bool
	IsMissing(loc Locator) bool
	IsVisible(loc Locator) bool
	IsNotVisible(loc Locator) bool

	WaitUntil(ctx context.Context, cond wait.Condition, message string, timeout time.Duration) error
	WaitForVisible(ctx context.Context, loc Locator, opts ...WaitOption) error
	WaitForMissing(ctx context.Context, loc Locator, opts ...WaitOption) error
	WaitForHidden(ctx context.Context, loc Locator, opts ...WaitOption) error
	WaitForExists(ctx context.Context, loc Locator, opts ...WaitOption) error
	WaitForEnabled(ctx context.Context, loc Locator, opts ...WaitOption) error
	WaitForElementWithText(ctx context.Context, loc Locator, text string, opts ...WaitOption) error
	WaitForWindow(ctx context.Context, criteria WindowCriteria, opts ...WaitOption) (string, error)
	SwitchToWindowOpened(ctx context.Context, opts ...WaitOption) error
	SwitchBackFromWindowClosed(ctx context.Context, opts ...WaitOption) error
	WaitForTransitionComplete(ctx context.Context, d time.Duration) error

	ExecuteScript(script string, args Args) (interface{}, error)
	TagData(path string) (interface{}, error)
	SetSessionStorage(key, value string) error
	RemoveSessionStorage(key string) error
	RemoveAllSessionStorage() error
	RemoveAllLocalStorage() error
	ScrollToElement(loc Locator)
}

var _ Interactor = (*Base)(nil)
