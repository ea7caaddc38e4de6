package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/internal/fakewd"
	"github.com/redhat/browser-e2e-tests/test/framework/wait"
)

var banner = CSS(".banner")

func newBase(t *testing.T, opts ...Option) (*Base, *fakewd.Driver) {
	t.Helper()
	wd := fakewd.New()
	cfg := config.Default().WithDefaultTimeout(200).WithPollInterval(5)
	return New(wd, cfg, opts...), wd
}

func TestLocatorString(t *testing.T) {
	assert.Equal(t, "By(css selector, .banner)", banner.String())
	assert.Equal(t, "By(xpath, //a)", XPath("//a").String())
	assert.True(t, Locator{}.IsZero())
	assert.False(t, ID("x").IsZero())
}

func TestNavigationAndCookies(t *testing.T) {
	b, wd := newBase(t)

	require.NoError(t, b.Go(b.PageURL("basket")))
	assert.Equal(t, []string{"https://127.0.0.1:3000/m/basket"}, wd.Visited())

	url, err := b.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:3000/m/basket", url)

	wd.SetCookie(selenium.Cookie{Name: "session", Value: "abc"})
	v, err := b.CookieValue("session")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, b.DeleteCookie("session"))
	_, err = b.Cookie("session")
	assert.Error(t, err)

	wd.Fail("Get", errors.New("net::ERR_CONNECTION_REFUSED"))
	err = b.Go("https://down.local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigate to https://down.local")
}

func TestElementLookup(t *testing.T) {
	b, wd := newBase(t)

	_, err := b.Element(banner)
	var nf *ElementNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, banner, nf.Locator)
	assert.ErrorIs(t, err, ErrElementNotFound)

	wd.Put(banner.By, banner.Value, fakewd.NewElement("one"), fakewd.NewElement("two"))
	texts, err := b.Texts(banner)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, texts)

	el, err := b.ElementWithText(banner, "two")
	require.NoError(t, err)
	got, _ := el.Text()
	assert.Equal(t, "two", got)

	_, err = b.ElementWithText(banner, "tw")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestPassThroughs(t *testing.T) {
	b, wd := newBase(t)
	input := fakewd.NewElement("").SetAttr("value", "old").SetSelected(true).SetEnabled(false)
	wd.Put(banner.By, banner.Value, input)

	v, err := b.Value(banner)
	require.NoError(t, err)
	assert.Equal(t, "old", v)

	require.NoError(t, b.Clear(banner))
	assert.True(t, input.Cleared())

	require.NoError(t, b.Keys(banner, "hello"))
	assert.Equal(t, []string{"hello"}, input.TypedKeys())

	selected, err := b.IsSelected(banner)
	require.NoError(t, err)
	assert.True(t, selected)

	enabled, err := b.IsEnabled(banner)
	require.NoError(t, err)
	assert.False(t, enabled)

	opacity, err := b.CSSProperty(banner, "opacity")
	require.NoError(t, err)
	assert.Equal(t, "1", opacity)
}

func TestClick(t *testing.T) {
	b, wd := newBase(t)
	button := fakewd.NewElement("Pay")
	wd.Put(banner.By, banner.Value, button)

	require.NoError(t, b.Click(banner, "pay button"))
	assert.Equal(t, 1, button.Clicks())

	driverErr := &selenium.Error{Err: "element click intercepted"}
	button.FailClicks(driverErr)

	err := b.Click(banner, "pay button")
	var ce *ClickError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Failed to click pay button\n(By(css selector, .banner))", err.Error())
	assert.ErrorIs(t, err, driverErr)

	err = b.Click(banner, "")
	assert.Equal(t, "Failed to click By(css selector, .banner)", err.Error())
}

func TestClick_MissingElementKeepsNotFound(t *testing.T) {
	b, _ := newBase(t)

	err := b.Click(banner, "banner")
	require.Error(t, err)
	assert.Equal(t, "Failed to click banner\n(By(css selector, .banner))", err.Error())
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestVisibilityPredicates(t *testing.T) {
	b, wd := newBase(t)

	assert.False(t, b.IsVisible(banner))
	assert.True(t, b.IsNotVisible(banner))
	assert.True(t, b.IsMissing(banner))
	assert.False(t, b.IsExisting(banner))

	el := fakewd.NewElement("hi")
	wd.Put(banner.By, banner.Value, el)
	assert.True(t, b.IsVisible(banner))
	assert.True(t, b.IsExisting(banner))

	el.SetCSS("opacity", "0")
	assert.False(t, b.IsVisible(banner))

	el.SetCSS("opacity", "0.5").SetDisplayed(false)
	assert.False(t, b.IsVisible(banner))

	wd.FailFind(banner.By, banner.Value, errors.New("session deleted"))
	assert.False(t, b.IsVisible(banner))
	assert.False(t, b.IsMissing(banner), "a failed lookup is not proof of absence")
}

func TestScripts_UseNamedArguments(t *testing.T) {
	b, wd := newBase(t)

	require.NoError(t, b.AddSimpleCookie("consent", "yes'; evil", ""))
	require.NoError(t, b.SetSessionStorage("k", "v"))
	require.NoError(t, b.RemoveAllLocalStorage())
	wd.SetScriptResult("GB")
	v, err := b.TagData("page.country")
	require.NoError(t, err)
	assert.Equal(t, "GB", v)

	scripts := wd.Scripts()
	require.Len(t, scripts, 4)

	cookieArgs := scripts[0].Args[0].(map[string]interface{})
	assert.Equal(t, "consent", cookieArgs["name"])
	assert.Equal(t, "yes'; evil", cookieArgs["value"])
	assert.Equal(t, "/", cookieArgs["path"])
	assert.NotContains(t, scripts[0].Source, "evil")

	assert.Equal(t, map[string]interface{}{}, scripts[2].Args[0])
	assert.Equal(t, "page.country", scripts[3].Args[0].(map[string]interface{})["path"])
}

func TestScrollToElement_SwallowsErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b, wd := newBase(t, WithLogger(zap.New(core)))

	b.ScrollToElement(banner)
	assert.Equal(t, 1, logs.FilterMessage("scroll into view failed").Len())

	wd.Put(banner.By, banner.Value, fakewd.NewElement(""))
	wd.Fail("ExecuteScript", errors.New("javascript error"))
	b.ScrollToElement(banner)
	assert.Equal(t, 2, logs.FilterMessage("scroll into view failed").Len())
}

func TestPause(t *testing.T) {
	b, _ := newBase(t)

	start := time.Now()
	require.NoError(t, b.Pause(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.WaitForTransitionComplete(ctx, time.Hour), context.Canceled)
	assert.NoError(t, b.WaitForTransitionComplete(context.Background(), 0))
}

func TestDomain(t *testing.T) {
	b, wd := newBase(t)
	wd.SetScriptResult("shop.example.com")

	d, err := b.Domain()
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", d)
}

func TestWaitUntil_Defaults(t *testing.T) {
	b, _ := newBase(t)

	err := b.WaitUntil(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	}, "", 0)

	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 200*time.Millisecond, te.Timeout)
	assert.Equal(t, "Wait until failed", te.Message)
}
