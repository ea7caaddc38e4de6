// Package pages holds the page objects the suites drive. Each page is a plain
// struct over a page.Interactor; shared application chrome lives in AppPage.
package pages

import (
	"context"

	"github.com/redhat/browser-e2e-tests/test/framework/page"
)

// Application chrome present on every page
var (
	PageLoader          = page.CSS(".page-loader")
	CookieBanner        = page.ID("cookie-banner")
	AcceptCookiesButton = page.CSS("#cookie-banner button.accept")
)

// AppPage is the part of the UI every page shares
type AppPage struct {
	page.Interactor
}

// NewAppPage wraps i
func NewAppPage(i page.Interactor) *AppPage {
	return &AppPage{Interactor: i}
}

// WaitForLoaded waits for the page loader to go away
func (p *AppPage) WaitForLoaded(ctx context.Context, opts ...page.WaitOption) error {
	opts = append([]page.WaitOption{page.WithDescription("page loader")}, opts...)
	return p.WaitForHidden(ctx, PageLoader, opts...)
}

// AcceptCookies dismisses the cookie banner if it is showing
func (p *AppPage) AcceptCookies(ctx context.Context) error {
	if !p.IsVisible(CookieBanner) {
		return nil
	}
	if err := p.Click(AcceptCookiesButton, "accept cookies button"); err != nil {
		return err
	}
	return p.WaitForHidden(ctx, CookieBanner, page.WithDescription("cookie banner"))
}
