package pages

import (
	"net/url"

	"github.com/redhat/browser-e2e-tests/test/framework/page"
)

// SomePagePath is the page's path under the application base path
const SomePagePath = "path"

// Locators on SomePage
var (
	Locator = page.CSS(".some-locator")
)

// AnotherLocator selects the variant of the element for typ
func AnotherLocator(typ string) page.Locator {
	return page.CSS(".some-locator-" + typ)
}

// Options are the URL parameters of SomePage
type Options struct {
	Something string
}

// DefaultOptions are used for fields an override leaves empty
func DefaultOptions() Options {
	return Options{Something: "value"}
}

// SomePage is an example page object
type SomePage struct {
	*AppPage

	// URL is the page address with default options
	URL string
}

// NewSomePage wraps i
func NewSomePage(i page.Interactor) *SomePage {
	p := &SomePage{AppPage: NewAppPage(i)}
	p.URL = p.BuildURL(Options{})
	return p
}

// BuildURL returns the page address for overrides merged over DefaultOptions
func (p *SomePage) BuildURL(overrides Options) string {
	opts := DefaultOptions()
	if overrides.Something != "" {
		opts.Something = overrides.Something
	}
	return p.PageURL(SomePagePath + "/" + url.PathEscape(opts.Something))
}

// SomeFunction returns the text of Locator
func (p *SomePage) SomeFunction() (string, error) {
	return p.Text(Locator)
}
