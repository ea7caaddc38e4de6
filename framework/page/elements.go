package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tebeka/selenium"
)

// Element returns the first element matching loc
func (b *Base) Element(loc Locator) (selenium.WebElement, error) {
	el, err := b.wd.FindElement(loc.By, loc.Value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, &ElementNotFoundError{Locator: loc, Err: err}
		}
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return el, nil
}

// Elements returns every element matching loc, possibly none
func (b *Base) Elements(loc Locator) ([]selenium.WebElement, error) {
	els, err := b.wd.FindElements(loc.By, loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	return els, nil
}

// ElementWithText returns the first match whose rendered text equals text exactly
func (b *Base) ElementWithText(loc Locator, text string) (selenium.WebElement, error) {
	els, err := b.Elements(loc)
	if err != nil {
		return nil, err
	}
	for _, el := range els {
		got, err := el.Text()
		if err != nil {
			return nil, err
		}
		if got == text {
			return el, nil
		}
	}
	return nil, &ElementNotFoundError{Locator: loc, Err: fmt.Errorf("no element with text %q", text)}
}

// Attribute returns the named attribute of the first match
func (b *Base) Attribute(loc Locator, name string) (string, error) {
	el, err := b.Element(loc)
	if err != nil {
		return "", err
	}
	return el.GetAttribute(name)
}

// Value returns the value attribute of the first match
func (b *Base) Value(loc Locator) (string, error) {
	return b.Attribute(loc, "value")
}

// CSSProperty returns the computed style property of the first match
func (b *Base) CSSProperty(loc Locator, name string) (string, error) {
	el, err := b.Element(loc)
	if err != nil {
		return "", err
	}
	return el.CSSProperty(name)
}

// Text returns the rendered text of the first match
func (b *Base) Text(loc Locator) (string, error) {
	el, err := b.Element(loc)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Texts returns the rendered text of every match in document order
func (b *Base) Texts(loc Locator) ([]string, error) {
	els, err := b.Elements(loc)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// Clear empties the first matching input
func (b *Base) Clear(loc Locator) error {
	el, err := b.Element(loc)
	if err != nil {
		return err
	}
	return el.Clear()
}

// Keys types text into the first match. The driver error is returned unchanged.
func (b *Base) Keys(loc Locator, text string) error {
	el, err := b.Element(loc)
	if err != nil {
		return err
	}
	return el.SendKeys(text)
}

// IsEnabled reports whether the first match is enabled
func (b *Base) IsEnabled(loc Locator) (bool, error) {
	el, err := b.Element(loc)
	if err != nil {
		return false, err
	}
	return el.IsEnabled()
}

// IsSelected reports whether the first match is selected
func (b *Base) IsSelected(loc Locator) (bool, error) {
	el, err := b.Element(loc)
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

// Click clicks the first match. Any failure, lookup included, comes back as a
// *ClickError whose message names description (or the locator when empty).
func (b *Base) Click(loc Locator, description string) error {
	subject, affix := loc.String(), ""
	if description != "" {
		subject, affix = description, "\n("+loc.String()+")"
	}

	el, err := b.Element(loc)
	if err == nil {
		err = el.Click()
	}
	if err != nil {
		return &ClickError{
			Message: fmt.Sprintf("Failed to click %s%s", subject, affix),
			Locator: loc,
			Err:     err,
		}
	}
	return nil
}

// IsExisting reports whether at least one element matches
func (b *Base) IsExisting(loc Locator) bool {
	els, err := b.wd.FindElements(loc.By, loc.Value)
	return err == nil && len(els) > 0
}

// IsMissing reports whether no element matches. A failed lookup is not proof
// of absence and yields false.
func (b *Base) IsMissing(loc Locator) bool {
	els, err := b.wd.FindElements(loc.By, loc.Value)
	return err == nil && len(els) == 0
}

// IsVisible reports whether the first match exists, is displayed and has a
// computed opacity above zero. Any lookup failure counts as not visible.
func (b *Base) IsVisible(loc Locator) bool {
	el, err := b.wd.FindElement(loc.By, loc.Value)
	if err != nil {
		return false
	}
	displayed, err := el.IsDisplayed()
	if err != nil || !displayed {
		return false
	}
	raw, err := el.CSSProperty("opacity")
	if err != nil {
		return false
	}
	opacity, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && opacity > 0
}

// IsNotVisible is the negation of IsVisible
func (b *Base) IsNotVisible(loc Locator) bool {
	return !b.IsVisible(loc)
}
