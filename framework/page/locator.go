package page

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Locator identifies zero or more elements on the current page
type Locator struct {
	By    string
	Value string
}

func (l Locator) String() string {
	return fmt.Sprintf("By(%s, %s)", l.By, l.Value)
}

// IsZero reports whether the locator was never set
func (l Locator) IsZero() bool {
	return l.By == "" && l.Value == ""
}

// CSS locates elements by CSS selector
func CSS(selector string) Locator {
	return Locator{By: selenium.ByCSSSelector, Value: selector}
}

// XPath locates elements by XPath expression
func XPath(expr string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expr}
}

// ID locates an element by its id attribute
func ID(id string) Locator {
	return Locator{By: selenium.ByID, Value: id}
}

// Name locates elements by their name attribute
func Name(name string) Locator {
	return Locator{By: selenium.ByName, Value: name}
}

// LinkText locates anchors by their exact text
func LinkText(text string) Locator {
	return Locator{By: selenium.ByLinkText, Value: text}
}

// PartialLinkText locates anchors whose text contains text
func PartialLinkText(text string) Locator {
	return Locator{By: selenium.ByPartialLinkText, Value: text}
}

// TagName locates elements by tag
func TagName(tag string) Locator {
	return Locator{By: selenium.ByTagName, Value: tag}
}

// ClassName locates elements by a single class name
func ClassName(class string) Locator {
	return Locator{By: selenium.ByClassName, Value: class}
}
