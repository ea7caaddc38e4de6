package page

import (
	"errors"
	"fmt"

	"github.com/tebeka/selenium"
)

// ErrElementNotFound matches every *ElementNotFoundError through errors.Is
var ErrElementNotFound = errors.New("element not found")

// WebDriver error codes the page layer reacts to
const (
	codeNoSuchElement  = "no such element"
	codeStaleReference = "stale element reference"
)

// ElementNotFoundError is returned when the driver reports no element for a locator
type ElementNotFoundError struct {
	Locator Locator
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("element not found: %s: %v", e.Locator, e.Err)
	}
	return fmt.Sprintf("element not found: %s", e.Locator)
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Err
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// ClickError replaces the driver's message with a human readable one
type ClickError struct {
	Message string
	Locator Locator
	Err     error
}

func (e *ClickError) Error() string {
	return e.Message
}

func (e *ClickError) Unwrap() error {
	return e.Err
}

func driverCode(err error) string {
	var se *selenium.Error
	if errors.As(err, &se) {
		return se.Err
	}
	return ""
}

func isNoSuchElement(err error) bool {
	return errors.Is(err, ErrElementNotFound) || driverCode(err) == codeNoSuchElement
}

// isTransient covers lookups that may succeed on the next poll
func isTransient(err error) bool {
	return isNoSuchElement(err) || driverCode(err) == codeStaleReference
}
