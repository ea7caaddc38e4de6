package page

import (
	"fmt"

	"go.uber.org/zap"
)

// Args is the named argument map handed to a script as arguments[0]
type Args map[string]interface{}

// Page-context scripts. Values always arrive through arguments[0].
const (
	scriptAddCookie = `var a = arguments[0];
document.cookie = a.name + '=' + a.value + ';path=' + a.path;`

	scriptTagData = `var path = arguments[0].path.split('.');
var value = window.tagData;
for (var i = 0; i < path.length; i++) {
  if (value === undefined || value === null) { return null; }
  value = value[path[i]];
}
return value === undefined ? null : value;`

	scriptSetSessionStorage    = `window.sessionStorage.setItem(arguments[0].key, arguments[0].value);`
	scriptRemoveSessionStorage = `window.sessionStorage.removeItem(arguments[0].key);`
	scriptClearSessionStorage  = `window.sessionStorage.clear();`
	scriptClearLocalStorage    = `window.localStorage.clear();`
	scriptScrollIntoView       = `arguments[0].element.scrollIntoView();`
)

// ExecuteScript runs script in page context with args available as arguments[0]
func (b *Base) ExecuteScript(script string, args Args) (interface{}, error) {
	if args == nil {
		args = Args{}
	}
	return b.wd.ExecuteScript(script, []interface{}{map[string]interface{}(args)})
}

// AddSimpleCookie sets a cookie through document.cookie. An empty path means "/".
func (b *Base) AddSimpleCookie(name, value, path string) error {
	if path == "" {
		path = "/"
	}
	_, err := b.ExecuteScript(scriptAddCookie, Args{"name": name, "value": value, "path": path})
	if err != nil {
		return fmt.Errorf("add cookie %s: %w", name, err)
	}
	return nil
}

// TagData reads a dotted path below window.tagData; missing keys yield nil
func (b *Base) TagData(path string) (interface{}, error) {
	return b.ExecuteScript(scriptTagData, Args{"path": path})
}

// SetSessionStorage stores value under key in sessionStorage
func (b *Base) SetSessionStorage(key, value string) error {
	_, err := b.ExecuteScript(scriptSetSessionStorage, Args{"key": key, "value": value})
	return err
}

// RemoveSessionStorage deletes key from sessionStorage
func (b *Base) RemoveSessionStorage(key string) error {
	_, err := b.ExecuteScript(scriptRemoveSessionStorage, Args{"key": key})
	return err
}

// RemoveAllSessionStorage clears sessionStorage
func (b *Base) RemoveAllSessionStorage() error {
	_, err := b.ExecuteScript(scriptClearSessionStorage, nil)
	return err
}

// RemoveAllLocalStorage clears localStorage
func (b *Base) RemoveAllLocalStorage() error {
	_, err := b.ExecuteScript(scriptClearLocalStorage, nil)
	return err
}

// ScrollToElement scrolls the first match into view. Best effort: failures are
// logged at debug level and never returned.
func (b *Base) ScrollToElement(loc Locator) {
	el, err := b.wd.FindElement(loc.By, loc.Value)
	if err == nil {
		_, err = b.ExecuteScript(scriptScrollIntoView, Args{"element": el})
	}
	if err != nil {
		b.logger.Debug("scroll into view failed", zap.Stringer("locator", loc), zap.Error(err))
	}
}
