// Package fakewd is an in-memory selenium.WebDriver for unit tests.
//
// Only the methods the framework calls are implemented; anything else hits
// the nil embedded interface and panics, which flags an untested path.
package fakewd

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/log"
)

// NoSuchElement builds the error the driver returns for a failed lookup
func NoSuchElement(by, value string) error {
	return &selenium.Error{
		Err:     "no such element",
		Message: fmt.Sprintf("Unable to locate element: {%q:%q}", by, value),
	}
}

// Script records one ExecuteScript or ExecuteScriptAsync call
type Script struct {
	Source string
	Args   []interface{}
	Async  bool
}

// Element is a fake selenium.WebElement
type Element struct {
	selenium.WebElement

	mu        sync.Mutex
	text      string
	displayed bool
	enabled   bool
	selected  bool
	attrs     map[string]string
	css       map[string]string
	clickErr  error
	clicks    int
	keys      []string
	cleared   bool
}

// NewElement returns a displayed, enabled element with opacity 1
func NewElement(text string) *Element {
	return &Element{
		text:      text,
		displayed: true,
		enabled:   true,
		attrs:     map[string]string{},
		css:       map[string]string{"opacity": "1"},
	}
}

// SetText changes the rendered text
func (e *Element) SetText(text string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	return e
}

// SetDisplayed toggles visibility
func (e *Element) SetDisplayed(v bool) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.displayed = v
	return e
}

// SetEnabled toggles the enabled state
func (e *Element) SetEnabled(v bool) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = v
	return e
}

// SetSelected toggles the selected state
func (e *Element) SetSelected(v bool) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = v
	return e
}

// SetAttr sets an attribute value
func (e *Element) SetAttr(name, value string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
	return e
}

// SetCSS sets a computed style value
func (e *Element) SetCSS(name, value string) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.css[name] = value
	return e
}

// FailClicks makes every click return err
func (e *Element) FailClicks(err error) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clickErr = err
	return e
}

// Clicks returns how many clicks succeeded
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

// TypedKeys returns every SendKeys payload in order
func (e *Element) TypedKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.keys...)
}

// Cleared reports whether Clear was called
func (e *Element) Cleared() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cleared
}

func (e *Element) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func (e *Element) SendKeys(keys string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = append(e.keys, keys)
	return nil
}

func (e *Element) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cleared = true
	e.attrs["value"] = ""
	return nil
}

func (e *Element) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

func (e *Element) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayed, nil
}

func (e *Element) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled, nil
}

func (e *Element) IsSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected, nil
}

func (e *Element) GetAttribute(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	if !ok {
		return "", fmt.Errorf("nil return value")
	}
	return v, nil
}

func (e *Element) CSSProperty(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.css[name], nil
}

// Driver is a fake selenium.WebDriver. All state is guarded by a mutex so
// tests can change the page from another goroutine while a wait polls.
type Driver struct {
	selenium.WebDriver

	mu            sync.Mutex
	elements      map[string][]*Element
	findErrs      map[string]error
	url           string
	visited       []string
	title         string
	source        string
	screenshot    []byte
	logs          map[log.Type][]log.Message
	failures      map[string]error
	scripts       []Script
	scriptResult  interface{}
	cookies       map[string]selenium.Cookie
	handles       []string
	current       string
	scriptTimeout time.Duration
	calls         []string
	quits         int
}

// New returns a driver on about:blank with a single window
func New() *Driver {
	return &Driver{
		elements: map[string][]*Element{},
		findErrs: map[string]error{},
		url:      "about:blank",
		logs:     map[log.Type][]log.Message{},
		failures: map[string]error{},
		cookies:  map[string]selenium.Cookie{},
		handles:  []string{"main"},
		current:  "main",
	}
}

func key(by, value string) string {
	return by + "|" + value
}

func (d *Driver) record(call string) error {
	d.calls = append(d.calls, call)
	return d.failures[call]
}

// Put makes by/value resolve to els, replacing earlier elements
func (d *Driver) Put(by, value string, els ...*Element) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[key(by, value)] = els
	return d
}

// Remove makes by/value resolve to nothing
func (d *Driver) Remove(by, value string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, key(by, value))
	return d
}

// FailFind makes lookups of by/value fail with err
func (d *Driver) FailFind(by, value string, err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findErrs[key(by, value)] = err
	return d
}

// Fail makes the named call ("CurrentURL", "PageSource", "Screenshot",
// "Log:browser", "ExecuteScript", "Quit", ...) return err
func (d *Driver) Fail(call string, err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[call] = err
	return d
}

// SetPage sets the current URL, title and source
func (d *Driver) SetPage(url, title, source string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url, d.title, d.source = url, title, source
	return d
}

// SetScreenshot sets the PNG bytes returned by Screenshot
func (d *Driver) SetScreenshot(png []byte) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screenshot = png
	return d
}

// AddLog appends entries to the log of typ
func (d *Driver) AddLog(typ log.Type, msgs ...log.Message) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logs[typ] = append(d.logs[typ], msgs...)
	return d
}

// SetScriptResult sets the value every script returns
func (d *Driver) SetScriptResult(v interface{}) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scriptResult = v
	return d
}

// SetHandles replaces the open window handles
func (d *Driver) SetHandles(handles ...string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles = handles
	return d
}

// Calls returns the recorded driver calls in order
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// Scripts returns the recorded scripts in order
func (d *Driver) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Script(nil), d.scripts...)
}

// Visited returns every URL passed to Get
func (d *Driver) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// CurrentWindow returns the handle last switched to
func (d *Driver) CurrentWindow() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Quits returns how many times Quit was called
func (d *Driver) Quits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quits
}

// ScriptTimeout returns the last async script timeout set
func (d *Driver) ScriptTimeout() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scriptTimeout
}

// SetCookie stores a cookie as if the page had set it
func (d *Driver) SetCookie(c selenium.Cookie) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookies[c.Name] = c
	return d
}

func (d *Driver) Get(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("Get"); err != nil {
		return err
	}
	d.url = url
	d.visited = append(d.visited, url)
	return nil
}

func (d *Driver) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("Back"); err != nil {
		return err
	}
	if n := len(d.visited); n > 1 {
		d.url = d.visited[n-2]
	}
	return nil
}

func (d *Driver) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.record("Refresh")
}

func (d *Driver) Title() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, d.record("Title")
}

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CurrentURL"); err != nil {
		return "", err
	}
	return d.url, nil
}

func (d *Driver) PageSource() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("PageSource"); err != nil {
		return "", err
	}
	return d.source, nil
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.findErrs[key(by, value)]; err != nil {
		return nil, err
	}
	els := d.elements[key(by, value)]
	if len(els) == 0 {
		return nil, NoSuchElement(by, value)
	}
	return els[0], nil
}

func (d *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.findErrs[key(by, value)]; err != nil {
		return nil, err
	}
	var out []selenium.WebElement
	for _, el := range d.elements[key(by, value)] {
		out = append(out, el)
	}
	return out, nil
}

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, Script{Source: script, Args: args})
	if err := d.record("ExecuteScript"); err != nil {
		return nil, err
	}
	return d.scriptResult, nil
}

func (d *Driver) ExecuteScriptAsync(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, Script{Source: script, Args: args, Async: true})
	if err := d.record("ExecuteScriptAsync"); err != nil {
		return nil, err
	}
	return d.scriptResult, nil
}

func (d *Driver) AddCookie(c *selenium.Cookie) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookies[c.Name] = *c
	return d.record("AddCookie")
}

func (d *Driver) GetCookie(name string) (selenium.Cookie, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.cookies[name]
	if !ok {
		return selenium.Cookie{}, &selenium.Error{Err: "no such cookie", Message: name}
	}
	return c, nil
}

func (d *Driver) DeleteCookie(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.cookies, name)
	return d.record("DeleteCookie")
}

func (d *Driver) DeleteAllCookies() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookies = map[string]selenium.Cookie{}
	return d.record("DeleteAllCookies")
}

func (d *Driver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("WindowHandles"); err != nil {
		return nil, err
	}
	return append([]string(nil), d.handles...), nil
}

func (d *Driver) SwitchWindow(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.handles {
		if h == name {
			d.current = name
			return d.record("SwitchWindow")
		}
	}
	return &selenium.Error{Err: "no such window", Message: name}
}

func (d *Driver) Screenshot() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("Screenshot"); err != nil {
		return nil, err
	}
	return append([]byte(nil), d.screenshot...), nil
}

// Log returns and drains the entries of typ, like a real driver does
func (d *Driver) Log(typ log.Type) ([]log.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("Log:" + string(typ)); err != nil {
		return nil, err
	}
	msgs := d.logs[typ]
	delete(d.logs, typ)
	return msgs, nil
}

func (d *Driver) SetAsyncScriptTimeout(timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scriptTimeout = timeout
	return d.record("SetAsyncScriptTimeout")
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quits++
	if err := d.record("Quit"); err != nil {
		return err
	}
	if d.quits > 1 {
		return errors.New("invalid session id")
	}
	return nil
}
