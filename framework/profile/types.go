package profile

import (
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/log"
)

// Mode selects which capability profile a session is built from
type Mode string

const (
	// ModeStandard is a headed browser, also used against a remote grid
	ModeStandard Mode = "standard"

	// ModeHeadless is a local browser without a window
	ModeHeadless Mode = "headless"
)

// Profile is a named bundle of browser session options
type Profile struct {
	// Name is the unique identifier for this profile
	Name string `json:"name"`

	// Description provides human-readable details about the profile
	Description string `json:"description,omitempty"`

	// BrowserName is the WebDriver browserName capability (e.g., "chrome")
	BrowserName string `json:"browserName"`

	// AcceptInsecureCerts lets the browser load pages with self-signed certificates
	AcceptInsecureCerts bool `json:"acceptInsecureCerts,omitempty"`

	// Args are passed to the browser binary
	Args []string `json:"args,omitempty"`

	// MobileEmulation configures Chrome device emulation (optional)
	MobileEmulation *MobileEmulation `json:"mobileEmulation,omitempty"`

	// Logging maps a log type (browser, client, driver) to its level (INFO, ALL...)
	Logging map[string]string `json:"logging,omitempty"`
}

// MobileEmulation defines the emulated device
type MobileEmulation struct {
	UserAgent  string  `json:"userAgent,omitempty"`
	Width      uint    `json:"width"`
	Height     uint    `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
}

// Set holds the profiles keyed by mode
type Set map[Mode]*Profile

// File is the on-disk layout of a capabilities file
type File struct {
	Profiles map[string]*Profile `json:"profiles"`
}

// Capabilities builds the WebDriver capabilities for this profile
func (p *Profile) Capabilities() selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": p.BrowserName}
	if p.AcceptInsecureCerts {
		caps["acceptInsecureCerts"] = true
	}

	chromeCaps := chrome.Capabilities{
		Args: append([]string(nil), p.Args...),
	}
	if p.MobileEmulation != nil {
		chromeCaps.MobileEmulation = &chrome.MobileEmulation{
			UserAgent: p.MobileEmulation.UserAgent,
			DeviceMetrics: &chrome.DeviceMetrics{
				Width:      p.MobileEmulation.Width,
				Height:     p.MobileEmulation.Height,
				PixelRatio: p.MobileEmulation.PixelRatio,
			},
		}
	}
	caps.AddChrome(chromeCaps)

	if len(p.Logging) > 0 {
		logCaps := make(log.Capabilities, len(p.Logging))
		for typ, level := range p.Logging {
			logCaps[log.Type(typ)] = log.Level(level)
		}
		caps.AddLogging(logCaps)
	}

	return caps
}

// HasArg reports whether the profile passes the given browser argument
func (p *Profile) HasArg(arg string) bool {
	for _, a := range p.Args {
		if a == arg {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can tweak a profile without touching the set
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Args = append([]string(nil), p.Args...)
	if p.MobileEmulation != nil {
		me := *p.MobileEmulation
		cp.MobileEmulation = &me
	}
	if p.Logging != nil {
		cp.Logging = make(map[string]string, len(p.Logging))
		for k, v := range p.Logging {
			cp.Logging[k] = v
		}
	}
	return &cp
}
