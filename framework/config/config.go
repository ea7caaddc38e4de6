package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/redhat/browser-e2e-tests/test/framework/profile"
)

// Defaults used when the environment does not say otherwise
const (
	// DefaultHost is the application host when neither HOST nor BASE_URL is set
	DefaultHost = "127.0.0.1"

	// DefaultPort is the application port when neither PORT nor BASE_URL is set
	DefaultPort = "3000"

	// DefaultBasePath is prepended to every page path
	DefaultBasePath = "/m/"

	// DefaultTimeoutMillis bounds every wait that does not pass its own timeout
	DefaultTimeoutMillis = 10000

	// NetworkTimeoutFactor derives the network timeout from the default timeout
	NetworkTimeoutFactor = 6

	// DefaultPollIntervalMillis is the cadence of the wait engine
	DefaultPollIntervalMillis = 100

	// DefaultSeleniumPort is the grid port used when only SELENIUM_HOST is set
	DefaultSeleniumPort = "4444"

	// DefaultChromeDriverPath is looked up on PATH for local sessions
	DefaultChromeDriverPath = "chromedriver"

	// DefaultChromeDriverPort is the port of the local chromedriver service
	DefaultChromeDriverPort = 9515

	// DefaultOutputDir receives failure artifacts, logs and reports
	DefaultOutputDir = "output"

	// DefaultLogLevel of the framework logger
	DefaultLogLevel = "info"
)

// Environment variable names
const (
	EnvHost             = "HOST"
	EnvPort             = "PORT"
	EnvBaseURL          = "BASE_URL"
	EnvSeleniumHost     = "SELENIUM_HOST"
	EnvSeleniumPort     = "SELENIUM_PORT"
	EnvHeadless         = "HEADLESS"
	EnvSmokeTesting     = "SMOKE_TESTING"
	EnvDefaultTimeout   = "DEFAULT_TIMEOUT"
	EnvIsProd           = "IS_PROD"
	EnvPollInterval     = "POLL_INTERVAL"
	EnvChromeDriverPath = "CHROMEDRIVER_PATH"
	EnvChromeDriverPort = "CHROMEDRIVER_PORT"
	EnvOutputDir        = "OUTPUT_DIR"
	EnvCapabilitiesFile = "CAPABILITIES_FILE"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFile          = "LOG_FILE"
	EnvRegistrationEnv  = "REGISTRATION_ENV"
	EnvRegistrationCert = "REGISTRATION_CERT"
	EnvRegistrationKey  = "REGISTRATION_KEY"
	EnvRegistrationCA   = "REGISTRATION_CA"
	EnvA11yConfig       = "A11Y_CONFIG"
	EnvA11yAxeSource    = "A11Y_AXE_SOURCE"
)

// Config holds the resolved run configuration. Treat it as immutable and use
// the With* setters to derive variants.
type Config struct {
	// Application under test
	Host     string
	Port     string
	BaseURL  string
	BasePath string

	// Timeouts in milliseconds
	DefaultTimeout        int
	DefaultNetworkTimeout int
	PollInterval          int

	// Flags
	IsSmokeTest bool
	IsProd      bool
	Headless    bool

	// Browser
	SeleniumHost     string
	SeleniumPort     string
	ChromeDriverPath string
	ChromeDriverPort int
	CapabilitiesFile string
	Capabilities     profile.Set
	// capabilitiesErr is why CapabilitiesFile was not applied
	capabilitiesErr error

	// Outputs
	OutputDir string

	Log          LogConfig
	Registration RegistrationConfig
	A11y         A11yConfig
}

// LogConfig configures the framework logger
type LogConfig struct {
	Level string
	// File is the rotating JSON log; empty disables it (LOG_FILE=off)
	File string
}

// RegistrationConfig configures the customer registration API client
type RegistrationConfig struct {
	Environment string
	CertFile    string
	KeyFile     string
	CAFile      string
}

// A11yConfig configures the accessibility audit
type A11yConfig struct {
	// ConfigFile is an axe-style rule configuration (YAML or JSON)
	ConfigFile string
	// AxeSource is a path to axe.min.js; when set the in-browser auditor is used
	AxeSource string
}

// Default returns a Config with all default values
func Default() *Config {
	baseURL := fmt.Sprintf("https://%s:%s", DefaultHost, DefaultPort)
	return &Config{
		Host:                  DefaultHost,
		Port:                  DefaultPort,
		BaseURL:               baseURL,
		BasePath:              DefaultBasePath,
		DefaultTimeout:        DefaultTimeoutMillis,
		DefaultNetworkTimeout: DefaultTimeoutMillis * NetworkTimeoutFactor,
		PollInterval:          DefaultPollIntervalMillis,
		SeleniumPort:          DefaultSeleniumPort,
		ChromeDriverPath:      DefaultChromeDriverPath,
		ChromeDriverPort:      DefaultChromeDriverPort,
		Capabilities:          profile.Defaults(),
		OutputDir:             DefaultOutputDir,
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultOutputDir + "/e2e.log",
		},
	}
}

// FromEnv returns a Config with values from environment variables, falling back to defaults
func FromEnv() *Config {
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(EnvHost, DefaultHost)
	v.SetDefault(EnvPort, DefaultPort)
	v.SetDefault(EnvSeleniumPort, DefaultSeleniumPort)
	v.SetDefault(EnvChromeDriverPath, DefaultChromeDriverPath)
	v.SetDefault(EnvOutputDir, DefaultOutputDir)
	v.SetDefault(EnvLogLevel, DefaultLogLevel)

	return v
}

func fromViper(v *viper.Viper) *Config {
	cfg := Default()

	cfg.Port = v.GetString(EnvPort)
	rawBase := v.GetString(EnvBaseURL)
	if rawBase == "" {
		rawBase = fmt.Sprintf("https://%s:%s", v.GetString(EnvHost), cfg.Port)
	}
	cfg.BaseURL = strings.TrimSuffix(rawBase, "/")
	cfg.Host = v.GetString(EnvHost)
	if u, err := url.Parse(rawBase); err == nil && u.Hostname() != "" {
		cfg.Host = u.Hostname()
	}

	cfg.DefaultTimeout = positiveInt(v.GetString(EnvDefaultTimeout), DefaultTimeoutMillis)
	cfg.DefaultNetworkTimeout = cfg.DefaultTimeout * NetworkTimeoutFactor
	cfg.PollInterval = positiveInt(v.GetString(EnvPollInterval), DefaultPollIntervalMillis)

	cfg.IsSmokeTest = flag(v.GetString(EnvSmokeTesting))
	cfg.IsProd = flag(v.GetString(EnvIsProd))
	cfg.Headless = flag(v.GetString(EnvHeadless))

	cfg.SeleniumHost = v.GetString(EnvSeleniumHost)
	cfg.SeleniumPort = v.GetString(EnvSeleniumPort)
	cfg.ChromeDriverPath = v.GetString(EnvChromeDriverPath)
	cfg.ChromeDriverPort = positiveInt(v.GetString(EnvChromeDriverPort), DefaultChromeDriverPort)

	cfg.CapabilitiesFile = v.GetString(EnvCapabilitiesFile)
	if cfg.CapabilitiesFile != "" {
		set, err := profile.LoadSet(cfg.CapabilitiesFile)
		if err != nil {
			cfg.capabilitiesErr = fmt.Errorf("%s=%s: %w", EnvCapabilitiesFile, cfg.CapabilitiesFile, err)
		} else {
			cfg.Capabilities = set
		}
	}

	cfg.OutputDir = v.GetString(EnvOutputDir)
	cfg.Log.Level = v.GetString(EnvLogLevel)
	cfg.Log.File = cfg.OutputDir + "/e2e.log"
	if v.IsSet(EnvLogFile) {
		cfg.Log.File = v.GetString(EnvLogFile)
		if strings.EqualFold(cfg.Log.File, "off") || strings.EqualFold(cfg.Log.File, "none") {
			cfg.Log.File = ""
		}
	}

	cfg.Registration = RegistrationConfig{
		Environment: v.GetString(EnvRegistrationEnv),
		CertFile:    v.GetString(EnvRegistrationCert),
		KeyFile:     v.GetString(EnvRegistrationKey),
		CAFile:      v.GetString(EnvRegistrationCA),
	}
	cfg.A11y = A11yConfig{
		ConfigFile: v.GetString(EnvA11yConfig),
		AxeSource:  v.GetString(EnvA11yAxeSource),
	}

	return cfg
}

// positiveInt parses a base-10 integer, keeping def for malformed or non-positive input
func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// flag treats any non-empty value as set, except values that parse as false ("false", "0")
func flag(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return true
}

// DefaultTimeoutDuration returns DefaultTimeout as a time.Duration
func (c *Config) DefaultTimeoutDuration() time.Duration {
	return time.Duration(c.DefaultTimeout) * time.Millisecond
}

// NetworkTimeoutDuration returns DefaultNetworkTimeout as a time.Duration
func (c *Config) NetworkTimeoutDuration() time.Duration {
	return time.Duration(c.DefaultNetworkTimeout) * time.Millisecond
}

// PollIntervalDuration returns PollInterval as a time.Duration
func (c *Config) PollIntervalDuration() time.Duration {
	return time.Duration(c.PollInterval) * time.Millisecond
}

// GridURL is the remote WebDriver endpoint, empty when no grid host is configured
func (c *Config) GridURL() string {
	if c.SeleniumHost == "" {
		return ""
	}
	port := c.SeleniumPort
	if port == "" {
		port = DefaultSeleniumPort
	}
	return fmt.Sprintf("http://%s:%s/wd/hub", c.SeleniumHost, port)
}

// Validate reports settings that were read but could not be applied. A
// config with a bad CAPABILITIES_FILE still carries the built-in profiles.
func (c *Config) Validate() error {
	return c.capabilitiesErr
}

// Capability returns the capability profile for mode
func (c *Config) Capability(mode profile.Mode) *profile.Profile {
	return c.Capabilities.Get(mode)
}

// PageURL joins the base URL, the base path and a page path
func (c *Config) PageURL(path string) string {
	return c.BaseURL + c.BasePath + strings.TrimPrefix(path, "/")
}

// WithBaseURL returns a copy with an updated, normalised base URL
func (c *Config) WithBaseURL(raw string) *Config {
	cp := *c
	cp.BaseURL = strings.TrimSuffix(raw, "/")
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		cp.Host = u.Hostname()
	}
	return &cp
}

// WithDefaultTimeout returns a copy with updated default and network timeouts
func (c *Config) WithDefaultTimeout(ms int) *Config {
	cp := *c
	cp.DefaultTimeout = ms
	cp.DefaultNetworkTimeout = ms * NetworkTimeoutFactor
	return &cp
}

// WithPollInterval returns a copy with updated poll interval
func (c *Config) WithPollInterval(ms int) *Config {
	cp := *c
	cp.PollInterval = ms
	return &cp
}

// WithSeleniumHost returns a copy targeting a remote grid
func (c *Config) WithSeleniumHost(host string) *Config {
	cp := *c
	cp.SeleniumHost = host
	return &cp
}

// WithHeadless returns a copy with updated headless flag
func (c *Config) WithHeadless(headless bool) *Config {
	cp := *c
	cp.Headless = headless
	return &cp
}

// WithOutputDir returns a copy writing artifacts under dir
func (c *Config) WithOutputDir(dir string) *Config {
	cp := *c
	cp.OutputDir = dir
	return &cp
}

// WithRegistration returns a copy with updated registration settings
func (c *Config) WithRegistration(r RegistrationConfig) *Config {
	cp := *c
	cp.Registration = r
	return &cp
}
