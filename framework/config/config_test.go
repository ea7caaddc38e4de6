package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/redhat/browser-e2e-tests/test/framework/profile"
)

var allEnv = []string{
	EnvHost, EnvPort, EnvBaseURL, EnvSeleniumHost, EnvSeleniumPort, EnvHeadless,
	EnvSmokeTesting, EnvDefaultTimeout, EnvIsProd, EnvPollInterval,
	EnvChromeDriverPath, EnvChromeDriverPort, EnvOutputDir, EnvCapabilitiesFile,
	EnvLogLevel, EnvLogFile, EnvRegistrationEnv, EnvRegistrationCert,
	EnvRegistrationKey, EnvRegistrationCA, EnvA11yConfig, EnvA11yAxeSource,
}

// clearEnv unsets every variable the resolver reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allEnv {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultTimeout != 10000 {
		t.Errorf("expected DefaultTimeout 10000, got %d", cfg.DefaultTimeout)
	}
	if cfg.DefaultNetworkTimeout != 60000 {
		t.Errorf("expected DefaultNetworkTimeout 60000, got %d", cfg.DefaultNetworkTimeout)
	}
	if cfg.BaseURL != "https://127.0.0.1:3000" {
		t.Errorf("expected default BaseURL, got %q", cfg.BaseURL)
	}
	if cfg.BasePath != "/m/" {
		t.Errorf("expected BasePath /m/, got %q", cfg.BasePath)
	}
	if cfg.GridURL() != "" {
		t.Errorf("expected no grid by default, got %q", cfg.GridURL())
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	if cfg.DefaultTimeout != 10000 || cfg.DefaultNetworkTimeout != 60000 {
		t.Errorf("expected 10000/60000, got %d/%d", cfg.DefaultTimeout, cfg.DefaultNetworkTimeout)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("expected Host %q, got %q", DefaultHost, cfg.Host)
	}
	if cfg.BaseURL != "https://127.0.0.1:3000" {
		t.Errorf("expected BaseURL https://127.0.0.1:3000, got %q", cfg.BaseURL)
	}
	if cfg.IsSmokeTest || cfg.IsProd || cfg.Headless {
		t.Errorf("expected all flags false, got smoke=%v prod=%v headless=%v", cfg.IsSmokeTest, cfg.IsProd, cfg.Headless)
	}
	if cfg.Log.File != "output/e2e.log" {
		t.Errorf("expected default log file, got %q", cfg.Log.File)
	}
	if cfg.Capability(profile.ModeHeadless).Name != "headless" {
		t.Errorf("expected built-in headless profile")
	}
}

func TestFromEnv_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "shop.local")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvDefaultTimeout, "2500")
	t.Setenv(EnvSmokeTesting, "1")
	t.Setenv(EnvIsProd, "yes")
	t.Setenv(EnvHeadless, "true")
	t.Setenv(EnvSeleniumHost, "grid")
	t.Setenv(EnvOutputDir, "/tmp/out")
	t.Setenv(EnvLogFile, "off")
	t.Setenv(EnvRegistrationEnv, "qa")

	cfg := FromEnv()

	if cfg.BaseURL != "https://shop.local:8443" {
		t.Errorf("expected BaseURL from HOST/PORT, got %q", cfg.BaseURL)
	}
	if cfg.DefaultTimeout != 2500 || cfg.DefaultNetworkTimeout != 15000 {
		t.Errorf("expected 2500/15000, got %d/%d", cfg.DefaultTimeout, cfg.DefaultNetworkTimeout)
	}
	if cfg.DefaultTimeoutDuration() != 2500*time.Millisecond {
		t.Errorf("unexpected duration %v", cfg.DefaultTimeoutDuration())
	}
	if !cfg.IsSmokeTest || !cfg.IsProd || !cfg.Headless {
		t.Errorf("expected all flags true, got smoke=%v prod=%v headless=%v", cfg.IsSmokeTest, cfg.IsProd, cfg.Headless)
	}
	if cfg.GridURL() != "http://grid:4444/wd/hub" {
		t.Errorf("unexpected GridURL %q", cfg.GridURL())
	}
	if cfg.Log.File != "" {
		t.Errorf("expected file logging disabled, got %q", cfg.Log.File)
	}
	if cfg.OutputDir != "/tmp/out" || cfg.Registration.Environment != "qa" {
		t.Errorf("unexpected output/registration %q/%q", cfg.OutputDir, cfg.Registration.Environment)
	}
}

func TestFromEnv_BaseURLTrailingSlash(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://example.com/")

	cfg := FromEnv()

	if cfg.BaseURL != "https://example.com" {
		t.Errorf("expected trailing slash stripped, got %q", cfg.BaseURL)
	}
	if cfg.Host != "example.com" {
		t.Errorf("expected host from BASE_URL, got %q", cfg.Host)
	}
	if got := cfg.PageURL("path/x"); got != "https://example.com/m/path/x" {
		t.Errorf("unexpected PageURL %q", got)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	clearEnv(t)
	// Should fall back to defaults for invalid values
	t.Setenv(EnvDefaultTimeout, "invalid")
	t.Setenv(EnvPollInterval, "-5")
	t.Setenv(EnvChromeDriverPort, "0")

	cfg := FromEnv()

	if cfg.DefaultTimeout != DefaultTimeoutMillis {
		t.Errorf("expected default DefaultTimeout, got %d", cfg.DefaultTimeout)
	}
	if cfg.DefaultNetworkTimeout != DefaultTimeoutMillis*NetworkTimeoutFactor {
		t.Errorf("expected default network timeout, got %d", cfg.DefaultNetworkTimeout)
	}
	if cfg.PollInterval != DefaultPollIntervalMillis {
		t.Errorf("expected default PollInterval, got %d", cfg.PollInterval)
	}
	if cfg.ChromeDriverPort != DefaultChromeDriverPort {
		t.Errorf("expected default ChromeDriverPort, got %d", cfg.ChromeDriverPort)
	}
}

func TestFromEnv_FalseFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvIsProd, "0")

	cfg := FromEnv()

	if cfg.Headless || cfg.IsProd {
		t.Errorf("expected explicit false values to clear flags, got headless=%v prod=%v", cfg.Headless, cfg.IsProd)
	}
}

func TestFromEnv_CapabilitiesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "caps.yaml")
	content := "profiles:\n  standard:\n    browserName: firefox\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write caps: %v", err)
	}
	t.Setenv(EnvCapabilitiesFile, path)

	cfg := FromEnv()
	if got := cfg.Capability(profile.ModeStandard).BrowserName; got != "firefox" {
		t.Errorf("expected firefox from file, got %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	missing := filepath.Join(dir, "missing.yaml")
	t.Setenv(EnvCapabilitiesFile, missing)
	cfg = FromEnv()
	if got := cfg.Capability(profile.ModeStandard).BrowserName; got != "chrome" {
		t.Errorf("expected built-in chrome for missing file, got %q", got)
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("expected validation error naming %s, got %v", missing, err)
	}
}

func TestFromEnv_NetworkTimeoutIsSixTimes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ms := rapid.IntRange(1, 1_000_000).Draw(rt, "ms")
		v := newViper()
		v.Set(EnvDefaultTimeout, ms)

		cfg := fromViper(v)
		if cfg.DefaultTimeout != ms {
			rt.Fatalf("expected DefaultTimeout %d, got %d", ms, cfg.DefaultTimeout)
		}
		if cfg.DefaultNetworkTimeout != 6*ms {
			rt.Fatalf("expected network timeout %d, got %d", 6*ms, cfg.DefaultNetworkTimeout)
		}
	})
}

func TestWithDefaultTimeout(t *testing.T) {
	cfg := Default()
	newCfg := cfg.WithDefaultTimeout(500)

	// Original should be unchanged
	if cfg.DefaultTimeout != DefaultTimeoutMillis {
		t.Error("original config was modified")
	}

	if newCfg.DefaultTimeout != 500 || newCfg.DefaultNetworkTimeout != 3000 {
		t.Errorf("expected 500/3000, got %d/%d", newCfg.DefaultTimeout, newCfg.DefaultNetworkTimeout)
	}
}

func TestWithBaseURL(t *testing.T) {
	cfg := Default()
	newCfg := cfg.WithBaseURL("http://localhost:9000/")

	if cfg.BaseURL != "https://127.0.0.1:3000" {
		t.Error("original config was modified")
	}
	if newCfg.BaseURL != "http://localhost:9000" || newCfg.Host != "localhost" {
		t.Errorf("unexpected BaseURL/Host %q/%q", newCfg.BaseURL, newCfg.Host)
	}
}

func TestChainedWith(t *testing.T) {
	cfg := Default().
		WithSeleniumHost("hub").
		WithHeadless(true).
		WithPollInterval(10).
		WithOutputDir("artifacts").
		WithRegistration(RegistrationConfig{Environment: "uat"})

	if cfg.GridURL() != "http://hub:4444/wd/hub" {
		t.Errorf("unexpected GridURL %q", cfg.GridURL())
	}
	if !cfg.Headless {
		t.Error("expected headless")
	}
	if cfg.PollIntervalDuration() != 10*time.Millisecond {
		t.Errorf("unexpected poll interval %v", cfg.PollIntervalDuration())
	}
	if cfg.OutputDir != "artifacts" || cfg.Registration.Environment != "uat" {
		t.Errorf("unexpected output/registration %q/%q", cfg.OutputDir, cfg.Registration.Environment)
	}
}
