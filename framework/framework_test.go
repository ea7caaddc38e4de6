package framework

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/driver"
	"github.com/redhat/browser-e2e-tests/test/framework/internal/fakewd"
	"github.com/redhat/browser-e2e-tests/test/framework/report"
)

// newFramework returns a framework over fake browsers; the slice fills as
// sessions are opened
func newFramework(t *testing.T, cfg *config.Config, opts ...Option) (*Framework, *[]*fakewd.Driver) {
	t.Helper()
	drivers := &[]*fakewd.Driver{}
	factory := func(context.Context) (*driver.Session, error) {
		wd := fakewd.New()
		*drivers = append(*drivers, wd)
		return driver.Wrap(wd, driver.Target{Mode: driver.ModeLocal}), nil
	}
	opts = append([]Option{
		WithConfig(cfg),
		WithLogger(zap.NewNop()),
		WithSessionFactory(factory),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)

	fw, err := New(opts...)
	require.NoError(t, err)
	return fw, drivers
}

func TestNew_InvalidA11yConfig(t *testing.T) {
	cfg := config.Default()
	cfg.A11y.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(WithConfig(cfg), WithLogger(zap.NewNop()))
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestCleanup_QuitsLeftoverSessions(t *testing.T) {
	fw, _ := newFramework(t, config.Default().WithOutputDir(t.TempDir()))

	closed, err := fw.NewSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, closed.Quit())

	leftover, err := fw.NewSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*driver.Session{leftover}, fw.TrackedSessions(), "quit sessions are pruned")

	require.NoError(t, fw.Cleanup())
	assert.True(t, leftover.Closed())
	assert.Empty(t, fw.TrackedSessions())
}

func TestTrackSession_ForgetsTornDownSessions(t *testing.T) {
	fw, drivers := newFramework(t, config.Default().WithOutputDir(t.TempDir()))
	hooks := fw.Hooks()

	for i := 0; i < 5; i++ {
		tc := &TestContext{Titles: []string{"basket", "spec"}}
		require.NoError(t, hooks.Start(context.Background(), tc))
		require.NoError(t, hooks.Finish(tc, StatePassed, ""))
		require.NoError(t, hooks.Teardown(tc))
	}
	assert.Len(t, *drivers, 5)
	assert.LessOrEqual(t, len(fw.TrackedSessions()), 1)

	require.NoError(t, fw.Cleanup())
	for _, wd := range *drivers {
		assert.Equal(t, 1, wd.Quits())
	}
}

func TestNew_InvalidCapabilitiesFile(t *testing.T) {
	for _, env := range []string{config.EnvA11yConfig, config.EnvA11yAxeSource} {
		t.Setenv(env, "")
	}
	missing := filepath.Join(t.TempDir(), "caps.yaml")
	t.Setenv(config.EnvCapabilitiesFile, missing)

	_, err := New(WithLogger(zap.NewNop()))
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	assert.Contains(t, err.Error(), missing)
}

func TestCleanup_CollectsQuitErrors(t *testing.T) {
	fw, _ := newFramework(t, config.Default())
	wd := fakewd.New().Fail("Quit", errors.New("invalid session id"))
	fw.TrackSession(driver.Wrap(wd, driver.Target{Mode: driver.ModeRemote}))

	err := fw.Cleanup()
	var ce *CleanupError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "session quit", ce.Phase)
	assert.Contains(t, err.Error(), "quit remote session")
}

func TestWriteReport(t *testing.T) {
	out := t.TempDir()
	fw, _ := newFramework(t, config.Default().WithOutputDir(out))
	hooks := fw.Hooks()

	for _, state := range []State{StatePassed, StateFailed} {
		tc := &TestContext{Titles: []string{"checkout", string(state)}}
		require.NoError(t, hooks.Start(context.Background(), tc))
		require.NoError(t, hooks.Finish(tc, state, ""))
		require.NoError(t, hooks.Teardown(tc))
	}

	index, err := fw.WriteReport()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, ReportDir, "index.html"), index)

	run, err := report.LoadJSON(filepath.Join(out, ReportDir, "results.json"))
	require.NoError(t, err)
	assert.Equal(t, fw.RunID(), run.ID)
	assert.Equal(t, 1, run.Summary().Passed)
	assert.Equal(t, 1, run.Summary().Failed)

	csv, err := os.ReadFile(filepath.Join(out, ReportDir, "results.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(csv), "\n"))
}

func TestClose_WritesReportAfterCleanup(t *testing.T) {
	out := t.TempDir()
	fw, drivers := newFramework(t, config.Default().WithOutputDir(out))
	_, err := fw.NewSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, fw.Close())
	require.Len(t, *drivers, 1)
	assert.Equal(t, 1, (*drivers)[0].Quits())
	_, err = os.Stat(filepath.Join(out, ReportDir, "index.html"))
	assert.NoError(t, err)
}

func gridServer(t *testing.T, ready bool) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wd/hub/status" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"value": map[string]interface{}{"ready": ready, "message": "Selenium Grid ready."},
		})
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	cfg := config.Default().WithSeleniumHost(u.Hostname()).WithOutputDir(t.TempDir())
	cfg.SeleniumPort = u.Port()
	return cfg
}

func TestCheckPrerequisites_Grid(t *testing.T) {
	fw, _ := newFramework(t, gridServer(t, true))

	result, err := fw.CheckPrerequisites(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AllMet, result.String())
	assert.Contains(t, result.String(), "✓ Selenium grid")
}

func TestCheckPrerequisites_GridNotReady(t *testing.T) {
	fw, _ := newFramework(t, gridServer(t, false))

	result, err := fw.CheckPrerequisites(context.Background())
	require.NoError(t, err)
	assert.False(t, result.AllMet)
	assert.False(t, result.Browser.Ready)
	assert.Contains(t, result.Browser.Message, ErrGridNotReady.Error())
	assert.Contains(t, result.String(), "✗ Selenium grid")
}

func TestCheckPrerequisites_LocalDriverMissing(t *testing.T) {
	cfg := config.Default().WithOutputDir(t.TempDir())
	cfg.ChromeDriverPath = filepath.Join(t.TempDir(), "no-such-chromedriver")
	fw, _ := newFramework(t, cfg)

	result, err := fw.CheckPrerequisites(context.Background())
	require.NoError(t, err)
	assert.False(t, result.AllMet)
	assert.Equal(t, "chromedriver", result.Browser.Name)
	assert.True(t, result.Output.Ready)
}
