package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/internal/fakewd"
)

type fakeService struct {
	stops int
	err   error
}

func (f *fakeService) Stop() error {
	f.stops++
	return f.err
}

type recorder struct {
	wd      *fakewd.Driver
	caps    selenium.Capabilities
	url     string
	svc     *fakeService
	svcPath string
	svcPort int
	openErr error
}

func (r *recorder) opts() []Option {
	return []Option{
		WithRemote(func(caps selenium.Capabilities, url string) (selenium.WebDriver, error) {
			r.caps, r.url = caps, url
			if r.openErr != nil {
				return nil, r.openErr
			}
			return r.wd, nil
		}),
		WithService(func(path string, port int) (Stopper, error) {
			r.svcPath, r.svcPort = path, port
			return r.svc, nil
		}),
	}
}

func newRecorder() *recorder {
	return &recorder{wd: fakewd.New(), svc: &fakeService{}}
}

func chromeArgs(t *testing.T, caps selenium.Capabilities) []string {
	t.Helper()
	cc, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok, "chrome capabilities missing")
	return cc.Args
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		mode     Mode
		url      string
		profile  string
		timeout  string
		headless bool
	}{
		{
			name:    "grid wins over headless",
			cfg:     config.Default().WithSeleniumHost("grid.local").WithHeadless(true),
			mode:    ModeRemote,
			url:     "http://grid.local:4444/wd/hub",
			profile: "standard",
			timeout: "5s",
		},
		{
			name:     "headless local",
			cfg:      config.Default().WithHeadless(true),
			mode:     ModeLocal,
			url:      "http://localhost:9515/wd/hub",
			profile:  "headless",
			timeout:  "10s",
			headless: true,
		},
		{
			name:    "headed local",
			cfg:     config.Default(),
			mode:    ModeLocal,
			url:     "http://localhost:9515/wd/hub",
			profile: "standard",
			timeout: "10s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Plan(tt.cfg)
			assert.Equal(t, tt.mode, target.Mode)
			assert.Equal(t, tt.url, target.URL)
			assert.Equal(t, tt.profile, target.Profile.Name)
			assert.Equal(t, tt.timeout, target.ScriptTimeout.String())
			assert.Equal(t, tt.headless, target.Profile.HasArg("headless"))
		})
	}
}

func TestNew_Remote(t *testing.T) {
	r := newRecorder()
	cfg := config.Default().WithSeleniumHost("grid")

	s, err := New(context.Background(), cfg, r.opts()...)
	require.NoError(t, err)

	assert.Equal(t, "http://grid:4444/wd/hub", r.url)
	assert.Empty(t, r.svcPath, "no local service for a grid session")
	assert.Equal(t, RemoteScriptTimeout, r.wd.ScriptTimeout())
	assert.NotContains(t, chromeArgs(t, r.caps), "headless")

	require.NoError(t, s.Quit())
	require.NoError(t, s.Quit())
	assert.Equal(t, 1, r.wd.Quits())
	assert.True(t, s.Closed())
}

func TestNew_LocalHeadless(t *testing.T) {
	r := newRecorder()
	cfg := config.Default().WithHeadless(true)

	s, err := New(context.Background(), cfg, r.opts()...)
	require.NoError(t, err)

	assert.Equal(t, "chromedriver", r.svcPath)
	assert.Equal(t, 9515, r.svcPort)
	assert.Equal(t, LocalScriptTimeout, r.wd.ScriptTimeout())
	assert.Contains(t, chromeArgs(t, r.caps), "headless")
	assert.Equal(t, ModeLocal, s.Target().Mode)

	require.NoError(t, s.Quit())
	assert.Equal(t, 1, r.svc.stops)
}

func TestNew_ConnectionFailurePropagates(t *testing.T) {
	r := newRecorder()
	r.openErr = errors.New("connection refused")

	_, err := New(context.Background(), config.Default(), r.opts()...)
	require.ErrorIs(t, err, r.openErr)
	assert.Equal(t, 1, r.svc.stops, "local service stopped after failed session")
}

func TestNew_ScriptTimeoutFailureQuits(t *testing.T) {
	r := newRecorder()
	r.wd.Fail("SetAsyncScriptTimeout", errors.New("unsupported"))

	_, err := New(context.Background(), config.Default(), r.opts()...)
	require.Error(t, err)
	assert.Equal(t, 1, r.wd.Quits())
	assert.Equal(t, 1, r.svc.stops)
}

func TestNew_CancelledContext(t *testing.T) {
	r := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ctx, config.Default(), r.opts()...)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.url)
}

func TestSession_SaveScreenshot(t *testing.T) {
	wd := fakewd.New().SetScreenshot([]byte("\x89PNG fake"))
	s := Wrap(wd, Target{Mode: ModeRemote})
	path := filepath.Join(t.TempDir(), "nested", "shot.png")

	require.NoError(t, s.SaveScreenshot(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG fake"), data)

	wd.Fail("Screenshot", errors.New("no window"))
	assert.Error(t, s.SaveScreenshot(path))
}

func TestSession_A11yResults(t *testing.T) {
	s := Wrap(fakewd.New(), Target{})

	_, ok := s.TakeA11yResults()
	assert.False(t, ok)

	s.AttachA11yResults(map[string]int{"violations": 2})
	r, ok := s.TakeA11yResults()
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"violations": 2}, r)

	_, ok = s.TakeA11yResults()
	assert.False(t, ok, "results are taken once")
}

func TestSession_QuitJoinsErrors(t *testing.T) {
	wd := fakewd.New().Fail("Quit", errors.New("invalid session id"))
	svc := &fakeService{err: errors.New("process gone")}
	s := &Session{WebDriver: wd, service: svc, logger: zap.NewNop()}

	err := s.Quit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session id")
	assert.Contains(t, err.Error(), "process gone")
}
