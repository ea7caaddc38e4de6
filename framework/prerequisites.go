package framework

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"

	"github.com/redhat/browser-e2e-tests/test/framework/driver"
)

// PrerequisiteStatus represents the status of a single prerequisite
type PrerequisiteStatus struct {
	Name    string
	Ready   bool
	Message string
}

// PrerequisitesResult contains the results of all prerequisite checks
type PrerequisitesResult struct {
	Browser PrerequisiteStatus
	Output  PrerequisiteStatus
	AllMet  bool
}

// gridStatus is the body of GET /status
type gridStatus struct {
	Value struct {
		Ready   bool   `json:"ready"`
		Message string `json:"message"`
	} `json:"value"`
}

// CheckPrerequisites verifies a browser can be started and artifacts can be
// written. With a grid configured it asks the grid whether it is ready;
// otherwise it looks for the chromedriver binary.
func (f *Framework) CheckPrerequisites(ctx context.Context) (*PrerequisitesResult, error) {
	result := &PrerequisitesResult{AllMet: true}

	target := driver.Plan(f.config)
	if target.Mode == driver.ModeRemote {
		result.Browser = f.checkGrid(ctx, target.URL)
	} else {
		result.Browser = checkChromeDriver(f.config.ChromeDriverPath)
	}
	if !result.Browser.Ready {
		result.AllMet = false
	}

	result.Output = checkWritable(f.config.OutputDir)
	if !result.Output.Ready {
		result.AllMet = false
	}

	return result, nil
}

func (f *Framework) checkGrid(ctx context.Context, gridURL string) PrerequisiteStatus {
	status := PrerequisiteStatus{Name: "Selenium grid"}
	if err := f.probeGrid(ctx, gridURL); err != nil {
		status.Message = err.Error()
		return status
	}
	status.Ready = true
	status.Message = fmt.Sprintf("%s is ready", gridURL)
	return status
}

func (f *Framework) probeGrid(ctx context.Context, gridURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gridURL+"/status", nil)
	if err != nil {
		return NewPrerequisiteError("grid", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return NewPrerequisiteError("grid", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewPrerequisiteError("grid", fmt.Errorf("GET /status returned %s", resp.Status))
	}
	var body gridStatus
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return NewPrerequisiteError("grid", fmt.Errorf("decode /status: %w", err))
	}
	if !body.Value.Ready {
		return NewPrerequisiteError("grid", fmt.Errorf("%w: %s", ErrGridNotReady, body.Value.Message))
	}
	return nil
}

func checkChromeDriver(path string) PrerequisiteStatus {
	status := PrerequisiteStatus{Name: "chromedriver"}
	found, err := exec.LookPath(path)
	if err != nil {
		status.Message = fmt.Sprintf("%s not found: %v", path, err)
		return status
	}
	status.Ready = true
	status.Message = found
	return status
}

func checkWritable(dir string) PrerequisiteStatus {
	status := PrerequisiteStatus{Name: "output directory"}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		status.Message = err.Error()
		return status
	}
	f, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		status.Message = err.Error()
		return status
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	status.Ready = true
	status.Message = fmt.Sprintf("%s is writable", dir)
	return status
}

// String returns a human-readable summary of the prerequisites result
func (r *PrerequisitesResult) String() string {
	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}

	return fmt.Sprintf(
		"Prerequisites Check:\n"+
			"  %s %s: %s\n"+
			"  %s %s: %s\n"+
			"  All prerequisites met: %v",
		mark(r.Browser.Ready), r.Browser.Name, r.Browser.Message,
		mark(r.Output.Ready), r.Output.Name, r.Output.Message,
		r.AllMet,
	)
}
