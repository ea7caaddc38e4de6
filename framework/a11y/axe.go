package a11y

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const axeRunScript = `
var done = arguments[arguments.length - 1];
var opts = arguments[0];
if (typeof axe === 'undefined') {
  done(JSON.stringify({error: 'axe-core is not loaded'}));
  return;
}
axe.configure(JSON.parse(opts.config));
axe.run({exclude: [['iframe']]}, {resultTypes: ['violations']})
  .then(function (r) { done(JSON.stringify(r)); })
  .catch(function (e) { done(JSON.stringify({error: String(e)})); });
`

// AxeAuditor injects an axe-core build into the page and runs it there
type AxeAuditor struct {
	Source string
}

// NewAxeAuditor reads the axe-core script at path
func NewAxeAuditor(path string) (*AxeAuditor, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read axe-core source %s: %w", path, err)
	}
	return &AxeAuditor{Source: string(src)}, nil
}

type axeResponse struct {
	Results
	Error string `json:"error"`
}

// Audit implements Auditor
func (a *AxeAuditor) Audit(ctx context.Context, page Page, cfg RuleConfig) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.Source == "" {
		return nil, errors.New("axe-core source is empty")
	}

	if _, err := page.ExecuteScript(a.Source, nil); err != nil {
		return nil, fmt.Errorf("inject axe-core: %w", err)
	}

	config, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode rule config: %w", err)
	}
	out, err := page.ExecuteScriptAsync(axeRunScript, []interface{}{map[string]interface{}{"config": string(config)}})
	if err != nil {
		return nil, fmt.Errorf("run axe-core: %w", err)
	}

	raw, ok := out.(string)
	if !ok {
		return nil, fmt.Errorf("run axe-core: unexpected result %T", out)
	}
	var resp axeResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("decode axe-core results: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("run axe-core: %s", resp.Error)
	}
	if resp.Violations == nil {
		resp.Violations = []Violation{}
	}
	return &resp.Results, nil
}
