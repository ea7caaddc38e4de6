package a11y

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Rule switches a single rule on or off
type Rule struct {
	ID      string `json:"id"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// RuleConfig is the subset of axe.configure the suite uses. It is read from
// YAML or JSON.
type RuleConfig struct {
	Rules []Rule `json:"rules,omitempty"`
}

// Enabled reports whether rule id should run. Unlisted rules run.
func (c RuleConfig) Enabled(id string) bool {
	for _, r := range c.Rules {
		if r.ID == id && r.Enabled != nil {
			return *r.Enabled
		}
	}
	return true
}

// LoadRuleConfig reads a rule config file. An empty path yields the empty
// config, which enables every rule.
func LoadRuleConfig(path string) (RuleConfig, error) {
	var cfg RuleConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read a11y config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse a11y config %s: %w", path, err)
	}
	for i, r := range cfg.Rules {
		if r.ID == "" {
			return cfg, fmt.Errorf("a11y config %s: rule %d has no id", path, i)
		}
	}
	return cfg, nil
}
