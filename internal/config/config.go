// Package config loads jiraref's commitlint-style rule configuration.
//
// A config file looks like:
//
//	rules:
//	  jira-task: [2, always, {projectName: PROJ}]
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/jiraref/internal/rule"
	"github.com/bartekus/jiraref/internal/rules/jiratask"
)

// EnvProjectName overrides the jira-task project name when set.
const EnvProjectName = "JIRAREF_PROJECT_NAME"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// FileNames are the config file names looked up, in priority order.
var FileNames = []string{".jiraref.yaml", ".jiraref.yml"}

type file struct {
	Rules map[string][]any `yaml:"rules"`
}

// Config is a loaded configuration.
type Config struct {
	// Path is the file the config came from; empty for defaults.
	Path  string
	Rules map[string]rule.Setting
}

// Default returns a config with no rules enabled.
func Default() *Config {
	return &Config{Rules: map[string]rule.Setting{}}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the user or found by Find
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg := Default()
	names := make([]string, 0, len(f.Rules))
	for name := range f.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := parseSetting(f.Rules[name])
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		cfg.Rules[name] = s
	}
	return cfg, nil
}

// parseSetting reads a [level, when, value] triple. Only level is required.
func parseSetting(raw []any) (rule.Setting, error) {
	if len(raw) == 0 {
		return rule.Setting{}, fmt.Errorf("missing level")
	}
	if len(raw) > 3 {
		return rule.Setting{}, fmt.Errorf("expected [level, when, value], got %d elements", len(raw))
	}

	n, ok := raw[0].(int)
	if !ok {
		return rule.Setting{}, fmt.Errorf("level must be 0, 1 or 2, got %v", raw[0])
	}
	level, err := rule.ParseLevel(n)
	if err != nil {
		return rule.Setting{}, err
	}

	s := rule.Setting{Level: level, When: rule.Always}
	if len(raw) > 1 {
		w, ok := raw[1].(string)
		if !ok {
			return rule.Setting{}, fmt.Errorf("condition must be a string, got %v", raw[1])
		}
		if s.When, err = rule.ParseWhen(w); err != nil {
			return rule.Setting{}, err
		}
	}
	if len(raw) > 2 {
		s.Value = raw[2]
	}
	return s, nil
}

// Find searches upward from startDir for a config file.
// Returns empty string if none is found within maxUpwardSearchLevels.
func Find(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// SetProjectName enables jira-task for name, keeping an existing level and
// condition. Other keys of a map-shaped rule value are kept.
func (c *Config) SetProjectName(name string) {
	s, ok := c.Rules[jiratask.Name]
	if !ok || s.Level == rule.LevelOff {
		s = rule.Setting{Level: rule.LevelError, When: rule.Always}
	}

	value := map[string]any{}
	if m, ok := s.Value.(map[string]any); ok {
		for k, v := range m {
			value[k] = v
		}
	}
	value["projectName"] = name
	s.Value = value

	c.Rules[jiratask.Name] = s
}
