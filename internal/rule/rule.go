// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rule defines the commit-lint rule contract and a runner that
// applies configured rules to parsed commits.
package rule

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bartekus/jiraref/internal/commit"
)

// Level is the severity a rule is configured with: 0 off, 1 warning, 2 error.
type Level int

const (
	LevelOff Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalJSON writes the level by name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts either the level name or its number.
func (l *Level) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed, err := ParseLevel(n)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding level: %w", err)
	}
	switch s {
	case "off":
		*l = LevelOff
	case "warning":
		*l = LevelWarning
	case "error":
		*l = LevelError
	default:
		return fmt.Errorf("unknown level %q", s)
	}
	return nil
}

// ParseLevel validates a numeric severity.
func ParseLevel(n int) (Level, error) {
	if n < int(LevelOff) || n > int(LevelError) {
		return 0, fmt.Errorf("invalid rule level %d (must be 0, 1 or 2)", n)
	}
	return Level(n), nil
}

// When is the rule's direction. It is passed through to rules unchanged.
type When string

const (
	Always When = "always"
	Never  When = "never"
)

// ParseWhen validates a direction string; empty means Always.
func ParseWhen(s string) (When, error) {
	switch When(strings.ToLower(strings.TrimSpace(s))) {
	case "", Always:
		return Always, nil
	case Never:
		return Never, nil
	default:
		return "", fmt.Errorf("unknown rule condition %q (must be 'always' or 'never')", s)
	}
}

// Rule is a single commit-lint check.
type Rule interface {
	// Name returns the unique rule identifier (e.g. "jira-task").
	Name() string

	// Validate checks one commit. value is the rule's raw configuration.
	Validate(c commit.Parsed, when When, value any) Outcome
}

// Setting is a rule's configured [level, when, value] triple.
type Setting struct {
	Level Level
	When  When
	Value any
}
