// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jiratask implements the "jira-task" commit rule: the header must
// cite exactly one issue of the configured project, written as "(PROJ-123)".
//
// Chore commits may omit the reference, but a header that names the project
// more than once is rejected regardless of type.
package jiratask

import (
	"fmt"
	"regexp"

	"github.com/bartekus/jiraref/internal/commit"
	"github.com/bartekus/jiraref/internal/regexparse"
	"github.com/bartekus/jiraref/internal/rule"
)

// Name is the rule identifier used in configuration.
const Name = "jira-task"

const choreType = "chore"

// Rule adapts Validate to the rule.Rule interface.
type Rule struct{}

// New returns the jira-task rule.
func New() rule.Rule { return Rule{} }

func (Rule) Name() string { return Name }

// Validate decodes the raw rule value and validates c against it.
func (Rule) Validate(c commit.Parsed, when rule.When, value any) rule.Outcome {
	cfg, err := DecodeConfig(value)
	if err != nil {
		return rule.Fail(err)
	}
	return Validate(c, when, cfg)
}

// Validate checks that c's header cites exactly one well-formed task of
// cfg.ProjectName. A nil cfg, or one without a project name, always passes.
// when is accepted for host compatibility and does not change the result.
func Validate(c commit.Parsed, _ rule.When, cfg *Config) rule.Outcome {
	if cfg == nil || cfg.ProjectName == nil {
		return rule.Pass()
	}

	projectName, ok := cfg.ProjectName.(string)
	if !ok {
		return rule.Fail(&ConfigurationError{ActualType: typeName(cfg.ProjectName)})
	}

	isChore := c.Type == choreType

	loose, strict, err := buildPatterns(projectName)
	if err != nil {
		return rule.Fail(err)
	}

	switch n := loose.Count(c.Header); {
	case n == 0 && !isChore:
		return rule.Fail(&ValidationFailure{Kind: KindMissing, ProjectName: projectName})
	case n > 1:
		return rule.Fail(&ValidationFailure{Kind: KindDuplicate, ProjectName: projectName})
	}

	if !strict.Test(c.Header) && !isChore {
		return rule.Fail(&ValidationFailure{Kind: KindMalformed, ProjectName: projectName})
	}

	return rule.Pass()
}

// buildPatterns returns the pattern counting bare project-name tokens and
// the pattern matching a canonical " (NAME-123)" citation. The name is
// matched literally.
func buildPatterns(projectName string) (loose, strict *regexparse.Pattern, err error) {
	quoted := regexp.QuoteMeta(projectName)

	loose, err = regexparse.Parse("/" + quoted + "/g")
	if err != nil {
		return nil, nil, fmt.Errorf("building project name pattern: %w", err)
	}

	strict, err = regexparse.Parse(`/\s\(` + quoted + `-(\d+)\)(?:\W|$)/g`)
	if err != nil {
		return nil, nil, fmt.Errorf("building task reference pattern: %w", err)
	}
	return loose, strict, nil
}

// TaskIDs returns the numeric ids of every canonical citation of projectName in header.
func TaskIDs(header, projectName string) ([]string, error) {
	_, strict, err := buildPatterns(projectName)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, m := range strict.FindAll(header) {
		ids = append(ids, m.Groups[0])
	}
	return ids, nil
}
