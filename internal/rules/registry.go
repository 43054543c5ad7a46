// Package rules lists the commit rules jiraref knows about.
package rules

import (
	"github.com/bartekus/jiraref/internal/rule"
	"github.com/bartekus/jiraref/internal/rules/jiratask"
)

// Registry returns the rules in the order they are run and reported.
func Registry() []rule.Rule {
	return []rule.Rule{
		jiratask.New(),
	}
}
