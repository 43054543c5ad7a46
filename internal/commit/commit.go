// Package commit parses raw commit messages into the fields lint rules read.
package commit

import (
	"regexp"
	"strings"
)

// headerRe matches a conventional-commits header:
//
//	type(scope)!: subject
//
// Group 1: type, Group 2: scope, Group 3: "!" marker, Group 4: subject.
var headerRe = regexp.MustCompile(`^(\w+)(?:\(([^()\r\n]*)\))?(!)?: (.*)$`)

// Parsed is a commit message split into header, body and conventional fields.
type Parsed struct {
	Type     string // e.g. "feat", "chore"; empty when the header is not conventional
	Scope    string
	Breaking bool
	Subject  string
	Header   string // first non-empty line
	Body     string
	Raw      string
}

// IsConventional reports whether the header carried a type.
func (p Parsed) IsConventional() bool { return p.Type != "" }

// Parse splits message the way git presents it to a commit-msg hook.
// Lines starting with '#' are dropped.
//
//	Parse("feat(auth): add login (PROJ-1)") → Parsed{Type:"feat", Scope:"auth", Subject:"add login (PROJ-1)"}
//	Parse("random message")                → Parsed{Header:"random message"}
func Parse(message string) Parsed {
	p := Parsed{Raw: message}

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return p
	}

	p.Header = lines[i]
	p.Body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))

	if m := headerRe.FindStringSubmatch(p.Header); m != nil {
		p.Type = m[1]
		p.Scope = m[2]
		p.Breaking = m[3] == "!"
		p.Subject = m[4]
	}
	return p
}
