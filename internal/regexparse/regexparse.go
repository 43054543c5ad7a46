// SPDX-License-Identifier: AGPL-3.0-or-later

// Package regexparse turns regex-literal strings such as "/abc/gi" into
// compiled patterns.
//
// The accepted notation is an optional "/body/flags" wrapper around an RE2
// pattern. When the flag run is malformed the whole input is compiled as-is,
// so strings that merely look delimited keep their slashes.
package regexparse

import (
	"fmt"
	"regexp"
	"strings"
)

// KnownFlags lists every flag letter the parser accepts.
const KnownFlags = "gmixXsuUAJ"

var (
	// Group 1: body, Group 2: trailing letters. The body is greedy, so the
	// closing delimiter is the last slash on the first line.
	delimitedRe = regexp.MustCompile(`^/(.+)/([a-zA-Z]*)`)
	bareRe      = regexp.MustCompile(`.+`)
)

// InvalidInputError is returned when the input cannot describe a pattern.
type InvalidInputError struct {
	Input any
}

func (e *InvalidInputError) Error() string {
	if s, ok := e.Input.(string); ok && s == "" {
		return "Invalid input. Input must be a non-empty string"
	}
	return "Invalid input. Input must be a string"
}

// Pattern is a compiled regular expression plus the flags it was built with.
// It holds no match cursor and is safe for concurrent use.
type Pattern struct {
	re     *regexp.Regexp
	source string
	flags  string
}

// Match is a single match returned by FindAll.
type Match struct {
	Text   string
	Index  int
	Groups []string
}

// Parse builds a Pattern from input. Non-string input yields *InvalidInputError.
func Parse(input any) (*Pattern, error) {
	s, ok := input.(string)
	if !ok {
		return nil, &InvalidInputError{Input: input}
	}

	body, flags, ok := split(s)
	if !ok {
		return nil, &InvalidInputError{Input: s}
	}

	if flags != "" && !validFlags(flags) {
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", s, err)
		}
		return &Pattern{re: re, source: s}, nil
	}

	re, err := compile(body, flags)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", s, err)
	}
	return &Pattern{re: re, source: body, flags: flags}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) *Pattern {
	p, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return p
}

func split(s string) (body, flags string, ok bool) {
	if m := delimitedRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	if m := bareRe.FindString(s); m != "" {
		return m, "", true
	}
	return "", "", false
}

// validFlags reports whether every letter is known and none repeats.
func validFlags(flags string) bool {
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if !strings.ContainsRune(KnownFlags, f) || seen[f] {
			return false
		}
		seen[f] = true
	}
	return true
}

func compile(body, flags string) (*regexp.Regexp, error) {
	if strings.ContainsRune(flags, 'x') {
		body = stripFreeSpacing(body)
	}
	if strings.ContainsRune(flags, 'A') {
		body = `\A(?:` + body + `)`
	}

	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
			inline.WriteRune(f)
		}
		// g is kept on the Pattern; u, X and J already hold for RE2.
	}
	if inline.Len() > 0 {
		body = "(?" + inline.String() + ")" + body
	}
	return regexp.Compile(body)
}

// stripFreeSpacing drops unescaped whitespace and #-comments outside
// character classes.
func stripFreeSpacing(body string) string {
	var b strings.Builder
	escaped, inClass, inComment := false, false, false
	for _, r := range body {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
			continue
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '#':
			inComment = true
			continue
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Source returns the pattern body as compiled, without flags.
func (p *Pattern) Source() string { return p.source }

// Flags returns the accepted flag letters, empty after a fallback.
func (p *Pattern) Flags() string { return p.flags }

// Global reports whether the g flag was set.
func (p *Pattern) Global() bool { return strings.ContainsRune(p.flags, 'g') }

// Test reports whether s contains a match.
func (p *Pattern) Test(s string) bool { return p.re.MatchString(s) }

// FindAll returns the non-overlapping matches in s, left to right.
// Without the g flag only the first match is returned.
func (p *Pattern) FindAll(s string) []Match {
	n := 1
	if p.Global() {
		n = -1
	}

	locs := p.re.FindAllStringSubmatchIndex(s, n)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		m := Match{Text: s[loc[0]:loc[1]], Index: loc[0]}
		for i := 2; i+1 < len(loc); i += 2 {
			if loc[i] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, s[loc[i]:loc[i+1]])
		}
		matches = append(matches, m)
	}
	return matches
}

// Count returns len(FindAll(s)).
func (p *Pattern) Count(s string) int { return len(p.FindAll(s)) }

func (p *Pattern) String() string {
	return "/" + p.source + "/" + p.flags
}
