// Package report renders lint runs for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bartekus/jiraref/internal/rule"
)

// colorScheme defines consistent colors for lint output.
// Green: pass, Red: error, Yellow: warning, Cyan: input header.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{s.success, s.fail, s.warn, s.label} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// IsTerminal reports whether w is a TTY that should receive colour.
// NO_COLOR is honoured through fatih/color.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteText writes one block per linted commit followed by a summary line.
func WriteText(w io.Writer, run rule.LastRun, colorize bool) error {
	s := newColorScheme(colorize)
	errs, warns := 0, 0

	for _, r := range run.Reports {
		input := r.Header
		if r.Commit != "" {
			input = fmt.Sprintf("%s (%s)", r.Header, shortSHA(r.Commit))
		}
		if _, err := fmt.Fprintf(w, "%s   input: %s\n", s.label.Sprint("⧗"), input); err != nil {
			return err
		}

		problems := 0
		for _, res := range r.Results {
			var mark string
			switch res.Status {
			case rule.StatusFail:
				mark = s.fail.Sprint("✖")
				errs++
			case rule.StatusWarn:
				mark = s.warn.Sprint("⚠")
				warns++
			default:
				continue
			}
			problems++
			if _, err := fmt.Fprintf(w, "%s   %s [%s]\n", mark, res.Outcome.Message, res.Rule); err != nil {
				return err
			}
		}
		if problems == 0 {
			if _, err := fmt.Fprintf(w, "%s   no problems\n", s.success.Sprint("✔")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	mark := s.success.Sprint("✔")
	switch {
	case errs > 0:
		mark = s.fail.Sprint("✖")
	case warns > 0:
		mark = s.warn.Sprint("⚠")
	}
	_, err := fmt.Fprintf(w, "%s   found %d problems, %d warnings\n", mark, errs, warns)
	return err
}

// WriteJSON writes run as indented JSON.
func WriteJSON(w io.Writer, run rule.LastRun) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
