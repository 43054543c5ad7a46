package rule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bartekus/jiraref/internal/commit"
)

// Runner applies configured rules to commits.
type Runner struct {
	rules    []Rule
	settings map[string]Setting
	store    *StateStore
	log      *slog.Logger
}

// NewRunner creates a runner. store may be nil, in which case nothing is persisted.
func NewRunner(rules []Rule, settings map[string]Setting, store *StateStore, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		rules:    rules,
		settings: settings,
		store:    store,
		log:      log,
	}
}

// Lint runs every enabled rule against c, in registration order.
// Rules without a setting, or with LevelOff, are reported as skipped.
func (r *Runner) Lint(ctx context.Context, c commit.Parsed) Report {
	report := Report{Header: c.Header, Status: StatusPass}

	for _, rl := range r.rules {
		id := rl.Name()
		setting, ok := r.settings[id]
		if !ok || setting.Level == LevelOff {
			r.log.DebugContext(ctx, "rule skipped", "rule", id)
			report.Results = append(report.Results, Result{Rule: id, Level: LevelOff, Status: StatusSkip})
			continue
		}

		out := rl.Validate(c, setting.When, setting.Value)
		res := Result{Rule: id, Level: setting.Level, Status: StatusPass, Outcome: out}

		if !out.Passed {
			res.Status = StatusWarn
			if setting.Level == LevelError {
				res.Status = StatusFail
				report.Status = StatusFail
			}
			r.log.DebugContext(ctx, "rule failed", "rule", id, "level", setting.Level.String(), "message", out.Message)
		} else {
			r.log.DebugContext(ctx, "rule passed", "rule", id)
		}

		report.Results = append(report.Results, res)
	}

	return report
}

// Input is a commit to lint, optionally tied to a revision.
type Input struct {
	SHA     string
	Message string
}

// LintAll parses and lints each input, then records the run.
// It returns an error only when the context is cancelled or state cannot be written;
// lint failures are reported through LastRun.Status.
func (r *Runner) LintAll(ctx context.Context, inputs []Input) (LastRun, error) {
	last := LastRun{Status: StatusPass}

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		report := r.Lint(ctx, commit.Parse(in.Message))
		report.Commit = in.SHA
		if !report.Valid() {
			last.Status = StatusFail
		}
		last.Reports = append(last.Reports, report)
	}

	if r.store != nil {
		if err := r.store.WriteLastRun(last); err != nil {
			return last, fmt.Errorf("writing last run: %w", err)
		}
	}
	return last, nil
}
