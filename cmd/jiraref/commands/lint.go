package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bartekus/jiraref/cmd/jiraref/internal/clierr"
	"github.com/bartekus/jiraref/internal/config"
	"github.com/bartekus/jiraref/internal/gitlog"
	"github.com/bartekus/jiraref/internal/report"
	"github.com/bartekus/jiraref/internal/rule"
	"github.com/bartekus/jiraref/internal/rules"
)

// NewLintCommand returns the `jiraref lint` command.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Lint a commit message",
		Long: `Lint a commit message read from a file, --message, --edit, a git range or stdin.

As a commit-msg hook:

  jiraref lint "$1"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLint,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().BoolP("edit", "e", false, "Read the pending message from .git/COMMIT_EDITMSG")
	cmd.Flags().String("format", "text", "Output format: text (default) or json")
	cmd.Flags().String("from", "", "Lint commits after this revision (exclusive)")
	cmd.Flags().StringP("message", "m", "", "Lint this message")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("report-dir", "", "Write last-run.json to this directory")
	cmd.Flags().String("to", "", "Lint commits up to this revision (default: HEAD when --from is set)")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := config.GetLogger(ctx)

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return clierr.Usagef("invalid format: %s (must be 'text' or 'json')", format)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Resolve(ctx, cmd.Flags(), wd)
	if err != nil {
		return clierr.Wrap(clierr.CodeUsage, "loading config", err)
	}

	inputs, err := readInputs(cmd, args, wd)
	if err != nil {
		return err
	}
	log.DebugContext(ctx, "linting", "commits", len(inputs), "config", cfg.Path)

	var store *rule.StateStore
	if dir, _ := cmd.Flags().GetString("report-dir"); dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(wd, dir)
		}
		store = rule.NewStateStore(dir)
	}

	runner := rule.NewRunner(rules.Registry(), cfg.Rules, store, log)
	last, err := runner.LintAll(ctx, inputs)
	if err != nil {
		return fmt.Errorf("linting: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if err := report.WriteJSON(out, last); err != nil {
			return err
		}
	default:
		noColor, _ := cmd.Flags().GetBool("no-color")
		if err := report.WriteText(out, last, !noColor && report.IsTerminal(out)); err != nil {
			return fmt.Errorf("writing text output: %w", err)
		}
	}

	if last.Status == rule.StatusFail {
		return clierr.New(clierr.CodeLintFailed, "commit message lint failed")
	}
	return nil
}

// readInputs collects the messages to lint from exactly one source.
func readInputs(cmd *cobra.Command, args []string, wd string) ([]rule.Input, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()

	message, _ := flags.GetString("message")
	edit, _ := flags.GetBool("edit")
	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	rangeSet := flags.Changed("from") || flags.Changed("to")

	sources := 0
	for _, set := range []bool{flags.Changed("message"), edit, rangeSet, len(args) == 1} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, clierr.Usagef("use only one of [file], --message, --edit or --from/--to")
	}

	switch {
	case flags.Changed("message"):
		return []rule.Input{{Message: message}}, nil

	case len(args) == 1:
		data, err := os.ReadFile(args[0]) //nolint:gosec // G304: path is the user's commit message file
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeUsage, "reading commit message", err)
		}
		return []rule.Input{{Message: string(data)}}, nil

	case edit:
		msg, err := gitlog.New(wd).ReadEditMsg(ctx)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeGit, "reading pending commit message", err)
		}
		return []rule.Input{{Message: msg}}, nil

	case rangeSet:
		var history gitlog.HistorySource = gitlog.New(wd)
		commits, err := history.Commits(ctx, from, to)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeGit, "reading git history", err)
		}
		inputs := make([]rule.Input, 0, len(commits))
		for _, c := range commits {
			inputs = append(inputs, rule.Input{SHA: c.SHA, Message: c.Message})
		}
		return inputs, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, clierr.Usagef("no commit message: pass a file, --message, --edit or --from/--to, or pipe one on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "reading stdin", err)
	}
	if len(data) == 0 {
		return nil, clierr.Usagef("no commit message on stdin")
	}
	return []rule.Input{{Message: string(data)}}, nil
}
