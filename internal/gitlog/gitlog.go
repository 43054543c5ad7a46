// Package gitlog reads commit messages from a git repository.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	fieldSep  = "\x00"
	recordSep = "\x1e"
)

// Commit is a single commit's identity and full message.
type Commit struct {
	SHA     string
	Message string
}

// HistorySource provides commit history for linting.
type HistorySource interface {
	Commits(ctx context.Context, from, to string) ([]Commit, error)
}

// Source reads history by shelling out to git.
type Source struct {
	repoRoot string
}

var _ HistorySource = (*Source)(nil)

// New creates a Source for the repository at repoRoot.
func New(repoRoot string) *Source {
	return &Source{repoRoot: repoRoot}
}

// Commits returns the commits reachable from to but not from from, oldest first.
// An empty from lists the whole history of to; an empty to means HEAD.
func (s *Source) Commits(ctx context.Context, from, to string) ([]Commit, error) {
	if to == "" {
		to = "HEAD"
	}
	rev := to
	if from != "" {
		rev = from + ".." + to
	}

	// %B is the raw body; NUL and RS keep messages with blank lines intact.
	cmd := exec.CommandContext(ctx, "git", "log", "--reverse", "--format=%H"+"%x00"+"%B"+"%x1e", rev, "--")
	cmd.Dir = s.repoRoot
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("git log %s failed: %s: %w", rev, strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return nil, fmt.Errorf("git log %s failed: %w", rev, err)
	}

	return parseLog(string(out)), nil
}

func parseLog(out string) []Commit {
	var commits []Commit
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		sha, msg, ok := strings.Cut(rec, fieldSep)
		if !ok {
			continue
		}
		commits = append(commits, Commit{SHA: sha, Message: strings.TrimRight(msg, "\n")})
	}
	return commits
}

// EditMsgPath returns the path of the message git hands to commit-msg hooks.
func (s *Source) EditMsgPath(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = s.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --git-dir failed: %w", err)
	}

	gitDir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(s.repoRoot, gitDir)
	}
	return filepath.Join(gitDir, "COMMIT_EDITMSG"), nil
}

// ReadEditMsg reads the pending commit message.
func (s *Source) ReadEditMsg(ctx context.Context) (string, error) {
	path, err := s.EditMsgPath(ctx)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from git itself
	if err != nil {
		return "", fmt.Errorf("reading commit message: %w", err)
	}
	return string(data), nil
}
