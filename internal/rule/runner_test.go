package rule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/jiraref/internal/commit"
	"github.com/bartekus/jiraref/internal/testutil"
)

// MockRule implements Rule for testing.
type MockRule struct {
	id      string
	outcome Outcome
	calls   int
	gotWhen When
	gotVal  any
}

func (m *MockRule) Name() string { return m.id }

func (m *MockRule) Validate(c commit.Parsed, when When, value any) Outcome {
	m.calls++
	m.gotWhen = when
	m.gotVal = value
	return m.outcome
}

func TestRunner_Lint(t *testing.T) {
	r1 := &MockRule{id: "r1", outcome: Pass()}
	r2 := &MockRule{id: "r2", outcome: Pass()}

	settings := map[string]Setting{
		"r1": {Level: LevelError, When: Always, Value: "cfg"},
		"r2": {Level: LevelWarning, When: Never},
	}
	r := NewRunner([]Rule{r1, r2}, settings, nil, testutil.NewTestLogger(t))

	report := r.Lint(context.Background(), commit.Parse("feat: x"))

	assert.True(t, report.Valid())
	assert.Equal(t, "feat: x", report.Header)
	require.Len(t, report.Results, 2)
	assert.Equal(t, StatusPass, report.Results[0].Status)
	assert.Equal(t, StatusPass, report.Results[1].Status)

	assert.Equal(t, Always, r1.gotWhen)
	assert.Equal(t, "cfg", r1.gotVal)
	assert.Equal(t, Never, r2.gotWhen)
}

func TestRunner_Lint_Levels(t *testing.T) {
	failing := Fail(errors.New("bad"))

	tests := []struct {
		name       string
		level      Level
		wantStatus Status
		wantValid  bool
		wantCalls  int
	}{
		{name: "error fails the report", level: LevelError, wantStatus: StatusFail, wantValid: false, wantCalls: 1},
		{name: "warning keeps the report valid", level: LevelWarning, wantStatus: StatusWarn, wantValid: true, wantCalls: 1},
		{name: "off is skipped", level: LevelOff, wantStatus: StatusSkip, wantValid: true, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockRule{id: "m", outcome: failing}
			r := NewRunner([]Rule{m}, map[string]Setting{"m": {Level: tt.level}}, nil, nil)

			report := r.Lint(context.Background(), commit.Parse("feat: x"))

			assert.Equal(t, tt.wantValid, report.Valid())
			require.Len(t, report.Results, 1)
			assert.Equal(t, tt.wantStatus, report.Results[0].Status)
			assert.Equal(t, tt.wantCalls, m.calls)
		})
	}
}

func TestRunner_Lint_UnconfiguredRuleIsSkipped(t *testing.T) {
	m := &MockRule{id: "m", outcome: Pass()}
	r := NewRunner([]Rule{m}, nil, nil, nil)

	report := r.Lint(context.Background(), commit.Parse("feat: x"))

	assert.Equal(t, 0, m.calls)
	assert.Equal(t, StatusSkip, report.Results[0].Status)
}

func TestRunner_LintAll_WritesState(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)

	m := &MockRule{id: "m", outcome: Fail(errors.New("nope"))}
	r := NewRunner([]Rule{m}, map[string]Setting{"m": {Level: LevelError}}, store, nil)

	last, err := r.LintAll(context.Background(), []Input{
		{SHA: "abc123", Message: "feat: one"},
		{SHA: "def456", Message: "fix: two"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFail, last.Status)
	require.Len(t, last.Reports, 2)
	assert.Equal(t, "abc123", last.Reports[0].Commit)

	saved, err := store.ReadLastRun()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, StatusFail, saved.Status)
	require.Len(t, saved.Reports, 2)
	assert.Equal(t, "fix: two", saved.Reports[1].Header)
	assert.Equal(t, LevelError, saved.Reports[1].Results[0].Level)
	assert.Equal(t, "nope", saved.Reports[1].Results[0].Outcome.Message)
}

func TestRunner_LintAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil, nil)
	_, err := r.LintAll(ctx, []Input{{Message: "feat: x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStateStore_ReadMissing(t *testing.T) {
	store := NewStateStore(t.TempDir())

	last, err := store.ReadLastRun()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStateStore_Reset(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)
	require.NoError(t, store.WriteLastRun(LastRun{Status: StatusPass}))

	require.NoError(t, store.Reset())
	last, err := store.ReadLastRun()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestParseWhen(t *testing.T) {
	w, err := ParseWhen("")
	require.NoError(t, err)
	assert.Equal(t, Always, w)

	w, err = ParseWhen(" Never ")
	require.NoError(t, err)
	assert.Equal(t, Never, w)

	_, err = ParseWhen("sometimes")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(1)
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, l)

	_, err = ParseLevel(3)
	assert.Error(t, err)
}
