package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, 1, ExitCodeOf(cause))
	assert.Equal(t, CodeUsage, ExitCodeOf(Usagef("bad flag %q", "x")))
	assert.Equal(t, CodeGit, ExitCodeOf(fmt.Errorf("outer: %w", Wrap(CodeGit, "git log", cause))))
	assert.Equal(t, 1, ExitCodeOf(New(0, "zero is not an error code")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")

	err := Wrap(CodeGit, "git log", cause)
	assert.EqualError(t, err, "git log: boom")
	assert.ErrorIs(t, err, cause)

	assert.EqualError(t, Wrap(CodeGit, "no cause", nil), "no cause")
}
