package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TrimsTrailingWhitespace(t *testing.T) {
	r := New("", nil)
	out, err := r.Run(context.Background(), t.TempDir(), "printf", "hello \n\n")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRun_NonZeroExitPrefersStderr(t *testing.T) {
	r := New("", nil)
	_, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo boom >&2; exit 3")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "boom", cmdErr.Message)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Command, "sh -c")
	assert.False(t, QuietExit(err, 3))
}

func TestRun_NonZeroExitFallsBackToStdout(t *testing.T) {
	r := New("", nil)
	_, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo only-stdout; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only-stdout")
}

func TestArgv_WrapsWithSudo(t *testing.T) {
	r := &Runner{runAs: "deploy"}
	assert.Equal(t,
		[]string{"sudo", "-n", "-H", "-u", "deploy", "git", "status"},
		r.argv("git", []string{"status"}),
	)

	plain := &Runner{}
	assert.Equal(t, []string{"git", "status"}, plain.argv("git", []string{"status"}))
}

func TestNew_SameUserDisablesSudo(t *testing.T) {
	r := New(currentUsername(), nil)
	assert.Equal(t, "", r.RunAs())
}

func TestCheckPrivilege(t *testing.T) {
	assert.NoError(t, CheckPrivilege(""))
	assert.NoError(t, CheckPrivilege(currentUsername()))
}
