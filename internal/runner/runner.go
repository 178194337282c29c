package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"os/user"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Executor runs a single external command in a working directory and returns
// its trimmed stdout.
type Executor interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// CommandError is returned when an external command exits non-zero
type CommandError struct {
	Command  string // full command line as invoked
	Message  string // stderr when non-empty, otherwise stdout
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner executes commands, optionally as a fixed service account via sudo.
type Runner struct {
	runAs  string
	logger *zap.Logger
}

// New creates a runner. When runAs is non-empty and differs from the invoking
// user, every command is wrapped in `sudo -n -H -u <runAs>`.
func New(runAs string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runAs != "" && currentUsername() == runAs {
		runAs = ""
	}
	return &Runner{runAs: runAs, logger: logger}
}

// RunAs returns the account commands are executed as ("" for the invoking user)
func (r *Runner) RunAs() string {
	return r.runAs
}

// Run executes name with args in dir. Trailing whitespace is trimmed from stdout.
func (r *Runner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	argv := r.argv(name, args)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := strings.TrimRight(stdout.String(), " \t\r\n")

	r.logger.Debug("command finished",
		zap.String("dir", dir),
		zap.Strings("argv", argv),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)

	if err != nil {
		return out, newCommandError(argv, out, stderr.String(), err)
	}
	return out, nil
}

func (r *Runner) argv(name string, args []string) []string {
	argv := make([]string, 0, len(args)+6)
	if r.runAs != "" {
		argv = append(argv, "sudo", "-n", "-H", "-u", r.runAs)
	}
	argv = append(argv, name)
	return append(argv, args...)
}

func newCommandError(argv []string, stdout, stderr string, err error) *CommandError {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = strings.TrimSpace(stdout)
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Command:  strings.Join(argv, " "),
		Message:  msg,
		ExitCode: code,
		Err:      err,
	}
}

func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

// QuietExit reports a CommandError with the given exit code and no diagnostic
// output, which several git plumbing commands use to signal "not found".
func QuietExit(err error, code int) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.ExitCode == code && cmdErr.Message == ""
}
