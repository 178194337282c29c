package fleet

import (
	"errors"
	"fmt"
)

// Outcome classifies how a per-repository operation ended
type Outcome int

const (
	// OutcomeSucceeded means the operation completed
	OutcomeSucceeded Outcome = iota
	// OutcomeNotFound means the repository directory is missing; no command ran
	OutcomeNotFound
	// OutcomeCommandFailed means an external command exited non-zero
	OutcomeCommandFailed
	// OutcomeRefused means a precondition was not met and nothing was attempted
	OutcomeRefused
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeCommandFailed:
		return "command-failed"
	case OutcomeRefused:
		return "refused"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var (
	// ErrDirectoryNotFound is the error of every NotFound result
	ErrDirectoryNotFound = errors.New("Directory not found")

	ErrDirtyWorkTree     = errors.New("uncommitted changes present")
	ErrDefaultBranch     = errors.New("cannot create PR from default branch")
	ErrBranchNotOnRemote = errors.New("does not exist in remote")
	ErrCancelled         = errors.New("cancelled by user")
)

// RefusalError marks a precondition refusal, as opposed to a command failure
type RefusalError struct {
	Reason string
	Err    error
}

func (e *RefusalError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return e.Reason
}

func (e *RefusalError) Unwrap() error {
	return e.Err
}

func refuse(err error, format string, args ...any) error {
	return &RefusalError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// Result is the outcome of one operation against one repository. Value
// carries the operation's details; it may be partially filled on failure.
type Result[T any] struct {
	Service string
	Outcome Outcome
	Value   T
	Err     error
}

// Success reports OutcomeSucceeded
func (r Result[T]) Success() bool {
	return r.Outcome == OutcomeSucceeded
}

// ErrorText returns the error message or ""
func (r Result[T]) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// classify maps an operation error to an outcome
func classify(err error) Outcome {
	var refusal *RefusalError
	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.Is(err, ErrDirectoryNotFound):
		return OutcomeNotFound
	case errors.As(err, &refusal):
		return OutcomeRefused
	default:
		return OutcomeCommandFailed
	}
}
