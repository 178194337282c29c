package testutil

import (
	"context"
	"strings"
	"sync"
)

// RecordingExecutor records every command and returns canned output.
// Responses are matched by the longest "name args..." prefix.
type RecordingExecutor struct {
	mu        sync.Mutex
	Calls     []string
	Responses map[string]Response
}

// Response is the canned result for a command
type Response struct {
	Output string
	Err    error
}

// NewRecordingExecutor creates an executor with no canned responses
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{Responses: map[string]Response{}}
}

// Run implements runner.Executor
func (e *RecordingExecutor) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, line)

	var best string
	for prefix := range e.Responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", nil
	}
	resp := e.Responses[best]
	return resp.Output, resp.Err
}

// CallCount returns how many commands were run
func (e *RecordingExecutor) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Calls)
}

// Called reports whether any recorded command starts with prefix
func (e *RecordingExecutor) Called(prefix string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
