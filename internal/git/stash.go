package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bjulian5/fleet/internal/runner"
)

// ErrNoStashEntries is returned by StashPop when the stash is empty
var ErrNoStashEntries = errors.New("no stash entries")

// StashEntry is one line of `git stash list`
type StashEntry struct {
	Ref     string // stash@{0}
	Message string
}

// StashPush stashes tracked and untracked changes with message
func (c *Client) StashPush(ctx context.Context, message string) error {
	if _, err := c.git(ctx, "stash", "push", "--include-untracked", "-m", message); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashPop applies and drops the latest stash entry
func (c *Client) StashPop(ctx context.Context) error {
	if _, err := c.git(ctx, "stash", "pop"); err != nil {
		if IsNoStashError(err) {
			return ErrNoStashEntries
		}
		return fmt.Errorf("failed to pop stash: %w", err)
	}
	return nil
}

// StashList returns the stash entries, newest first
func (c *Client) StashList(ctx context.Context) ([]StashEntry, error) {
	out, err := c.git(ctx, "stash", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list stash: %w", err)
	}
	return ParseStashList(out), nil
}

// IsNoStashError recognises git's empty-stash diagnostic
func IsNoStashError(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr *runner.CommandError
	text := err.Error()
	if errors.As(err, &cmdErr) {
		text = cmdErr.Message
	}
	return strings.Contains(strings.ToLower(text), "no stash entries found")
}

// ParseStashList parses `git stash list` output
func ParseStashList(output string) []StashEntry {
	entries := []StashEntry{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref, msg, _ := strings.Cut(line, ": ")
		entries = append(entries, StashEntry{Ref: ref, Message: msg})
	}
	return entries
}
