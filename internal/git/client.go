package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/bjulian5/fleet/internal/runner"
)

// DefaultRemote is the remote every service tracks
const DefaultRemote = "origin"

// Client provides git operations for one repository checkout
type Client struct {
	exec runner.Executor
	path string
}

// NewClient creates a git client rooted at path
func NewClient(exec runner.Executor, path string) *Client {
	return &Client{exec: exec, path: path}
}

// Path returns the repository working directory
func (c *Client) Path() string {
	return c.path
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	return c.exec.Run(ctx, c.path, "git", args...)
}

// GetCurrentBranch returns the name of the checked out branch
func (c *Client) GetCurrentBranch(ctx context.Context) (string, error) {
	out, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Fetch refreshes remote refs, pruning deleted branches
func (c *Client) Fetch(ctx context.Context) error {
	if _, err := c.git(ctx, "fetch", DefaultRemote, "--prune"); err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	return nil
}

// ListBranches returns local and remote branch names, de-duplicated
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "branch", "-a", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return ParseBranches(out), nil
}

// Status returns the parsed porcelain status of the working tree
func (c *Client) Status(ctx context.Context) ([]FileChange, error) {
	out, err := c.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to check git status: %w", err)
	}
	return ParsePorcelain(out), nil
}

// HasUncommittedChanges checks for tracked or untracked changes
func (c *Client) HasUncommittedChanges(ctx context.Context) (bool, error) {
	changes, err := c.Status(ctx)
	if err != nil {
		return false, err
	}
	return len(changes) > 0, nil
}

// Upstream returns the upstream of the current branch, e.g. "origin/main"
func (c *Client) Upstream(ctx context.Context) (string, error) {
	out, err := c.git(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve upstream: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// AheadBehind counts commits HEAD is ahead of and behind its upstream
func (c *Client) AheadBehind(ctx context.Context) (ahead int, behind int, err error) {
	out, err := c.git(ctx, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count ahead/behind: %w", err)
	}
	return ParseAheadBehind(out)
}

// RemoteBranchExists checks refs/remotes/origin/<name> without touching the network
func (c *Client) RemoteBranchExists(ctx context.Context, name string) (bool, error) {
	return c.refExists(ctx, "refs/remotes/"+DefaultRemote+"/"+name)
}

// LocalBranchExists checks refs/heads/<name>
func (c *Client) LocalBranchExists(ctx context.Context, name string) (bool, error) {
	return c.refExists(ctx, "refs/heads/"+name)
}

func (c *Client) refExists(ctx context.Context, ref string) (bool, error) {
	_, err := c.git(ctx, "show-ref", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	if runner.QuietExit(err, 1) {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify %s: %w", ref, err)
}

// CheckoutBranch checks out the specified branch
func (c *Client) CheckoutBranch(ctx context.Context, name string) error {
	if _, err := c.git(ctx, "checkout", name); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", name, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates a new branch and checks it out
func (c *Client) CreateAndCheckoutBranch(ctx context.Context, name string) error {
	if _, err := c.git(ctx, "checkout", "-b", name); err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", name, err)
	}
	return nil
}

// Pull merges the upstream of the current branch
func (c *Client) Pull(ctx context.Context) error {
	if _, err := c.git(ctx, "pull"); err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}

// PullBranch pulls a specific branch from the default remote
func (c *Client) PullBranch(ctx context.Context, branch string) error {
	if _, err := c.git(ctx, "pull", DefaultRemote, branch); err != nil {
		return fmt.Errorf("failed to pull %s: %w", branch, err)
	}
	return nil
}

// LastCommit returns a one-line summary of HEAD
func (c *Client) LastCommit(ctx context.Context) (string, error) {
	out, err := c.git(ctx, "log", "-1", "--pretty=format:%h %s (%an, %ar)")
	if err != nil {
		return "", fmt.Errorf("failed to read last commit: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ResetHard resets tracked files to HEAD
func (c *Client) ResetHard(ctx context.Context) error {
	if _, err := c.git(ctx, "reset", "--hard", "HEAD"); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	return nil
}

// CleanUntracked removes untracked files and directories
func (c *Client) CleanUntracked(ctx context.Context) error {
	if _, err := c.git(ctx, "clean", "-fd"); err != nil {
		return fmt.Errorf("failed to clean untracked files: %w", err)
	}
	return nil
}

// PushUpstream pushes branch and sets its upstream
func (c *Client) PushUpstream(ctx context.Context, branch string) error {
	if _, err := c.git(ctx, "push", "-u", DefaultRemote, branch); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// Grep searches tracked files for pattern. pathspec may be empty.
// A grep with no matches is not an error.
func (c *Client) Grep(ctx context.Context, pattern string, pathspec string) ([]GrepMatch, error) {
	args := []string{"grep", "-n", "-I", "--no-color", "-e", pattern}
	if pathspec != "" {
		args = append(args, "--", pathspec)
	}
	out, err := c.git(ctx, args...)
	if err != nil {
		if runner.QuietExit(err, 1) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return ParseGrep(out), nil
}
