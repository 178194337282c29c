package gh

import (
	"context"

	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/runner"
)

// Host is the PR-hosting collaborator. dir is the repository checkout the
// call concerns; implementations derive owner/repo from it.
type Host interface {
	Kind() string
	DefaultBranch(ctx context.Context, dir string) (string, error)
	CreatePR(ctx context.Context, dir string, spec PRSpec) (string, error)
	ListPRs(ctx context.Context, dir string, opts ListOptions) ([]PullRequest, error)
	GetPR(ctx context.Context, dir string, number int) (PullRequest, error)
}

// NewHost uses the GitHub API when a token is configured and falls back to
// the gh CLI otherwise.
func NewHost(secrets config.Secrets, exec runner.Executor, logger *zap.Logger) Host {
	if secrets.HasGitHubToken() {
		logger.Debug("using GitHub API host")
		return NewAPIHost(secrets.GitHubToken, nil, logger)
	}
	logger.Debug("using gh CLI host")
	return NewCLIHost(exec)
}
