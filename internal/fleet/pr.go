package fleet

import (
	"context"
	"fmt"

	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

// FallbackBaseBranch is used when the host cannot report a default branch
const FallbackBaseBranch = "main"

// PROptions carries the user-supplied PR fields
type PROptions struct {
	Title string
	Body  string
	Draft bool
}

// PRDetails records the created PR
type PRDetails struct {
	Branch string
	Base   string
	Pushed bool
	URL    string
}

// CreatePR opens a PR from the current branch against the repository's
// default branch. PRs from main or master are refused.
func (o *Orchestrator) CreatePR(ctx context.Context, repo registry.Repository, opts PROptions) Result[PRDetails] {
	return do(ctx, o, repo, "pr", func(g *git.Client, d *PRDetails) error {
		if o.host == nil {
			return fmt.Errorf("no PR host configured")
		}

		branch, err := g.GetCurrentBranch(ctx)
		if err != nil {
			return err
		}
		d.Branch = branch

		if git.IsProtectedBranch(branch) {
			return refuse(ErrDefaultBranch, "cannot create PR from default branch %q", branch)
		}

		if _, err := g.Upstream(ctx); err != nil {
			if err := g.PushUpstream(ctx, branch); err != nil {
				return err
			}
			d.Pushed = true
		}

		base, err := o.host.DefaultBranch(ctx, repo.Path)
		if err != nil || base == "" {
			o.logger.Debug("falling back to default base branch")
			base = FallbackBaseBranch
		}
		d.Base = base

		url, err := o.host.CreatePR(ctx, repo.Path, gh.PRSpec{
			Title: opts.Title,
			Body:  opts.Body,
			Base:  base,
			Head:  branch,
			Draft: opts.Draft,
		})
		if err != nil {
			return err
		}
		d.URL = url
		return nil
	})
}

// PullRequests lists PRs of one repository through the configured host
func (o *Orchestrator) PullRequests(ctx context.Context, repo registry.Repository, opts gh.ListOptions) Result[[]gh.PullRequest] {
	return do(ctx, o, repo, "prs", func(_ *git.Client, prs *[]gh.PullRequest) error {
		if o.host == nil {
			return fmt.Errorf("no PR host configured")
		}
		list, err := o.host.ListPRs(ctx, repo.Path, opts)
		*prs = list
		return err
	})
}

// PullRequest fetches one PR with file and review details
func (o *Orchestrator) PullRequest(ctx context.Context, repo registry.Repository, number int) Result[gh.PullRequest] {
	return do(ctx, o, repo, "pr-view", func(_ *git.Client, pr *gh.PullRequest) error {
		if o.host == nil {
			return fmt.Errorf("no PR host configured")
		}
		p, err := o.host.GetPR(ctx, repo.Path, number)
		*pr = p
		return err
	})
}
