package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

// UpdateOptions controls Update
type UpdateOptions struct {
	Branch         string
	SkipDeps       bool
	ComposerUpdate bool
}

// UpdateDetails records what Update did for one repository
type UpdateDetails struct {
	Branch       string
	Stashed      bool
	StashMessage string
	DepsManager  string
	DepsCommand  string
	Commit       string
}

// Update switches repo to opts.Branch and pulls it. Uncommitted work is
// stashed first. Any failing step stops the remaining steps for this
// repository only.
func (o *Orchestrator) Update(ctx context.Context, repo registry.Repository, opts UpdateOptions) Result[UpdateDetails] {
	return do(ctx, o, repo, "update", func(g *git.Client, d *UpdateDetails) error {
		d.Branch = opts.Branch

		dirty, err := g.HasUncommittedChanges(ctx)
		if err != nil {
			return err
		}
		if dirty {
			msg := fmt.Sprintf("fleet auto-stash before update to %s %s", opts.Branch, o.now().UTC().Format(time.RFC3339))
			if err := g.StashPush(ctx, msg); err != nil {
				return err
			}
			d.Stashed = true
			d.StashMessage = msg
		}

		if err := g.Fetch(ctx); err != nil {
			return err
		}

		exists, err := g.RemoteBranchExists(ctx, opts.Branch)
		if err != nil {
			return err
		}
		if !exists {
			return refuse(ErrBranchNotOnRemote, "branch %q does not exist in remote %s", opts.Branch, git.DefaultRemote)
		}

		if err := g.CheckoutBranch(ctx, opts.Branch); err != nil {
			return err
		}
		if err := g.PullBranch(ctx, opts.Branch); err != nil {
			return err
		}

		if !opts.SkipDeps && o.deps != nil {
			report, err := o.deps.Install(ctx, repo.Name, repo.Path, opts.ComposerUpdate)
			d.DepsManager = report.Manager
			d.DepsCommand = report.Command
			if err != nil {
				return err
			}
		}

		commit, err := g.LastCommit(ctx)
		if err != nil {
			return err
		}
		d.Commit = commit
		return nil
	})
}

// SyncDetails records the result of a pull without branch switch
type SyncDetails struct {
	Branch string
	Commit string
}

// Sync fetches and pulls the current branch. It refuses when the working
// tree has uncommitted changes.
func (o *Orchestrator) Sync(ctx context.Context, repo registry.Repository) Result[SyncDetails] {
	return do(ctx, o, repo, "sync", func(g *git.Client, d *SyncDetails) error {
		branch, err := g.GetCurrentBranch(ctx)
		if err != nil {
			return err
		}
		d.Branch = branch

		dirty, err := g.HasUncommittedChanges(ctx)
		if err != nil {
			return err
		}
		if dirty {
			return refuse(ErrDirtyWorkTree, "uncommitted changes present; stash or commit them before syncing")
		}

		if err := g.Fetch(ctx); err != nil {
			return err
		}
		if err := g.Pull(ctx); err != nil {
			return err
		}

		commit, err := g.LastCommit(ctx)
		if err != nil {
			return err
		}
		d.Commit = commit
		return nil
	})
}
