package fleet

import (
	"context"
	"time"

	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

// RepositoryStatus summarises a working tree against its upstream
type RepositoryStatus struct {
	Branch             string
	Upstream           string // "" when the branch tracks nothing
	UncommittedFiles   int
	HasUnstagedChanges bool
	HasStagedChanges   bool
	CommitsAhead       int
	CommitsBehind      int
}

// IsClean is derived from the counters and never stored
func (s RepositoryStatus) IsClean() bool {
	return s.UncommittedFiles == 0 && s.CommitsAhead == 0 && s.CommitsBehind == 0
}

// CurrentBranch reports the checked out branch
func (o *Orchestrator) CurrentBranch(ctx context.Context, repo registry.Repository) Result[string] {
	return do(ctx, o, repo, "current", func(g *git.Client, branch *string) error {
		b, err := g.GetCurrentBranch(ctx)
		*branch = b
		return err
	})
}

// Branches refreshes remote refs (best effort) and lists branch names
func (o *Orchestrator) Branches(ctx context.Context, repo registry.Repository) Result[[]string] {
	return do(ctx, o, repo, "branches", func(g *git.Client, branches *[]string) error {
		_ = g.Fetch(ctx)
		b, err := g.ListBranches(ctx)
		*branches = b
		return err
	})
}

// Status computes uncommitted and ahead/behind counts. A branch without an
// upstream reports zero ahead and behind.
func (o *Orchestrator) Status(ctx context.Context, repo registry.Repository) Result[RepositoryStatus] {
	return do(ctx, o, repo, "status", func(g *git.Client, st *RepositoryStatus) error {
		branch, err := g.GetCurrentBranch(ctx)
		if err != nil {
			return err
		}
		st.Branch = branch

		changes, err := g.Status(ctx)
		if err != nil {
			return err
		}
		*st = statusFromChanges(branch, changes)

		upstream, err := g.Upstream(ctx)
		if err != nil {
			return nil
		}
		st.Upstream = upstream

		ahead, behind, err := g.AheadBehind(ctx)
		if err != nil {
			return nil
		}
		st.CommitsAhead, st.CommitsBehind = ahead, behind
		return nil
	})
}

func statusFromChanges(branch string, changes []git.FileChange) RepositoryStatus {
	st := RepositoryStatus{Branch: branch, UncommittedFiles: len(changes)}
	for _, c := range changes {
		if c.IsUntracked() {
			continue
		}
		if c.IsStaged() {
			st.HasStagedChanges = true
		}
		if c.IsModified() {
			st.HasUnstagedChanges = true
		}
	}
	return st
}

// ChangeSet lists uncommitted files of one repository
type ChangeSet struct {
	Branch string
	Files  []git.FileChange
	Counts git.ChangeCounts
}

// Changes lists uncommitted files
func (o *Orchestrator) Changes(ctx context.Context, repo registry.Repository) Result[ChangeSet] {
	return do(ctx, o, repo, "changes", func(g *git.Client, cs *ChangeSet) error {
		branch, err := g.GetCurrentBranch(ctx)
		if err != nil {
			return err
		}
		files, err := g.Status(ctx)
		if err != nil {
			return err
		}
		*cs = ChangeSet{Branch: branch, Files: files, Counts: git.CountChanges(files)}
		return nil
	})
}

// Search greps tracked files for pattern, optionally limited to a glob
func (o *Orchestrator) Search(ctx context.Context, repo registry.Repository, pattern string, include string) Result[[]git.GrepMatch] {
	return do(ctx, o, repo, "search", func(g *git.Client, matches *[]git.GrepMatch) error {
		m, err := g.Grep(ctx, pattern, include)
		*matches = m
		return err
	})
}

// Recent lists up to count commits from the last days days
func (o *Orchestrator) Recent(ctx context.Context, repo registry.Repository, days int, count int) Result[[]git.Commit] {
	since := o.now().Add(-time.Duration(days) * 24 * time.Hour)
	return do(ctx, o, repo, "recent", func(g *git.Client, commits *[]git.Commit) error {
		c, err := g.RecentCommits(since, count)
		*commits = c
		return err
	})
}
