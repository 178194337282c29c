package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

// StashStatus distinguishes stash outcomes
type StashStatus string

const (
	StashSaved        StashStatus = "saved"
	StashNoChanges    StashStatus = "no changes"
	StashPopped       StashStatus = "popped"
	StashNothingToPop StashStatus = "nothing to pop"
	StashListed       StashStatus = "listed"
)

// StashDetails records a stash sub-action
type StashDetails struct {
	Status  StashStatus
	Message string
	Entries []git.StashEntry
}

// Count returns the number of stash entries (list only)
func (d StashDetails) Count() int {
	return len(d.Entries)
}

// StashSave stashes uncommitted changes. A clean repository is a successful no-op.
func (o *Orchestrator) StashSave(ctx context.Context, repo registry.Repository, message string) Result[StashDetails] {
	return do(ctx, o, repo, "stash-save", func(g *git.Client, d *StashDetails) error {
		dirty, err := g.HasUncommittedChanges(ctx)
		if err != nil {
			return err
		}
		if !dirty {
			d.Status = StashNoChanges
			return nil
		}

		if message == "" {
			message = fmt.Sprintf("fleet stash %s", o.now().UTC().Format(time.RFC3339))
		}
		if err := g.StashPush(ctx, message); err != nil {
			return err
		}
		d.Status = StashSaved
		d.Message = message
		return nil
	})
}

// StashPop applies the latest stash. An empty stash is a successful no-op;
// conflicts are command failures.
func (o *Orchestrator) StashPop(ctx context.Context, repo registry.Repository) Result[StashDetails] {
	return do(ctx, o, repo, "stash-pop", func(g *git.Client, d *StashDetails) error {
		err := g.StashPop(ctx)
		if errors.Is(err, git.ErrNoStashEntries) {
			d.Status = StashNothingToPop
			return nil
		}
		if err != nil {
			return err
		}
		d.Status = StashPopped
		return nil
	})
}

// StashList lists stash entries
func (o *Orchestrator) StashList(ctx context.Context, repo registry.Repository) Result[StashDetails] {
	return do(ctx, o, repo, "stash-list", func(g *git.Client, d *StashDetails) error {
		entries, err := g.StashList(ctx)
		if err != nil {
			return err
		}
		d.Status = StashListed
		d.Entries = entries
		return nil
	})
}
