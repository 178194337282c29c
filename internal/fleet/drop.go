package fleet

import (
	"context"
	"fmt"
	"strings"

	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

// Confirmer asks the operator to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// DropStatus distinguishes the ways Drop can end
type DropStatus string

const (
	DropNoChanges DropStatus = "no changes"
	DropDropped   DropStatus = "dropped"
	DropCancelled DropStatus = "cancelled"
)

// DropDetails records what Drop found and did
type DropDetails struct {
	Status DropStatus
	Files  []git.FileChange
	Counts git.ChangeCounts
}

// Drop discards all uncommitted work: tracked files are reset to HEAD and
// untracked files are removed. Without force, confirm is asked first with a
// prompt listing everything that will be lost.
func (o *Orchestrator) Drop(ctx context.Context, repo registry.Repository, force bool, confirm Confirmer) Result[DropDetails] {
	return do(ctx, o, repo, "drop", func(g *git.Client, d *DropDetails) error {
		files, err := g.Status(ctx)
		if err != nil {
			return err
		}
		d.Files = files
		d.Counts = git.CountChanges(files)

		if len(files) == 0 {
			d.Status = DropNoChanges
			return nil
		}

		if !force {
			if confirm == nil || !confirm.Confirm(DropPrompt(repo.Name, files)) {
				d.Status = DropCancelled
				return refuse(ErrCancelled, "drop cancelled")
			}
		}

		if err := g.ResetHard(ctx); err != nil {
			return err
		}
		if err := g.CleanUntracked(ctx); err != nil {
			return err
		}
		d.Status = DropDropped
		return nil
	})
}

// DropPrompt lists modified, staged and untracked files that Drop would lose
func DropPrompt(service string, files []git.FileChange) string {
	var modified, staged, untracked []string
	for _, f := range files {
		switch {
		case f.IsUntracked():
			untracked = append(untracked, f.Path)
		default:
			if f.IsStaged() {
				staged = append(staged, f.Path)
			}
			if f.IsModified() {
				modified = append(modified, f.Path)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "The following changes in %s will be permanently lost:\n", service)
	section := func(title string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(&sb, "  %s (%d):\n", title, len(paths))
		for _, p := range paths {
			fmt.Fprintf(&sb, "    %s\n", p)
		}
	}
	section("Modified", modified)
	section("Staged", staged)
	section("Untracked", untracked)
	sb.WriteString("Type 'yes' to drop these changes: ")
	return sb.String()
}
