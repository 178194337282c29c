package fleet

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
)

const (
	// TicketPrefix is the issue-tracker project key
	TicketPrefix = "REN"

	// BranchPrefix is prepended to ticket branches
	BranchPrefix = "feature/"

	// DefaultBaseBranch is the base for new ticket branches
	DefaultBaseBranch = "develop"
)

var ticketArg = regexp.MustCompile(`(?i)^(?:` + TicketPrefix + `-?)?(\d+)$`)

// NormalizeTicket accepts "123", "REN-123" or "ren-123" and returns "REN-123"
func NormalizeTicket(ticket string) (string, error) {
	m := ticketArg.FindStringSubmatch(strings.TrimSpace(ticket))
	if m == nil {
		return "", fmt.Errorf("invalid ticket %q: expected %s-<number> or <number>", ticket, TicketPrefix)
	}
	return TicketPrefix + "-" + m[1], nil
}

// TicketBranch formats the branch name for a normalized ticket
func TicketBranch(ticket string) string {
	return BranchPrefix + ticket
}

// CreateBranchDetails records the branch that was created or reused
type CreateBranchDetails struct {
	Branch   string
	Base     string
	Existing bool
}

// CreateBranch updates base and creates branch from it. An existing branch
// is checked out instead and reported as Existing.
func (o *Orchestrator) CreateBranch(ctx context.Context, repo registry.Repository, branch string, base string) Result[CreateBranchDetails] {
	return do(ctx, o, repo, "create", func(g *git.Client, d *CreateBranchDetails) error {
		d.Branch = branch
		d.Base = base

		if err := g.Fetch(ctx); err != nil {
			return err
		}
		if err := g.CheckoutBranch(ctx, base); err != nil {
			return err
		}
		if err := g.PullBranch(ctx, base); err != nil {
			return err
		}

		local, err := g.LocalBranchExists(ctx, branch)
		if err != nil {
			return err
		}
		remote, err := g.RemoteBranchExists(ctx, branch)
		if err != nil {
			return err
		}

		if local || remote {
			d.Existing = true
			return g.CheckoutBranch(ctx, branch)
		}
		return g.CreateAndCheckoutBranch(ctx, branch)
	})
}
