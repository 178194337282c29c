package create

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command creates a ticket branch in one or all services
type Command struct {
	Ticket  string
	Service string
	Base    string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "create <ticket> [service]",
		Short: "Create a feature branch for a ticket",
		Long: `Update the base branch and create feature/REN-<number> from it.

The ticket may be given as 123, REN-123 or ren-123. Services where the branch
already exists check it out instead.

Example:
  fleet create 482
  fleet create REN-482 api --base=main`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			c.Ticket = args[0]
			if len(args) > 1 {
				c.Service = args[1]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.Base, "base", fleet.DefaultBaseBranch, "Branch to create from")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	ticket, err := fleet.NormalizeTicket(c.Ticket)
	if err != nil {
		return err
	}
	if c.Base == "" {
		c.Base = fleet.DefaultBaseBranch
	}
	if err := c.Env.RequirePrivilege(); err != nil {
		return err
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	branch := fleet.TicketBranch(ticket)
	ui.Header("Creating " + branch + " from " + c.Base)

	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[fleet.CreateBranchDetails] {
		return c.Env.Fleet.CreateBranch(ctx, repo, branch, c.Base)
	}, common.PrintResult(func(d fleet.CreateBranchDetails) string {
		if d.Existing {
			return ui.Branch(d.Branch) + ui.Dim(" (already existed, checked out)")
		}
		return ui.Branch(d.Branch) + ui.Dim(" created")
	}))
	common.PrintSummary(results)
	return nil
}
