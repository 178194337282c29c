package synccmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command pulls the current branch of each service
type Command struct {
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "sync [service]",
		Short: "Pull the current branch without switching",
		Long: `Fetch and pull the checked out branch of each service.

Services with uncommitted changes are refused; stash or commit first.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Service = args[0]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	if err := c.Env.RequirePrivilege(); err != nil {
		return err
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	results := fleet.RunAcross(ctx, repos, c.Env.Fleet.Sync,
		common.PrintResult(func(d fleet.SyncDetails) string {
			return ui.Branch(d.Branch) + " " + ui.Dim(d.Commit)
		}))
	common.PrintSummary(results)
	return nil
}
