package drop

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command discards uncommitted work
type Command struct {
	Service string
	Force   bool
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "drop [service]",
		Short: "Discard all uncommitted changes",
		Long: `Reset tracked files to HEAD and delete untracked files.

Without --force the files that will be lost are listed and you must type
'yes' for each service before anything is discarded.

Example:
  fleet drop api
  fleet drop --force`,
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

	cmd.Flags().BoolVarP(&c.Force, "force", "f", false, "Skip confirmation prompt")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	if err := c.Env.RequirePrivilege(); err != nil {
		return err
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	confirm := fleet.ConfirmFunc(ui.ConfirmYes)
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[fleet.DropDetails] {
		return c.Env.Fleet.Drop(ctx, repo, c.Force, confirm)
	}, common.PrintResult(func(d fleet.DropDetails) string {
		if d.Status == fleet.DropDropped {
			return "dropped " + ui.Plural(d.Counts.Total, "file")
		}
		return string(d.Status)
	}))
	common.PrintSummary(results)
	return nil
}
