package list

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command shows the checked out branch of every service
type Command struct {
	Env *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:     "list",
		Aliases: []string{"current"},
		Short:   "Show the current branch of every service",
		Long: `Show the branch currently checked out in each service repository.

Services whose directory is missing are reported as "Directory not found".

Example:
  fleet list
  fleet current`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	parent.AddCommand(command)
}

func (c *Command) Run(ctx context.Context) error {
	ui.Header("Current branches")
	ui.Print(ui.Dim("Repository root: " + c.Env.Config.RepoRoot))
	ui.Print("")

	results := fleet.RunAcross(ctx, c.Env.Registry.All(), c.Env.Fleet.CurrentBranch,
		common.PrintResult(ui.Branch))
	common.PrintSummary(results)
	return nil
}
