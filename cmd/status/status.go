package status

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command shows uncommitted and unpushed work per service
type Command struct {
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "status [service]",
		Short: "Show working tree status of one or all services",
		Long: `Show the branch, uncommitted file count and ahead/behind counts for each
service. Branches without an upstream report zero ahead and behind.

Example:
  fleet status
  fleet status billing`,
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
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	results := fleet.RunAcross(ctx, repos, c.Env.Fleet.Status, nil)
	ui.Print(ui.RenderStatusTable(results))
	common.PrintSummary(results)
	return nil
}
