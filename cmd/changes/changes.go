package changes

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command lists uncommitted files per service
type Command struct {
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "changes [service]",
		Short: "List uncommitted files",
		Args:  cobra.MaximumNArgs(1),
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

	results := fleet.RunAcross(ctx, repos, c.Env.Fleet.Changes, func(r fleet.Result[fleet.ChangeSet]) {
		if !r.Success() {
			ui.Print(ui.RenderResultLine(r, ""))
			return
		}
		ui.ServiceHeader(r.Service + " " + ui.Dim("("+r.Value.Branch+")"))
		ui.Print(ui.RenderChanges(r.Value))
	})
	common.PrintSummary(results)
	return nil
}
