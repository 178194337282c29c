package branches

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command lists local and remote branches per service
type Command struct {
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "branches [service]",
		Short: "List branches of one or all services",
		Long: `Fetch each repository and list its local and remote branches.

A failed fetch is ignored; the branches known locally are listed.

Example:
  fleet branches
  fleet branches api`,
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

	results := fleet.RunAcross(ctx, repos, c.Env.Fleet.Branches, func(r fleet.Result[[]string]) {
		ui.ServiceHeader(r.Service)
		if !r.Success() {
			ui.Print("  " + ui.GetOutcomeStatus(r.Outcome).Style.Render(r.ErrorText()))
			return
		}
		styled := make([]string, 0, len(r.Value))
		for _, b := range r.Value {
			styled = append(styled, ui.Branch(b))
		}
		ui.Print(ui.RenderBulletList(styled))
	})
	common.PrintSummary(results)
	return nil
}
