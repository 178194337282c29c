package recent

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command shows recent commits per service
type Command struct {
	Service string
	Days    int
	Count   int
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "recent [service]",
		Short: "Show recent commits",
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

	cmd.Flags().IntVar(&c.Days, "days", 7, "How many days back to look")
	cmd.Flags().IntVar(&c.Count, "count", 10, "Maximum commits per service")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	shown := 0
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[[]git.Commit] {
		return c.Env.Fleet.Recent(ctx, repo, c.Days, c.Count)
	}, func(r fleet.Result[[]git.Commit]) {
		if !r.Success() {
			ui.Print(ui.RenderResultLine(r, ""))
			return
		}
		if shown > 0 {
			ui.Print(ui.RenderSeparator(0))
		}
		shown++
		ui.ServiceHeader(r.Service)
		ui.Print(ui.RenderCommits(r.Value))
	})
	common.PrintSummary(results)
	return nil
}
