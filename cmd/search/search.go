package search

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command greps tracked files across services
type Command struct {
	Pattern string
	Service string
	Include string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "search <pattern> [service]",
		Short: "Search tracked files in one or all services",
		Long: `Run git grep in each service and list matching lines.

Example:
  fleet search "InvoiceRepository"
  fleet search "TODO" api --include='*.php'`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			c.Pattern = args[0]
			if len(args) > 1 {
				c.Service = args[1]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.Include, "include", "", "Only search files matching this glob")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	total := 0
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[[]git.GrepMatch] {
		return c.Env.Fleet.Search(ctx, repo, c.Pattern, c.Include)
	}, func(r fleet.Result[[]git.GrepMatch]) {
		if !r.Success() {
			ui.Print(ui.RenderResultLine(r, ""))
			return
		}
		if len(r.Value) == 0 {
			return
		}
		if total > 0 {
			ui.Print(ui.RenderSeparator(0))
		}
		total += len(r.Value)
		ui.ServiceHeader(r.Service + " " + ui.Dim("("+ui.Plural(len(r.Value), "match")+")"))
		ui.Print(ui.RenderMatches(r.Value))
	})

	ui.Print("")
	ui.Infof("%s for %q", ui.Plural(total, "match"), c.Pattern)
	common.PrintSummary(results)
	return nil
}
