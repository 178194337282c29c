package prs

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command lists pull requests across services
type Command struct {
	State   string
	Limit   int
	Search  string
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "prs [service]",
		Short: "List pull requests across services",
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

	cmd.Flags().StringVar(&c.State, "state", "open", "open, closed, merged or all")
	cmd.Flags().IntVar(&c.Limit, "limit", 30, "Maximum PRs per service")
	cmd.Flags().StringVar(&c.Search, "search", "", "Free-text filter, e.g. a ticket key")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	switch c.State {
	case "open", "closed", "merged", "all":
	default:
		return fmt.Errorf("invalid state %q: expected open, closed, merged or all", c.State)
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	opts := gh.ListOptions{State: c.State, Limit: c.Limit, Search: c.Search}
	var rows []ui.PRRow
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[[]gh.PullRequest] {
		return c.Env.Fleet.PullRequests(ctx, repo, opts)
	}, func(r fleet.Result[[]gh.PullRequest]) {
		if !r.Success() {
			ui.Print(ui.RenderResultLine(r, ""))
			return
		}
		for _, p := range r.Value {
			rows = append(rows, ui.PRRow{Service: r.Service, PR: p})
		}
	})

	if len(rows) == 0 {
		ui.Infof("No %s pull requests found", c.State)
	} else {
		ui.Print(ui.RenderPRTable(rows))
	}
	common.PrintSummary(results)
	return nil
}
