package pr

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command opens a PR from the current branch of each service
type Command struct {
	Service string
	Title   string
	Body    string
	Draft   bool
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pr [service]",
		Short: "Open a pull request from the current branch",
		Long: `Push the current branch if it has no upstream and open a pull request
against the repository's default branch.

PRs are never opened from main or master.

Example:
  fleet pr api --title "REN-482 Add invoice export"
  fleet pr --title "REN-482 Invoice export" --draft`,
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

	cmd.Flags().StringVarP(&c.Title, "title", "t", "", "PR title (required)")
	cmd.Flags().StringVarP(&c.Body, "body", "b", "", "PR description")
	cmd.Flags().BoolVar(&c.Draft, "draft", false, "Open as draft")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required")
	}
	if err := c.Env.RequirePrivilege(); err != nil {
		return err
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	opts := fleet.PROptions{Title: c.Title, Body: c.Body, Draft: c.Draft}
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[fleet.PRDetails] {
		return c.Env.Fleet.CreatePR(ctx, repo, opts)
	}, common.PrintResult(func(d fleet.PRDetails) string {
		return fmt.Sprintf("%s → %s %s", ui.Branch(d.Branch), ui.Branch(d.Base), d.URL)
	}))
	common.PrintSummary(results)
	return nil
}
