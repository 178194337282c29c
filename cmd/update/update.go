package update

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command switches services to a branch and pulls it
type Command struct {
	Branch         string
	Service        string
	ComposerUpdate bool
	SkipDeps       bool
	Env            *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "update <branch> [service]",
		Short: "Check out and pull a branch in one or all services",
		Long: `Switch each service to <branch> and pull it, then install dependencies.

Uncommitted work is stashed automatically first. Services where the branch
does not exist on the remote are skipped. A JSON record of the run is
written to the log directory.

Example:
  fleet update develop
  fleet update release/2.4 billing --skip-deps
  fleet update develop --composer-update`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			c.Branch = args[0]
			if len(args) > 1 {
				c.Service = args[1]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.ComposerUpdate, "composer-update", false, "Run composer update instead of composer install")
	cmd.Flags().BoolVar(&c.SkipDeps, "skip-deps", false, "Do not install dependencies")
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

	opts := fleet.UpdateOptions{
		Branch:         c.Branch,
		SkipDeps:       c.SkipDeps,
		ComposerUpdate: c.ComposerUpdate,
	}

	ui.Header("Updating to " + c.Branch)
	started := c.Env.Fleet.Now()
	results := fleet.RunAcross(ctx, repos, func(ctx context.Context, repo registry.Repository) fleet.Result[fleet.UpdateDetails] {
		return c.Env.Fleet.Update(ctx, repo, opts)
	}, func(r fleet.Result[fleet.UpdateDetails]) {
		if r.Value.Stashed {
			ui.Warningf("%s: uncommitted changes stashed (%s)", r.Service, r.Value.StashMessage)
		}
		ui.Print(ui.RenderResultLine(r, ui.Dim(r.Value.Commit)))
	})

	ui.Print("")
	ui.Print(ui.RenderUpdateTable(results))
	common.PrintSummary(results)

	log := fleet.NewUpdateLog(c.Branch, started, c.Env.Fleet.Now(), results)
	path, err := fleet.WriteUpdateLog(c.Env.Config.LogDir, log)
	if err != nil {
		c.Env.Logger.Warn("update log not written", zap.Error(err))
		ui.Warningf("Could not write update log: %v", err)
		return nil
	}
	ui.Print(ui.Dim("Log: " + path))
	return nil
}
