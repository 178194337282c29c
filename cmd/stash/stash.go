package stash

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

// Stash actions
const (
	ActionSave = "save"
	ActionPop  = "pop"
	ActionList = "list"
)

// Command saves, pops or lists stashes across services
type Command struct {
	Action  string
	Message string
	Service string
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stash <save|pop|list> [message]",
		Short: "Stash or restore uncommitted work",
		Long: `Manage stashes in one or all services.

  save [message]  stash tracked and untracked changes (clean repositories are skipped)
  pop             apply and drop the latest stash
  list            show stash counts (entries with --verbose)

Example:
  fleet stash save "before release"
  fleet stash pop --service api`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{ActionSave, ActionPop, ActionList},
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			c.Action = args[0]
			if len(args) > 1 {
				c.Message = args[1]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Service, "service", "s", "", "Limit to one service")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	var op func(context.Context, registry.Repository) fleet.Result[fleet.StashDetails]
	switch c.Action {
	case ActionSave:
		op = func(ctx context.Context, repo registry.Repository) fleet.Result[fleet.StashDetails] {
			return c.Env.Fleet.StashSave(ctx, repo, c.Message)
		}
	case ActionPop:
		op = c.Env.Fleet.StashPop
	case ActionList:
		op = c.Env.Fleet.StashList
	default:
		return fmt.Errorf("unknown stash action %q: expected save, pop or list", c.Action)
	}

	if c.Action != ActionList {
		if err := c.Env.RequirePrivilege(); err != nil {
			return err
		}
	}
	repos, err := c.Env.Repositories(c.Service)
	if err != nil {
		return err
	}

	results := fleet.RunAcross(ctx, repos, op, common.PrintResult(c.describe))
	common.PrintSummary(results)
	return nil
}

func (c *Command) describe(d fleet.StashDetails) string {
	if d.Status != fleet.StashListed {
		return string(d.Status)
	}
	text := fmt.Sprintf("%d stash entries", d.Count())
	if d.Count() == 1 {
		text = "1 stash entry"
	}
	if c.Env.Config.Verbose {
		for _, e := range d.Entries {
			text += "\n    " + ui.Dim(e.Ref) + " " + e.Message
		}
	}
	return text
}
