package menu

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/cmd/branches"
	"github.com/bjulian5/fleet/cmd/changes"
	"github.com/bjulian5/fleet/cmd/create"
	"github.com/bjulian5/fleet/cmd/drop"
	"github.com/bjulian5/fleet/cmd/list"
	"github.com/bjulian5/fleet/cmd/prs"
	"github.com/bjulian5/fleet/cmd/recent"
	reviewcmd "github.com/bjulian5/fleet/cmd/review"
	"github.com/bjulian5/fleet/cmd/search"
	"github.com/bjulian5/fleet/cmd/stash"
	"github.com/bjulian5/fleet/cmd/status"
	synccmd "github.com/bjulian5/fleet/cmd/sync"
	"github.com/bjulian5/fleet/cmd/update"
	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/ui"
)

type runner interface {
	Run(ctx context.Context) error
}

// action is one menu entry. build receives the chosen service ("" = all)
// and any prompted input.
type action struct {
	choice      ui.Choice
	pickService bool
	input       string // prompt text; empty means no input
	build       func(env *common.Env, service, input string) runner
}

var actions = []action{
	{choice: ui.Choice{Key: "list", Label: "Current branches", Description: "Show the checked out branch of every service"},
		build: func(env *common.Env, _, _ string) runner { return &list.Command{Env: env} }},
	{choice: ui.Choice{Key: "status", Label: "Status", Description: "Uncommitted files and ahead/behind counts"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner { return &status.Command{Env: env, Service: svc} }},
	{choice: ui.Choice{Key: "changes", Label: "Changes", Description: "List uncommitted files"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner { return &changes.Command{Env: env, Service: svc} }},
	{choice: ui.Choice{Key: "branches", Label: "Branches", Description: "List local and remote branches"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner { return &branches.Command{Env: env, Service: svc} }},
	{choice: ui.Choice{Key: "recent", Label: "Recent commits", Description: "Commits from the last 7 days"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner {
			return &recent.Command{Env: env, Service: svc, Days: 7, Count: 10}
		}},
	{choice: ui.Choice{Key: "search", Label: "Search code", Description: "git grep across services"}, pickService: true, input: "Pattern: ",
		build: func(env *common.Env, svc, in string) runner {
			return &search.Command{Env: env, Service: svc, Pattern: in}
		}},
	{choice: ui.Choice{Key: "sync", Label: "Sync", Description: "Pull the current branch"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner { return &synccmd.Command{Env: env, Service: svc} }},
	{choice: ui.Choice{Key: "update", Label: "Update to branch", Description: "Check out and pull a branch, install dependencies"}, pickService: true, input: "Branch: ",
		build: func(env *common.Env, svc, in string) runner {
			return &update.Command{Env: env, Service: svc, Branch: in}
		}},
	{choice: ui.Choice{Key: "create", Label: "Create ticket branch", Description: "Create feature/REN-<n> from develop"}, pickService: true, input: "Ticket: ",
		build: func(env *common.Env, svc, in string) runner {
			return &create.Command{Env: env, Service: svc, Ticket: in}
		}},
	{choice: ui.Choice{Key: "stash-save", Label: "Stash changes", Description: "Stash uncommitted work"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner {
			return &stash.Command{Env: env, Service: svc, Action: stash.ActionSave}
		}},
	{choice: ui.Choice{Key: "stash-pop", Label: "Pop stash", Description: "Restore the latest stash"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner {
			return &stash.Command{Env: env, Service: svc, Action: stash.ActionPop}
		}},
	{choice: ui.Choice{Key: "drop", Label: "Drop changes", Description: "Discard uncommitted work (asks for confirmation)"}, pickService: true,
		build: func(env *common.Env, svc, _ string) runner { return &drop.Command{Env: env, Service: svc} }},
	{choice: ui.Choice{Key: "prs", Label: "Pull requests", Description: "Open pull requests across services"},
		build: func(env *common.Env, _, _ string) runner { return &prs.Command{Env: env, State: "open", Limit: 30} }},
	{choice: ui.Choice{Key: "review", Label: "Review ticket", Description: "Group PRs for a ticket across services"}, input: "Ticket: ",
		build: func(env *common.Env, _, in string) runner {
			return &reviewcmd.Command{Env: env, Ticket: in, State: "open", Limit: 30}
		}},
}

// Command shows an interactive menu of the other commands
type Command struct {
	Env *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "menu",
		Short: "Pick a command interactively",
		Args:  cobra.NoArgs,
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
	choices := make([]ui.Choice, 0, len(actions))
	for _, a := range actions {
		choices = append(choices, a.choice)
	}

	key, err := ui.Select("fleet", choices)
	if err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}
	if key == "" {
		return nil
	}

	var picked action
	for _, a := range actions {
		if a.choice.Key == key {
			picked = a
		}
	}

	service := ""
	if picked.pickService {
		var ok bool
		service, ok, err = c.selectService()
		if err != nil || !ok {
			return err
		}
	}

	input := ""
	if picked.input != "" {
		if input = ui.Prompt(picked.input); input == "" {
			ui.Info("Cancelled.")
			return nil
		}
	}

	return picked.build(c.Env, service, input).Run(ctx)
}

// selectService returns ok=false when the picker was cancelled and "" for all services
func (c *Command) selectService() (string, bool, error) {
	choices := []ui.Choice{{Key: "*", Label: "All services", Description: c.Env.Config.RepoRoot}}
	for _, repo := range c.Env.Registry.All() {
		choices = append(choices, ui.Choice{Key: repo.Name, Label: repo.Name, Description: repo.Path})
	}
	key, err := ui.Select("service", choices)
	if err != nil {
		return "", false, fmt.Errorf("menu failed: %w", err)
	}
	switch key {
	case "":
		return "", false, nil
	case "*":
		return "", true, nil
	}
	return key, true, nil
}
