package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/cmd/branches"
	"github.com/bjulian5/fleet/cmd/changes"
	"github.com/bjulian5/fleet/cmd/create"
	"github.com/bjulian5/fleet/cmd/drop"
	"github.com/bjulian5/fleet/cmd/list"
	"github.com/bjulian5/fleet/cmd/menu"
	"github.com/bjulian5/fleet/cmd/pr"
	"github.com/bjulian5/fleet/cmd/prs"
	"github.com/bjulian5/fleet/cmd/recent"
	reviewcmd "github.com/bjulian5/fleet/cmd/review"
	"github.com/bjulian5/fleet/cmd/search"
	"github.com/bjulian5/fleet/cmd/setup"
	"github.com/bjulian5/fleet/cmd/stash"
	"github.com/bjulian5/fleet/cmd/status"
	synccmd "github.com/bjulian5/fleet/cmd/sync"
	"github.com/bjulian5/fleet/cmd/update"
	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/ui"
)

var menuCmd = &menu.Command{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Run git operations across all service repositories",
	Long: `Fleet applies git and dependency operations to every service repository
under one root, and aggregates their pull requests for review.

Commands run in each service in turn. A failure in one service is reported
and the remaining services still run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return cmd.Help()
		}
		var err error
		menuCmd.Env, err = common.InitEnv(cmd)
		if err != nil {
			return err
		}
		return menuCmd.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP(common.FlagRepoRoot, "r", "", "Directory containing the service repositories")
	rootCmd.PersistentFlags().BoolP(common.FlagVerbose, "v", false, "Log every command to stderr")

	commands := []Command{
		&list.Command{},
		&branches.Command{},
		&status.Command{},
		&changes.Command{},
		&drop.Command{},
		&synccmd.Command{},
		&search.Command{},
		&recent.Command{},
		&stash.Command{},
		&update.Command{},
		&create.Command{},
		&pr.Command{},
		&prs.Command{},
		&reviewcmd.Command{},
		&setup.ConfigCommand{},
		&setup.AICommand{},
		&setup.GitHubCommand{},
		menuCmd,
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
