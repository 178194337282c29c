package setup

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/ui"
)

// GitHubCommand stores the GitHub token used for PR operations
type GitHubCommand struct {
	Env *common.Env
}

func (c *GitHubCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "setup-github",
		Short: "Configure GitHub API access",
		Long: `Prompt for a GitHub token and store it in ~/.fleet/.env (mode 0600).

With a token, PRs are created and listed through the GitHub API; without one
the gh CLI is used.`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}
	parent.AddCommand(cmd)
}

func (c *GitHubCommand) Run(ctx context.Context) error {
	token, err := ui.PromptSecret("GitHub token: ")
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("a token is required")
	}

	path := c.Env.Options.EnvFilePath()
	if err := config.UpdateEnvFile(path, map[string]string{config.EnvGitHubToken: token}); err != nil {
		return err
	}
	ui.Successf("GitHub token saved to %s", path)
	return nil
}
