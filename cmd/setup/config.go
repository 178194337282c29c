// Package setup holds the interactive commands that write configuration and
// credentials.
package setup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/ui"
)

// ConfigCommand writes the repository root to a config file
type ConfigCommand struct {
	RepoRoot string
	Local    bool
	Env      *common.Env
}

func (c *ConfigCommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "setup-config [repo-root]",
		Short: "Save the repository root to a config file",
		Long: `Write {repoRoot, created, version} to ~/.fleet/config.json, or to
./.fleet.json with --local. Without an argument you are prompted, with the
currently resolved root as default.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.RepoRoot = args[0]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.Local, "local", false, "Write ./.fleet.json instead of the home config")
	parent.AddCommand(cmd)
}

func (c *ConfigCommand) Run(ctx context.Context) error {
	root := c.RepoRoot
	if root == "" {
		root = ui.PromptDefault("Repository root: ", c.Env.Config.RepoRoot)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		ui.Warningf("%s is not a directory; saving anyway", root)
	}

	path := c.Env.Options.HomeConfigPath()
	if c.Local {
		path = c.Env.Options.LocalConfigPath()
	}
	if _, err := config.WriteFile(path, root); err != nil {
		return err
	}

	ui.Successf("Saved repository root %s to %s", root, path)
	found := 0
	for _, repo := range c.Env.Registry.All() {
		if _, err := os.Stat(filepath.Join(root, filepath.Base(repo.Path))); err == nil {
			found++
		}
	}
	ui.Infof("%d of %d services found under %s", found, len(c.Env.Registry.All()), root)
	return nil
}
