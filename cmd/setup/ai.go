package setup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/ui"
)

const defaultModel = "gpt-4o"

// AICommand stores the OpenAI credentials used by review --analyze
type AICommand struct {
	Env *common.Env
}

func (c *AICommand) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "setup-ai",
		Short: "Configure AI review analysis",
		Long: `Prompt for an OpenAI API key, model and token limit and store them in
~/.fleet/.env (mode 0600). Leave the key empty to keep the current one.`,
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

func (c *AICommand) Run(ctx context.Context) error {
	current := c.Env.Config.Secrets

	key, err := ui.PromptSecret("OpenAI API key: ")
	if err != nil {
		return err
	}
	if key == "" && !current.HasAI() {
		return fmt.Errorf("an API key is required")
	}

	model := current.OpenAIModel
	if model == "" {
		model = defaultModel
	}
	model = ui.PromptDefault("Model: ", model)

	tokens := ui.PromptDefault("Max tokens: ", strconv.Itoa(current.OpenAIMaxTokens))
	if n, err := strconv.Atoi(tokens); err != nil || n <= 0 {
		return fmt.Errorf("invalid max tokens %q", tokens)
	}

	updates := map[string]string{
		config.EnvOpenAIModel:     model,
		config.EnvOpenAIMaxTokens: tokens,
	}
	if key != "" {
		updates[config.EnvOpenAIKey] = key
	}

	path := c.Env.Options.EnvFilePath()
	if err := config.UpdateEnvFile(path, updates); err != nil {
		return err
	}
	ui.Successf("AI settings saved to %s", path)
	return nil
}
