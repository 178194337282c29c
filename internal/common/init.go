package common

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/ui"
)

// Persistent flag names defined on the root command
const (
	FlagRepoRoot = "repo-root"
	FlagVerbose  = "verbose"
)

// InitEnv builds the Env from the root's persistent flags.
// Suitable for use in PreRunE hooks.
func InitEnv(cmd *cobra.Command) (*Env, error) {
	repoRoot, _ := cmd.Flags().GetString(FlagRepoRoot)
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)

	opts, err := config.DefaultOptions(repoRoot, verbose)
	if err != nil {
		return nil, err
	}
	env, err := NewEnv(opts)
	if err != nil {
		ui.Error("Could not load configuration")
		return nil, fmt.Errorf("environment initialization failed: %w", err)
	}
	return env, nil
}

// PrintResult prints one service's outcome line as it completes
func PrintResult[T any](detail func(T) string) func(fleet.Result[T]) {
	return func(r fleet.Result[T]) {
		text := ""
		if r.Success() && detail != nil {
			text = detail(r.Value)
		}
		ui.Print(ui.RenderResultLine(r, text))
	}
}

// PrintSummary prints the closing summary of a batch
func PrintSummary[T any](results []fleet.Result[T]) fleet.Summary {
	s := fleet.Summarize(results)
	ui.Print("")
	ui.Print(ui.RenderSummary(s))
	return s
}
