package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Command represents a CLI command that can register itself with cobra
type Command interface {
	// Register adds the command to the parent cobra command
	Register(parent *cobra.Command)

	// Run executes the command once flags and arguments are bound
	Run(ctx context.Context) error
}
