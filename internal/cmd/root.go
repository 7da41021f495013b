package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for identificator
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identificator",
		Short: "Batch-rename files into an <identifier>-<number> sequence",
		Long: `Identificator renames selected files into a destination directory using
the <identifier>-<number>.<extension> naming scheme, always choosing the
lowest sequence numbers still free for that identifier. Repeated runs
extend an existing sequence without collisions.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRenameCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewOpenCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
