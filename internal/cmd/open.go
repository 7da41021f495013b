package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sanoscorb/identificator/internal/config"
	"github.com/sanoscorb/identificator/internal/prompt"
	"github.com/sanoscorb/identificator/internal/reveal"
	"github.com/sanoscorb/identificator/internal/scan"
	"github.com/spf13/cobra"
)

// openDestination is swapped in tests to avoid shelling out.
var openDestination = func(destDir, target string) error {
	return reveal.New().Reveal(destDir, target)
}

// NewOpenCommand creates the open command
func NewOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Reveal an identifier's first file in the file manager",
		Long: `Open the destination directory in the host file manager, selecting the
lowest-numbered file of the given identifier where the platform supports
selection (Windows Explorer, macOS Finder).`,
		Args: cobra.NoArgs,
		RunE: runOpen,
	}

	cmd.Flags().StringP("destination", "d", "", "Destination directory (prompted when missing)")
	cmd.Flags().StringP("identifier", "i", "", "Identifier to reveal (prompted when missing)")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultPath+")")

	return cmd
}

// runOpen implements the open command logic
func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}

	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	destFlag, _ := cmd.Flags().GetString("destination")
	destDir, err := resolveDestination(destFlag, cfg, prompter)
	if err != nil {
		return err
	}

	order, err := identifierOrder(cfg)
	if err != nil {
		return err
	}
	scanner := scan.NewScanner(destDir, order)

	idFlag, _ := cmd.Flags().GetString("identifier")
	identifier, err := resolveIdentifier(idFlag, scanner, prompter)
	if err != nil {
		return err
	}

	used, err := scanner.BusyNumbers(identifier)
	if err != nil {
		return err
	}
	if len(used) == 0 {
		return fmt.Errorf("%q: %w", identifier, scan.ErrUnknownIdentifier)
	}

	lowest := 0
	for n := range used {
		if lowest == 0 || n < lowest {
			lowest = n
		}
	}

	entries, err := scanner.Entries()
	if err != nil {
		return err
	}
	name, ok := scan.FileForNumber(entries, identifier, lowest)
	if !ok {
		return fmt.Errorf("%q: %w", identifier, scan.ErrUnknownIdentifier)
	}

	return openDestination(destDir, filepath.Join(destDir, name))
}
