package cmd

import (
	"fmt"
	"sort"

	"github.com/sanoscorb/identificator/internal/config"
	"github.com/sanoscorb/identificator/internal/prompt"
	"github.com/sanoscorb/identificator/internal/scan"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List identifiers present in the destination directory",
		Long: `List the identifiers found in the destination directory, derived from
filenames matching <identifier>-<number>.<extension>. Files that do not
match the convention are ignored.

With --numbers, the sequence numbers in use are shown per identifier.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("destination", "d", "", "Destination directory (prompted when missing)")
	cmd.Flags().Bool("numbers", false, "Show the sequence numbers in use per identifier")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultPath+")")

	return cmd
}

// runList implements the list command logic
func runList(cmd *cobra.Command, args []string) error {
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

	identifiers, err := scanner.Identifiers()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(identifiers) == 0 {
		fmt.Fprintf(out, "No numbered files in %s.\n", destDir)
		return nil
	}

	showNumbers, _ := cmd.Flags().GetBool("numbers")
	for _, identifier := range identifiers {
		if !showNumbers {
			fmt.Fprintln(out, identifier)
			continue
		}
		used, err := scanner.BusyNumbers(identifier)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", identifier, formatNumbers(used))
	}

	return nil
}

// formatNumbers renders a busy-number set as a sorted, comma-separated list.
func formatNumbers(used map[int]struct{}) string {
	numbers := make([]int, 0, len(used))
	for n := range used {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	s := ""
	for i, n := range numbers {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", n)
	}
	return s
}
