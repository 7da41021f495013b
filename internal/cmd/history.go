package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sanoscorb/identificator/internal/config"
	"github.com/sanoscorb/identificator/internal/journal"
	"github.com/sanoscorb/identificator/internal/prompt"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past rename batches from the journal",
		Long: `Show the rename batches recorded in the destination directory's journal,
newest first. Each batch lists its identifier and move outcomes.

The journal only exists once a rename has been recorded; destinations that
never saw a journaled rename have no history.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().StringP("destination", "d", "", "Destination directory (prompted when missing)")
	cmd.Flags().Int("limit", 10, "Maximum number of batches to show")
	cmd.Flags().Bool("moves", false, "Show the individual moves of each batch")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultPath+")")

	return cmd
}

// runHistory implements the history command logic
func runHistory(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()

	dbPath := journalPath(cfg, destDir)
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintf(out, "No journal for %s.\n", destDir)
		return nil
	}

	store, err := journal.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	batches, err := store.RecentBatches(context.Background(), destDir, limit)
	if err != nil {
		return err
	}

	if len(batches) == 0 {
		fmt.Fprintf(out, "No recorded batches for %s.\n", destDir)
		return nil
	}

	showMoves, _ := cmd.Flags().GetBool("moves")
	for _, batch := range batches {
		succeeded := 0
		for _, mv := range batch.Moves {
			if mv.Success {
				succeeded++
			}
		}
		fmt.Fprintf(out, "%s  %s  %d/%d moved  (batch %s)\n",
			batch.StartedAt.Local().Format("2006-01-02 15:04:05"),
			batch.Identifier, succeeded, len(batch.Moves), batch.ID)

		if !showMoves {
			continue
		}
		for _, mv := range batch.Moves {
			status := "ok"
			if !mv.Success {
				status = "failed: " + mv.Error
			}
			fmt.Fprintf(out, "    %s -> %s  [%s]\n", mv.Source, mv.Destination, status)
		}
	}

	return nil
}
