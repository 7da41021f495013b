package cmd

import (
	"context"
	"fmt"

	"github.com/sanoscorb/identificator/internal/config"
	"github.com/sanoscorb/identificator/internal/filelock"
	"github.com/sanoscorb/identificator/internal/journal"
	"github.com/sanoscorb/identificator/internal/logger"
	"github.com/sanoscorb/identificator/internal/plan"
	"github.com/sanoscorb/identificator/internal/prompt"
	"github.com/sanoscorb/identificator/internal/scan"
	"github.com/sanoscorb/identificator/internal/sequence"
	"github.com/spf13/cobra"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename [files...]",
		Short: "Rename files into the destination sequence",
		Long: `Rename the given files into the destination directory as
<identifier>-<number>.<extension>, picking the lowest sequence numbers not
yet taken by that identifier.

Files keep their original extension and are processed in the order given.
The full plan is shown for review and nothing is moved without an explicit
confirmation (or --yes).

Missing inputs are prompted for on a terminal: the destination directory,
the files, and the identifier (chosen from the identifiers already present
in the destination or typed as a new name).

Examples:
  identificator rename -d ~/archive -i Alice scan1.jpg scan2.png
  identificator rename -d ~/archive photo.jpg          # identifier prompted
  identificator rename --dry-run -d ~/archive -i Bob *.jpg
  identificator rename --yes -d ~/archive -i Bob *.jpg # no confirmation`,
		RunE: runRename,
	}

	cmd.Flags().StringP("destination", "d", "", "Destination directory (prompted when missing)")
	cmd.Flags().StringP("identifier", "i", "", "Identifier to file the batch under (prompted when missing)")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultPath+")")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Bool("dry-run", false, "Show the rename plan without moving anything")
	cmd.Flags().Bool("no-journal", false, "Do not record this batch in the journal")

	return cmd
}

// runRename implements the rename command logic
func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}

	console := logger.NewConsole(cmd.OutOrStdout(), cfg.Color)
	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	destFlag, _ := cmd.Flags().GetString("destination")
	destDir, err := resolveDestination(destFlag, cfg, prompter)
	if err != nil {
		return err
	}

	sources, err := resolveSources(args, prompter)
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

	// Hold the destination lock from the busy-number scan through the last
	// move so two identificator runs cannot allocate the same numbers.
	lock := filelock.New(destDir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	used, err := scanner.BusyNumbers(identifier)
	if err != nil {
		return err
	}
	numbers := sequence.Allocate(used, len(sources))

	renamePlan, err := plan.Build(sources, identifier, numbers, destDir)
	if err != nil {
		return err
	}

	console.PlanPreview(renamePlan)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		console.Infof("Dry run, nothing was renamed.")
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirmed, err := prompter.Confirm("Rename these files? The action cannot be undone!")
		if err != nil {
			return err
		}
		if !confirmed {
			console.Infof("Cancelled, nothing was renamed.")
			return nil
		}
	}

	batch := journal.NewBatch(destDir, identifier)
	results := plan.Execute(renamePlan, plan.OSMover{}, cfg.ContinueOnError)
	for i, result := range results {
		console.MoveResult(result)
		batch.Add(result.Move.Source, result.Move.Destination, numbers[i], result.Err)
	}

	recordBatch(cmd, cfg, destDir, batch, console)

	console.Summary(results)

	if failed := plan.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d moves failed", len(failed), len(renamePlan.Moves))
	}
	return nil
}

// recordBatch writes the batch to the journal. Journal trouble is reported
// as a warning and never fails the rename that produced it.
func recordBatch(cmd *cobra.Command, cfg *config.Config, destDir string, batch *journal.Batch, console *logger.Console) {
	noJournal, _ := cmd.Flags().GetBool("no-journal")
	if noJournal || !cfg.Journal.Enabled {
		return
	}

	store, err := journal.NewStore(journalPath(cfg, destDir))
	if err != nil {
		console.Warnf("journal unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.RecordBatch(context.Background(), batch); err != nil {
		console.Warnf("failed to record batch in journal: %v", err)
	}
}
