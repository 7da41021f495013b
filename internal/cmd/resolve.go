package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanoscorb/identificator/internal/config"
	"github.com/sanoscorb/identificator/internal/prompt"
	"github.com/sanoscorb/identificator/internal/scan"
	"github.com/spf13/cobra"
)

// errNoFiles means the rename action has nothing to operate on. Non-fatal
// for the tool as a whole, but the rename command cannot proceed.
var errNoFiles = errors.New("no files selected; nothing to rename")

// loadCommandConfig loads the config file named by --config, falling back
// to the default path.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath
	}
	return config.LoadConfig(path)
}

// resolveDestination turns the --destination flag (or the configured
// default) into an absolute path to an existing directory, prompting
// interactively when the value is missing or invalid. Closing the prompt
// without a choice is fatal for the invoking command.
func resolveDestination(flagValue string, cfg *config.Config, prompter *prompt.Prompter) (string, error) {
	candidate := flagValue
	if candidate == "" {
		candidate = cfg.Destination
	}
	if candidate != "" {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}

	if !prompter.Interactive() {
		if candidate != "" {
			return "", fmt.Errorf("destination %s is not an existing directory", candidate)
		}
		return "", errors.New("no destination directory selected (use --destination)")
	}

	dir, err := prompter.Destination()
	if errors.Is(err, prompt.ErrNoSelection) {
		return "", errors.New("no destination directory selected")
	}
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// resolveSources validates the file arguments, prompting for a fresh
// selection when they are missing or invalid and a terminal is attached.
func resolveSources(args []string, prompter *prompt.Prompter) ([]string, error) {
	sources, err := validateSources(args)
	if err == nil && len(sources) > 0 {
		return sources, nil
	}

	if !prompter.Interactive() {
		if err != nil {
			return nil, err
		}
		return nil, errNoFiles
	}

	files, perr := prompter.SourceFiles()
	if errors.Is(perr, prompt.ErrNoSelection) {
		return nil, errNoFiles
	}
	if perr != nil {
		return nil, perr
	}
	return validateSources(files)
}

// validateSources resolves every path to an absolute one and requires each
// to be an existing regular file.
func validateSources(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	sources := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("%s is not an existing file", p)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s is not a regular file", p)
		}
		sources = append(sources, abs)
	}
	return sources, nil
}

// resolveIdentifier returns the trimmed identifier from the flag, or asks
// the user to choose from the directory's known identifiers.
func resolveIdentifier(flagValue string, scanner *scan.Scanner, prompter *prompt.Prompter) (string, error) {
	identifier := strings.TrimSpace(flagValue)
	if identifier != "" {
		return identifier, nil
	}

	if !prompter.Interactive() {
		return "", errors.New("no identifier given (use --identifier)")
	}

	existing, err := scanner.Identifiers()
	if err != nil {
		return "", err
	}
	identifier, err = prompter.Identifier(existing)
	if errors.Is(err, prompt.ErrNoSelection) {
		return "", errors.New("please select an identifier")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(identifier), nil
}

// identifierOrder maps the configured order policy onto the scanner's.
func identifierOrder(cfg *config.Config) (scan.Order, error) {
	return scan.ParseOrder(cfg.IdentifierOrder)
}

// journalPath resolves the configured journal database path against the
// destination directory.
func journalPath(cfg *config.Config, destDir string) string {
	if filepath.IsAbs(cfg.Journal.DBPath) {
		return cfg.Journal.DBPath
	}
	return filepath.Join(destDir, cfg.Journal.DBPath)
}
