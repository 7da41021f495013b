// Package prompt implements the interactive surfaces of identificator:
// destination and file selection, identifier choice, and the pre-move
// confirmation. Prompts read line-oriented input, so they work the same
// from a terminal and from piped test input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNoSelection is returned when the user ends a prompt without choosing
// anything (empty line or end of input).
var ErrNoSelection = errors.New("nothing selected")

// Prompter asks the user for input on a line-by-line basis.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// New creates a Prompter reading from in and writing questions to out.
// Interactive reports true only when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Interactive reports whether the input side is a terminal. Commands use
// this to decide between prompting and failing fast on missing arguments.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Line prints the question and returns one trimmed line of input. End of
// input yields an empty string without error.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question and returns true only for an explicit
// affirmative answer ("y" or "yes", case-insensitive). Every other answer,
// including end of input, declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Line(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Destination asks for a destination directory until an existing directory
// is entered. An empty answer aborts with ErrNoSelection.
func (p *Prompter) Destination() (string, error) {
	for {
		answer, err := p.Line("Destination directory: ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", ErrNoSelection
		}
		info, err := os.Stat(answer)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(p.out, "%s is not an existing directory.\n", answer)
			continue
		}
		return answer, nil
	}
}

// SourceFiles asks for file paths one per line until an empty line. Paths
// that are not regular files are rejected and asked again. Ending without a
// single file yields ErrNoSelection.
func (p *Prompter) SourceFiles() ([]string, error) {
	fmt.Fprintln(p.out, "Enter files to rename, one per line (empty line to finish):")
	files := make([]string, 0)
	for {
		answer, err := p.Line("> ")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			break
		}
		info, err := os.Stat(answer)
		if err != nil || !info.Mode().IsRegular() {
			fmt.Fprintf(p.out, "%s is not an existing file.\n", answer)
			continue
		}
		files = append(files, answer)
	}
	if len(files) == 0 {
		return nil, ErrNoSelection
	}
	return files, nil
}

// Identifier shows the known identifiers as a numbered menu and accepts
// either an index into the menu or a free-form new identifier. The answer
// is trimmed; an empty answer aborts with ErrNoSelection.
func (p *Prompter) Identifier(existing []string) (string, error) {
	if len(existing) > 0 {
		fmt.Fprintln(p.out, "Identifiers already in the destination directory:")
		for i, id := range existing {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, id)
		}
	}

	answer, err := p.Line("Identifier (number from the list or a new name): ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", ErrNoSelection
	}

	if index, err := strconv.Atoi(answer); err == nil && index >= 1 && index <= len(existing) {
		return existing[index-1], nil
	}
	return answer, nil
}
