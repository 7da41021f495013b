// Package logger provides console output for identificator commands.
//
// The Console writes plan previews, per-move outcomes and summaries with
// color when the destination writer is a terminal. All methods are safe for
// concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sanoscorb/identificator/internal/plan"
)

// Console writes user-facing output for a command run.
type Console struct {
	writer      io.Writer
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsole creates a Console writing to the provided io.Writer.
// colorMode is "auto" (color on TTY output only), "always" or "never";
// unknown values behave like "auto".
func NewConsole(writer io.Writer, colorMode string) *Console {
	useColor := false
	switch colorMode {
	case "always":
		useColor = true
	case "never":
		useColor = false
	default:
		useColor = isTerminal(writer)
	}

	return &Console{
		writer:      writer,
		colorOutput: useColor,
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	// NO_COLOR and similar conventions are honored via the color package.
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint applies a color attribute only when color output is enabled. The
// color is force-enabled per instance so "always" mode works even when the
// global TTY detection turned color off.
func (c *Console) paint(attr color.Attribute, s string) string {
	if !c.colorOutput {
		return s
	}
	col := color.New(attr)
	col.EnableColor()
	return col.Sprint(s)
}

// Infof writes an informational line.
func (c *Console) Infof(format string, args ...interface{}) {
	c.writeLine(fmt.Sprintf(format, args...))
}

// Successf writes a success line in green.
func (c *Console) Successf(format string, args ...interface{}) {
	c.writeLine(c.paint(color.FgGreen, fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line in yellow.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.writeLine(c.paint(color.FgYellow, fmt.Sprintf(format, args...)))
}

// Errorf writes an error line in red.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.writeLine(c.paint(color.FgRed, fmt.Sprintf(format, args...)))
}

// PlanPreview writes the full list of source -> destination pairs for review
// before any move is executed.
func (c *Console) PlanPreview(p *plan.Plan) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	fmt.Fprintf(c.writer, "The following %d file(s) will be renamed under %s:\n",
		len(p.Moves), c.paint(color.FgCyan, p.Identifier))
	for _, mv := range p.Moves {
		fmt.Fprintf(c.writer, "  %s -> %s\n", mv.Source, mv.Destination)
	}
}

// MoveResult writes the outcome of one attempted move.
func (c *Console) MoveResult(r plan.Result) {
	if r.Err != nil {
		c.Errorf("failed: %s -> %s: %v", r.Move.Source, r.Move.Destination, r.Err)
		return
	}
	c.Successf("renamed: %s -> %s", r.Move.Source, r.Move.Destination)
}

// Summary writes the final tally for a batch.
func (c *Console) Summary(results []plan.Result) {
	failed := len(plan.Failed(results))
	succeeded := len(results) - failed

	c.mutex.Lock()
	defer c.mutex.Unlock()

	fmt.Fprintf(c.writer, "\nDone: %d renamed, %d failed.\n", succeeded, failed)
}

func (c *Console) writeLine(line string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	fmt.Fprintln(c.writer, line)
}
