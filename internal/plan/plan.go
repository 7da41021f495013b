// Package plan builds and executes ordered batch-rename plans.
package plan

import (
	"fmt"
	"path/filepath"
)

// Move is one source-to-destination pair in a rename plan.
type Move struct {
	Source      string
	Destination string
}

// Plan is the ordered set of moves computed for one rename operation. It is
// pure data: building a plan touches nothing on disk.
type Plan struct {
	Identifier string
	Moves      []Move
}

// Build pairs each source file, in selection order, with the allocated
// number at the same position. The destination name is
// "<identifier>-<number><ext>" where ext is the source filename's final
// dot-suffix taken verbatim (empty for extensionless sources).
//
// A length mismatch between sources and numbers is an error; the plan is
// never silently truncated or padded.
func Build(sources []string, identifier string, numbers []int, destDir string) (*Plan, error) {
	if len(sources) != len(numbers) {
		return nil, fmt.Errorf("source count %d does not match allocated number count %d", len(sources), len(numbers))
	}

	moves := make([]Move, len(sources))
	for i, source := range sources {
		name := fmt.Sprintf("%s-%d%s", identifier, numbers[i], filepath.Ext(source))
		moves[i] = Move{
			Source:      source,
			Destination: filepath.Join(destDir, name),
		}
	}

	return &Plan{Identifier: identifier, Moves: moves}, nil
}
