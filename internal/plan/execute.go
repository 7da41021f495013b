package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Mover performs a single file move. The default implementation is OSMover;
// tests substitute their own.
type Mover interface {
	Move(source, destination string) error
}

// OSMover moves files with os.Rename, falling back to copy-and-remove when
// the rename fails with a link error (typically a cross-device move).
type OSMover struct{}

// Move renames source to destination.
func (OSMover) Move(source, destination string) error {
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if copyErr := copyFile(source, destination); copyErr != nil {
		return fmt.Errorf("move %s across filesystems: %w", source, copyErr)
	}
	if rmErr := os.Remove(source); rmErr != nil {
		return fmt.Errorf("remove %s after copy: %w", source, rmErr)
	}
	return nil
}

// copyFile copies src to dst, refusing to overwrite an existing file. On a
// write failure the partial destination is removed.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// Result records the outcome of one attempted move.
type Result struct {
	Move Move
	Err  error
}

// Execute attempts the plan's moves in order. With continueOnError set, a
// failed move is recorded and execution carries on; otherwise the first
// failure ends the run. The returned slice holds one entry per attempted
// move, so under abort-on-error it may be shorter than the plan.
func Execute(p *Plan, mover Mover, continueOnError bool) []Result {
	results := make([]Result, 0, len(p.Moves))
	for _, mv := range p.Moves {
		err := mover.Move(mv.Source, mv.Destination)
		results = append(results, Result{Move: mv, Err: err})
		if err != nil && !continueOnError {
			break
		}
	}
	return results
}

// Failed filters results down to the entries that carry an error.
func Failed(results []Result) []Result {
	failed := make([]Result, 0)
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
