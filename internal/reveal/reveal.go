// Package reveal opens a destination directory in the host file manager,
// selecting a specific file where the platform supports it.
package reveal

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener shells out to the platform file manager. The command runner is
// injectable for tests.
type Opener struct {
	goos   string
	runner func(name string, args ...string) error
}

// New creates an Opener for the current platform.
func New() *Opener {
	return &Opener{goos: runtime.GOOS, runner: runCommand}
}

// Reveal opens destDir in the file manager. On Windows and macOS the given
// target file is selected; elsewhere the directory is simply opened, since
// xdg-open has no selection support.
func (o *Opener) Reveal(destDir, target string) error {
	switch o.goos {
	case "windows":
		// explorer.exe reports a nonzero exit code even on success, so a
		// plain exit error is ignored once the process could be started.
		if err := o.runner("explorer", "/select,", target); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return nil
			}
			return err
		}
		return nil
	case "darwin":
		return o.runner("open", "-R", target)
	default:
		return o.runner("xdg-open", destDir)
	}
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
