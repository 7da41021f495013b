// Package filelock guards a destination directory against concurrent
// identificator runs between the busy-number scan and the last move.
package filelock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside the destination directory.
// It is left in place between runs and reused.
const LockFileName = ".identificator.lock"

// DestinationLock wraps a flock lock on a destination directory. It only
// coordinates identificator processes; it does not stop other programs from
// writing to the directory (a known, accepted race).
type DestinationLock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock for the given destination directory.
func New(destDir string) *DestinationLock {
	path := filepath.Join(destDir, LockFileName)
	return &DestinationLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file location.
func (l *DestinationLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. A destination already locked by
// another run is an error rather than a wait.
func (l *DestinationLock) Acquire() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock destination directory via %s: %w", l.path, err)
	}
	if !acquired {
		return fmt.Errorf("destination directory is in use by another identificator run (lock: %s)", l.path)
	}
	return nil
}

// Release releases the lock. The lock file itself remains on disk.
func (l *DestinationLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
