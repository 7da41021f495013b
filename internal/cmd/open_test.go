package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sanoscorb/identificator/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFakeOpener routes openDestination into a recorder for the test's
// duration.
func withFakeOpener(t *testing.T) *fakeOpener {
	t.Helper()
	fake := &fakeOpener{}
	old := openDestination
	openDestination = fake.open
	t.Cleanup(func() { openDestination = old })
	return fake
}

type fakeOpener struct {
	destDir string
	target  string
	called  bool
	err     error
}

func (f *fakeOpener) open(destDir, target string) error {
	f.called = true
	f.destDir = destDir
	f.target = target
	return f.err
}

func TestOpenRevealsLowestNumberedFile(t *testing.T) {
	fake := withFakeOpener(t)

	dest := t.TempDir()
	for _, name := range []string{"Alice-3.jpg", "Alice-10.png", "Bob-1.txt"} {
		mustWrite(t, filepath.Join(dest, name))
	}

	_, err := runRoot(t, "", "open", "-d", dest, "-i", "Alice")
	require.NoError(t, err)

	assert.True(t, fake.called)
	assert.Equal(t, dest, fake.destDir)
	assert.Equal(t, filepath.Join(dest, "Alice-3.jpg"), fake.target)
}

func TestOpenLeadingZeroFile(t *testing.T) {
	fake := withFakeOpener(t)

	dest := t.TempDir()
	mustWrite(t, filepath.Join(dest, "Dan-007.jpg"))

	_, err := runRoot(t, "", "open", "-d", dest, "-i", "Dan")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "Dan-007.jpg"), fake.target)
}

func TestOpenUnknownIdentifier(t *testing.T) {
	fake := withFakeOpener(t)

	dest := t.TempDir()
	mustWrite(t, filepath.Join(dest, "Alice-1.jpg"))

	_, err := runRoot(t, "", "open", "-d", dest, "-i", "Zed")
	require.Error(t, err)

	assert.True(t, errors.Is(err, scan.ErrUnknownIdentifier))
	assert.False(t, fake.called)
}

func TestOpenPropagatesOpenerError(t *testing.T) {
	fake := withFakeOpener(t)
	fake.err = errors.New("no display")

	dest := t.TempDir()
	mustWrite(t, filepath.Join(dest, "Alice-1.jpg"))

	_, err := runRoot(t, "", "open", "-d", dest, "-i", "Alice")
	assert.Error(t, err)
}
