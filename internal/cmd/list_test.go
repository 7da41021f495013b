package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIdentifiersSorted(t *testing.T) {
	dest := t.TempDir()
	for _, name := range []string{"Bob-1.txt", "Alice-1.jpg", "Alice-2.png", "readme.txt"} {
		mustWrite(t, filepath.Join(dest, name))
	}

	out, err := runRoot(t, "", "list", "-d", dest)
	require.NoError(t, err)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "readme")
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
}

func TestListWithNumbers(t *testing.T) {
	dest := t.TempDir()
	for _, name := range []string{"Alice-2.png", "Alice-1.jpg", "Bob-1.txt"} {
		mustWrite(t, filepath.Join(dest, name))
	}

	out, err := runRoot(t, "", "list", "-d", dest, "--numbers")
	require.NoError(t, err)

	assert.Contains(t, out, "Alice: 1, 2")
	assert.Contains(t, out, "Bob: 1")
}

func TestListEmptyDirectory(t *testing.T) {
	dest := t.TempDir()

	out, err := runRoot(t, "", "list", "-d", dest)
	require.NoError(t, err)

	assert.Contains(t, out, "No numbered files")
}
