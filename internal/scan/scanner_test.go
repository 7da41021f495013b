package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Run("conforming name", func(t *testing.T) {
		rec, ok := ParseRecord("Alice-12.jpg")
		require.True(t, ok)
		assert.Equal(t, "Alice", rec.Identifier)
		assert.Equal(t, 12, rec.Number)
		assert.Equal(t, "jpg", rec.Extension)
	})

	t.Run("identifier is trimmed", func(t *testing.T) {
		rec, ok := ParseRecord(" Alice -3.png")
		require.True(t, ok)
		assert.Equal(t, "Alice", rec.Identifier)
	})

	t.Run("leading zeros collapse to integer value", func(t *testing.T) {
		rec, ok := ParseRecord("Dan-007.jpg")
		require.True(t, ok)
		assert.Equal(t, 7, rec.Number)
	})

	t.Run("split is the first admissible boundary", func(t *testing.T) {
		// Non-greedy capture: the hyphen before "2" is the first point
		// where the remainder forms "-<digits>.<ext>".
		rec, ok := ParseRecord("A-1-2.jpg")
		require.True(t, ok)
		assert.Equal(t, "A-1", rec.Identifier)
		assert.Equal(t, 2, rec.Number)
	})

	t.Run("non-conforming names produce no record", func(t *testing.T) {
		for _, name := range []string{
			"readme.txt",
			"Alice-.jpg",
			"Alice-1",
			"-1.jpg",
			"Alice-x1.jpg",
			"Alice-1.",
		} {
			_, ok := ParseRecord(name)
			assert.False(t, ok, "expected %q to be rejected", name)
		}
	})

	t.Run("whitespace-only identifier is rejected", func(t *testing.T) {
		_, ok := ParseRecord("  -1.jpg")
		assert.False(t, ok)
	})
}

func TestListIdentifiers(t *testing.T) {
	entries := []string{"Bob-1.txt", "Alice-1.jpg", "readme.txt", "Alice-2.png"}

	got := ListIdentifiers(entries)

	// Discovery order, deduplicated.
	assert.Equal(t, []string{"Bob", "Alice"}, got)
}

func TestBusyNumbers(t *testing.T) {
	entries := []string{"Alice-1.jpg", "Alice-2.png", "Bob-1.txt", "readme.txt"}

	assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, BusyNumbers(entries, "Alice"))
	assert.Equal(t, map[int]struct{}{1: {}}, BusyNumbers(entries, "Bob"))
	assert.Empty(t, BusyNumbers(entries, "Carol"))
}

func TestBusyNumbersExactPrefix(t *testing.T) {
	// " Alice-1.jpg" parses to the trimmed identifier "Alice", but the raw
	// name does not start with "Alice-", so it must not count.
	entries := []string{" Alice-1.jpg", "Alice-2.jpg"}

	assert.Equal(t, map[int]struct{}{2: {}}, BusyNumbers(entries, "Alice"))
}

func TestBusyNumbersLeadingZeroCollision(t *testing.T) {
	entries := []string{"Dan-007.jpg"}

	used := BusyNumbers(entries, "Dan")

	assert.Equal(t, map[int]struct{}{7: {}}, used)
}

func TestFileForNumber(t *testing.T) {
	entries := []string{"Alice-2.png", "Alice-007.jpg", "Alice-10.jpg"}

	name, ok := FileForNumber(entries, "Alice", 7)
	require.True(t, ok)
	assert.Equal(t, "Alice-007.jpg", name)

	// "Alice-1" must not match "Alice-10.jpg" by prefix alone.
	_, ok = FileForNumber(entries, "Alice", 1)
	assert.False(t, ok)
}

func TestParseOrder(t *testing.T) {
	for value, want := range map[string]Order{"": OrderSorted, "sorted": OrderSorted, "Scan": OrderScan} {
		got, err := ParseOrder(value)
		require.NoError(t, err)
		assert.Equal(t, want, got, "value %q", value)
	}

	_, err := ParseOrder("alphabetical")
	assert.Error(t, err)
}

func TestScannerIdentifiers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Bob-1.txt", "Alice-1.jpg", "notes.md"} {
		writeFile(t, dir, name)
	}

	sorted := NewScanner(dir, OrderSorted)
	got, err := sorted.Identifiers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, got)

	scanOrder := NewScanner(dir, OrderScan)
	got, err = scanOrder.Identifiers()
	require.NoError(t, err)
	// os.ReadDir sorts by filename, so discovery order here is also
	// alphabetical; the point is that OrderScan applies no extra sort.
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, got)
}

func TestScannerBusyNumbersCached(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Alice-1.jpg")

	s := NewScanner(dir, OrderSorted)

	used, err := s.BusyNumbers("Alice")
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{1: {}}, used)

	// A file created after the first scan is not seen for the rest of the
	// process lifetime.
	writeFile(t, dir, "Alice-2.jpg")

	used, err = s.BusyNumbers("Alice")
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{1: {}}, used)
}

func TestScannerMissingDirectory(t *testing.T) {
	s := NewScanner(filepath.Join(t.TempDir(), "missing"), OrderSorted)

	_, err := s.Identifiers()
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file %s: %v", name, err)
	}
}
