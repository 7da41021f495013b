// Package scan extracts identifiers and in-use sequence numbers from
// directory listings following the <identifier>-<number>.<extension>
// naming convention.
package scan

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownIdentifier is returned when an operation targets an identifier
// that has no numbered files in the destination directory.
var ErrUnknownIdentifier = errors.New("identifier has no files in the destination directory")

// namePattern matches "<identifier>-<number>.<extension>". The identifier
// capture is non-greedy, so the name splits at the first admissible boundary
// from the left: "A-1-2.jpg" parses as identifier "A-1" with number 2, not
// as identifier "A" with number 1.
var namePattern = regexp.MustCompile(`^(.+?)-(\d+)\.(.+)$`)

// Record is the parsed view of one conforming filename. Filenames that do
// not match the convention produce no record and are ignored everywhere.
type Record struct {
	Identifier string
	Number     int
	Extension  string
}

// ParseRecord matches name against the naming convention. The identifier is
// trimmed of surrounding whitespace; the extension excludes the final dot.
// Leading zeros in the number collapse to the integer value, so "Dan-007.jpg"
// and "Dan-7.jpg" occupy the same sequence slot.
func ParseRecord(name string) (Record, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Record{}, false
	}
	number, err := strconv.Atoi(m[2])
	if err != nil {
		// Digit run too long for an int. Treat as non-conforming.
		return Record{}, false
	}
	identifier := strings.TrimSpace(m[1])
	if identifier == "" {
		return Record{}, false
	}
	return Record{Identifier: identifier, Number: number, Extension: m[3]}, true
}

// ListIdentifiers returns the distinct identifiers found in entries, in
// discovery order. Comparison is exact and case-sensitive after trimming.
// Non-conforming entries are skipped silently.
func ListIdentifiers(entries []string) []string {
	seen := make(map[string]struct{})
	identifiers := make([]string, 0)
	for _, name := range entries {
		rec, ok := ParseRecord(name)
		if !ok {
			continue
		}
		if _, dup := seen[rec.Identifier]; dup {
			continue
		}
		seen[rec.Identifier] = struct{}{}
		identifiers = append(identifiers, rec.Identifier)
	}
	return identifiers
}

// BusyNumbers returns the sequence numbers already taken under identifier.
// An entry counts only when it both parses against the naming convention and
// starts with the literal prefix "<identifier>-". The prefix test is exact
// and unstripped: a file whose identifier matches only after whitespace
// trimming does not count.
func BusyNumbers(entries []string, identifier string) map[int]struct{} {
	used := make(map[int]struct{})
	prefix := identifier + "-"
	for _, name := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rec, ok := ParseRecord(name)
		if !ok {
			continue
		}
		used[rec.Number] = struct{}{}
	}
	return used
}

// FileForNumber returns the first entry filed under identifier with the
// given sequence number. Entries with leading zeros match their integer
// value ("Dan-007.jpg" is found for number 7).
func FileForNumber(entries []string, identifier string, number int) (string, bool) {
	prefix := identifier + "-"
	for _, name := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rec, ok := ParseRecord(name)
		if !ok || rec.Number != number {
			continue
		}
		return name, true
	}
	return "", false
}

// Order controls how Scanner reports identifiers.
type Order int

const (
	// OrderSorted lists identifiers lexicographically. Default.
	OrderSorted Order = iota
	// OrderScan lists identifiers in directory discovery order.
	OrderScan
)

// ParseOrder converts a configuration string ("sorted" or "scan") to an
// Order. Empty input yields OrderSorted.
func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sorted":
		return OrderSorted, nil
	case "scan":
		return OrderScan, nil
	default:
		return OrderSorted, fmt.Errorf("unknown identifier order %q (expected \"sorted\" or \"scan\")", value)
	}
}

// Scanner reads one destination directory and caches busy-number sets per
// identifier for the life of the process. The cache is never invalidated:
// files created by another process after the first scan for an identifier
// are not seen. Acceptable for a short-lived, single-user run.
type Scanner struct {
	dir   string
	order Order
	busy  map[string]map[int]struct{}
	names []string
}

// NewScanner creates a Scanner for the given directory.
func NewScanner(dir string, order Order) *Scanner {
	return &Scanner{
		dir:   dir,
		order: order,
		busy:  make(map[string]map[int]struct{}),
	}
}

// Dir returns the directory this scanner is bound to.
func (s *Scanner) Dir() string {
	return s.dir
}

// Entries lists the directory's entry names. The listing is cached after the
// first successful read.
func (s *Scanner) Entries() ([]string, error) {
	if s.names != nil {
		return s.names, nil
	}
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read destination directory: %w", err)
	}
	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		names = append(names, entry.Name())
	}
	s.names = names
	return names, nil
}

// Identifiers returns the identifiers present in the directory, ordered per
// the scanner's Order policy.
func (s *Scanner) Identifiers() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	identifiers := ListIdentifiers(entries)
	if s.order == OrderSorted {
		sort.Strings(identifiers)
	}
	return identifiers, nil
}

// BusyNumbers returns the cached busy-number set for identifier, computing
// it on first request.
func (s *Scanner) BusyNumbers(identifier string) (map[int]struct{}, error) {
	if cached, ok := s.busy[identifier]; ok {
		return cached, nil
	}
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	used := BusyNumbers(entries, identifier)
	s.busy[identifier] = used
	return used, nil
}
