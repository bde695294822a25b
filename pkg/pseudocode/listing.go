// Package pseudocode holds the pseudocode listings shown next to each
// animated algorithm and maps step kinds to the line they highlight.
package pseudocode

import (
	"maps"
	"slices"
	"sort"

	"github.com/matzehuels/stepwise/pkg/step"
)

// Listing is the displayed pseudocode of one algorithm.
type Listing struct {
	Algorithm string            `json:"algorithm"`
	Title     string            `json:"title"`
	Lines     []string          `json:"lines"`
	Kinds     map[step.Kind]int `json:"kinds"`
}

// LineOf returns the line highlighted by kind, or step.NoLine.
func (l Listing) LineOf(kind step.Kind) int {
	if line, ok := l.Kinds[kind]; ok && line >= 0 && line < len(l.Lines) {
		return line
	}
	return step.NoLine
}

// Line returns the text of line i, or "" when out of range.
func (l Listing) Line(i int) string {
	if i < 0 || i >= len(l.Lines) {
		return ""
	}
	return l.Lines[i]
}

// Lookup returns the listing registered for algorithm.
func Lookup(algorithm string) (Listing, bool) {
	l, ok := listings[algorithm]
	if !ok {
		return Listing{}, false
	}
	l.Lines = slices.Clone(l.Lines)
	l.Kinds = maps.Clone(l.Kinds)
	return l, true
}

// MustLookup is like Lookup but panics for unknown algorithms.
// Generators use it for their own built-in listing.
func MustLookup(algorithm string) Listing {
	l, ok := Lookup(algorithm)
	if !ok {
		panic("pseudocode: no listing for " + algorithm)
	}
	return l
}

// Algorithms returns the names of all listings, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(listings))
	for name := range listings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
