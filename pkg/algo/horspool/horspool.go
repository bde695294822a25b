// Package horspool animates Horspool's string matching algorithm.
//
// The search compares the pattern right to left against the current window of
// the text. On a mismatch the window slides by the shift-table entry of the
// text character under the window's last position; after a full match it
// slides by one, so overlapping occurrences are all reported.
//
// Text and pattern are handled as rune sequences. An empty text or pattern, or
// a pattern longer than the text, produces no steps and an empty result.
package horspool

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Algorithm is the registry name of this generator.
const Algorithm = "horspool"

// Step kinds emitted by the generator.
const (
	KindBuildTable step.Kind = "build-table"
	KindInit       step.Kind = "init"
	KindWindow     step.Kind = "window"
	KindAlign      step.Kind = "align"
	KindCompare    step.Kind = "compare"
	KindAdvance    step.Kind = "advance"
	KindMatch      step.Kind = "match"
	KindShiftOne   step.Kind = "shift-one"
	KindMismatch   step.Kind = "mismatch"
	KindShift      step.Kind = "shift"
	KindDone       step.Kind = "done"
)

const (
	paceCompare = 700
	paceAdvance = step.PaceNormal
	paceMatch   = step.PaceSlow
)

// ShiftTable maps every rune of pattern except the last to its distance from
// the pattern's end, keeping the rightmost occurrence. Runes absent from the
// table shift by the full pattern length.
func ShiftTable(pattern string) map[rune]int {
	p := []rune(pattern)
	m := len(p)
	table := make(map[rune]int, m)
	for i := 0; i < m-1; i++ {
		table[p[i]] = m - 1 - i
	}
	return table
}

// Snapshot is the payload of every Horspool step. J and TextIndex are -1 when
// no character pair is under comparison.
type Snapshot struct {
	Table     map[string]int `json:"table"`
	Shift     int            `json:"shift"`
	J         int            `json:"j"`
	TextIndex int            `json:"text_index"`
	Mismatch  bool           `json:"mismatch,omitempty"`
	ShiftBy   int            `json:"shift_by,omitempty"`
	Matches   []int          `json:"matches"`
}

// Result is the outcome of a complete search.
type Result struct {
	Matches []int          `json:"matches"`
	Table   map[string]int `json:"table"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	if len(r.Matches) == 0 {
		return "pattern not found"
	}
	return fmt.Sprintf("pattern found at %v", r.Matches)
}

// Generator animates a search of pattern in text.
type Generator struct {
	text    []rune
	pattern []rune
	listing pseudocode.Listing
}

// New returns a generator for the given text and pattern. Degenerate inputs
// are accepted and yield an empty run.
func New(text, pattern string) *Generator {
	return &Generator{
		text:    []rune(text),
		pattern: []rune(pattern),
		listing: pseudocode.MustLookup(Algorithm),
	}
}

// Algorithm implements step.Generator.
func (g *Generator) Algorithm() string { return Algorithm }

// Steps implements step.Generator.
func (g *Generator) Steps() iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		g.run(step.NewEmitter(Algorithm, g.listing, yield))
	}
}

// Result implements step.Generator.
func (g *Generator) Result() step.Result {
	return g.run(step.Discard(Algorithm))
}

// Searchable reports whether the input admits at least one window.
func (g *Generator) Searchable() bool {
	m, n := len(g.pattern), len(g.text)
	return m >= 1 && n >= 1 && m <= n
}

type search struct {
	table   map[string]int
	shift   int
	matches []int
}

func (s *search) snapshot(j, textIndex int, mismatch bool, shiftBy int) Snapshot {
	return Snapshot{
		Table:     maps.Clone(s.table),
		Shift:     s.shift,
		J:         j,
		TextIndex: textIndex,
		Mismatch:  mismatch,
		ShiftBy:   shiftBy,
		Matches:   slices.Clone(s.matches),
	}
}

func (g *Generator) run(em *step.Emitter) Result {
	s := &search{table: map[string]int{}, matches: []int{}}
	res := func() Result {
		return Result{Matches: s.matches, Table: s.table}
	}
	if !g.Searchable() {
		return res()
	}

	text, pat := g.text, g.pattern
	m, n := len(pat), len(text)

	for i := 0; i < m-1; i++ {
		s.table[string(pat[i])] = m - 1 - i
		note := fmt.Sprintf("table[%q] = %d", pat[i], m-1-i)
		if !em.Emit(KindBuildTable, step.PaceFast, note, s.snapshot(-1, -1, false, 0)) {
			return res()
		}
	}

	if !em.Emit(KindInit, step.PaceFast, "shift = 0", s.snapshot(-1, -1, false, 0)) {
		return res()
	}

	for s.shift <= n-m {
		if !em.Emit(KindWindow, step.PaceFast, fmt.Sprintf("Window at shift %d", s.shift), s.snapshot(-1, -1, false, 0)) {
			return res()
		}
		j := m - 1
		if !em.Emit(KindAlign, step.PaceFast, fmt.Sprintf("j = %d", j), s.snapshot(j, s.shift+j, false, 0)) {
			return res()
		}

		mismatched := false
		for j >= 0 {
			ti := s.shift + j
			note := fmt.Sprintf("Comparing pattern[%d] (%c) with text[%d] (%c)", j, pat[j], ti, text[ti])
			if !em.Emit(KindCompare, paceCompare, note, s.snapshot(j, ti, false, 0)) {
				return res()
			}

			if pat[j] != text[ti] {
				note := fmt.Sprintf("Mismatch at pattern[%d] (%c) and text[%d] (%c)", j, pat[j], ti, text[ti])
				if !em.Emit(KindMismatch, paceCompare, note, s.snapshot(j, ti, true, 0)) {
					return res()
				}
				by, ok := s.table[string(text[s.shift+m-1])]
				if !ok {
					by = m
				}
				if !em.Emit(KindShift, paceCompare, fmt.Sprintf("Shift pattern by %d positions", by), s.snapshot(j, ti, true, by)) {
					return res()
				}
				s.shift += by
				mismatched = true
				break
			}

			j--
			next := -1
			if j >= 0 {
				next = s.shift + j
			}
			if !em.Emit(KindAdvance, paceAdvance, fmt.Sprintf("j = %d", j), s.snapshot(j, next, false, 0)) {
				return res()
			}
		}
		if mismatched {
			continue
		}

		s.matches = append(s.matches, s.shift)
		if !em.Emit(KindMatch, paceMatch, fmt.Sprintf("Pattern found at index %d", s.shift), s.snapshot(-1, -1, false, 0)) {
			return res()
		}
		if !em.Emit(KindShiftOne, step.PaceFast, "Shift pattern by 1 position", s.snapshot(-1, -1, false, 1)) {
			return res()
		}
		s.shift++
	}

	em.Emit(KindDone, step.PaceFast, "Search complete", s.snapshot(-1, -1, false, 0))
	return res()
}
