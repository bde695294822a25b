// Package heapsort animates max-heap construction and heap sort on a
// 1-indexed array.
//
// Two generators share the same sift-down routine: [NewHeapify] only builds
// the max-heap bottom-up, [NewSort] then repeatedly moves the root behind the
// shrinking heap. Every child comparison and every swap is a step.
package heapsort

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Registry names of the two generators.
const (
	AlgorithmHeapify = "heapify"
	AlgorithmSort    = "heapsort"
)

// Step kinds emitted by the generators.
const (
	KindBuild   step.Kind = "build"
	KindSift    step.Kind = "sift"
	KindCompare step.Kind = "compare"
	KindCheck   step.Kind = "check"
	KindSwap    step.Kind = "swap"
	KindExtract step.Kind = "extract"
	KindShrink  step.Kind = "shrink"
	KindResift  step.Kind = "resift"
	KindDone    step.Kind = "done"
)

// Phases reported in snapshots.
const (
	PhaseBuild = "build"
	PhaseSort  = "sort"
)

// Snapshot is the payload of every heap step. K and J are 1-based heap
// indices (0 when unused); Values holds H[1..n].
type Snapshot struct {
	Phase    string    `json:"phase"`
	Values   []float64 `json:"values"`
	HeapSize int       `json:"heap_size"`
	K        int       `json:"k,omitempty"`
	J        int       `json:"j,omitempty"`
	Swapped  bool      `json:"swapped,omitempty"`
	Sorted   []float64 `json:"sorted"`
}

// Result is the outcome of a complete run.
//
// Heap is the final array H[1..n]. Sorted holds the elements in the order they
// left the heap, largest first; it is empty for heapify-only runs.
type Result struct {
	Heap   []float64 `json:"heap"`
	Sorted []float64 `json:"sorted"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	if len(r.Sorted) > 0 {
		return "sorted: " + FormatArray(r.Sorted)
	}
	return "heap: " + FormatArray(r.Heap)
}

// Generator animates heapify or heap sort on a fixed array.
type Generator struct {
	algorithm string
	values    []float64
	listing   pseudocode.Listing
}

// NewHeapify returns a generator that only builds the max-heap.
func NewHeapify(values []float64) *Generator {
	return newGenerator(AlgorithmHeapify, values)
}

// NewSort returns a generator that builds the heap and sorts it.
func NewSort(values []float64) *Generator {
	return newGenerator(AlgorithmSort, values)
}

func newGenerator(algorithm string, values []float64) *Generator {
	return &Generator{
		algorithm: algorithm,
		values:    slices.Clone(values),
		listing:   pseudocode.MustLookup(algorithm),
	}
}

// Algorithm implements step.Generator.
func (g *Generator) Algorithm() string { return g.algorithm }

// Steps implements step.Generator.
func (g *Generator) Steps() iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		g.run(step.NewEmitter(g.algorithm, g.listing, yield))
	}
}

// Result implements step.Generator.
func (g *Generator) Result() step.Result {
	return g.run(step.Discard(g.algorithm))
}

// heap is the mutable state of one run; h[0] is unused.
type heap struct {
	em       *step.Emitter
	h        []float64
	heapSize int
	phase    string
	sorted   []float64
}

func (s *heap) snapshot(k, j int, swapped bool) Snapshot {
	return Snapshot{
		Phase:    s.phase,
		Values:   slices.Clone(s.h[1:]),
		HeapSize: s.heapSize,
		K:        k,
		J:        j,
		Swapped:  swapped,
		Sorted:   slices.Clone(s.sorted),
	}
}

func (s *heap) emit(kind step.Kind, pace int, note string, k, j int, swapped bool) bool {
	return s.em.Emit(kind, pace, note, s.snapshot(k, j, swapped))
}

// sift moves H[k] down until neither child is larger. It reports false once
// the consumer has stopped.
func (s *heap) sift(k, n int) bool {
	h := s.h
	if !s.emit(KindSift, step.PaceNormal, fmt.Sprintf("Heapify at index %d (size %d)", k, n), k, 0, false) {
		return false
	}
	for 2*k <= n {
		j := 2 * k
		if j < n {
			note := fmt.Sprintf("Comparing children H[%d] = %s and H[%d] = %s", j, num(h[j]), j+1, num(h[j+1]))
			if !s.emit(KindCompare, step.PaceSlow, note, k, j, false) {
				return false
			}
			if h[j] < h[j+1] {
				j++
			}
		}

		note := fmt.Sprintf("Comparing H[%d] = %s with H[%d] = %s", k, num(h[k]), j, num(h[j]))
		if h[k] >= h[j] {
			return s.emit(KindCheck, step.PaceSlow, note+", heap order holds", k, j, false)
		}
		if !s.emit(KindCheck, step.PaceSlow, note, k, j, false) {
			return false
		}

		h[k], h[j] = h[j], h[k]
		if !s.emit(KindSwap, step.PaceMax, fmt.Sprintf("Swap H[%d] and H[%d]", k, j), k, j, true) {
			return false
		}
		k = j
	}
	return true
}

func (g *Generator) run(em *step.Emitter) Result {
	n := len(g.values)
	s := &heap{
		em:       em,
		h:        append([]float64{0}, g.values...),
		heapSize: n,
		phase:    PhaseBuild,
		sorted:   []float64{},
	}
	res := func() Result {
		return Result{Heap: slices.Clone(s.h[1:]), Sorted: slices.Clone(s.sorted)}
	}

	for i := n / 2; i >= 1; i-- {
		if !s.emit(KindBuild, step.PaceNormal, fmt.Sprintf("Build heap: heapify subtree at %d", i), i, 0, false) {
			return res()
		}
		if !s.sift(i, n) {
			return res()
		}
	}

	if g.algorithm == AlgorithmSort {
		s.phase = PhaseSort
		for i := n; i >= 2; i-- {
			s.h[1], s.h[i] = s.h[i], s.h[1]
			if !s.emit(KindExtract, step.PaceMax, fmt.Sprintf("Swap root %s with H[%d]", num(s.h[i]), i), 1, i, true) {
				return res()
			}
			s.heapSize = i - 1
			s.sorted = append(s.sorted, s.h[i])
			if !s.emit(KindShrink, step.PaceNormal, fmt.Sprintf("Heap size is now %d", s.heapSize), 0, 0, false) {
				return res()
			}
			if !s.emit(KindResift, step.PaceNormal, "Restore heap order from the root", 1, 0, false) {
				return res()
			}
			if !s.sift(1, s.heapSize) {
				return res()
			}
		}
		if n >= 1 {
			s.heapSize = 0
			s.sorted = append(s.sorted, s.h[1])
		}
	}

	em.Emit(KindDone, step.PaceNormal, "Done: "+res().Summary(), s.snapshot(0, 0, false))
	return res()
}

// ParseArray parses whitespace-separated numbers. Tokens that are not finite
// numbers are dropped.
func ParseArray(text string) []float64 {
	out := []float64{}
	for _, tok := range strings.Fields(text) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FormatArray renders values space separated, the inverse of ParseArray.
func FormatArray(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
