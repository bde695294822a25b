package heapsort

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

func isMaxHeap(h []float64, size int) bool {
	// h is 0-indexed here; node i has children 2i+1, 2i+2.
	for i := 0; i < size; i++ {
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < size && h[c] > h[i] {
				return false
			}
		}
	}
	return true
}

func TestParseArray(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
	}{
		{"5 10 15 25 30 40 50", []float64{5, 10, 15, 25, 30, 40, 50}},
		{"  3\t-1.5\n2 ", []float64{3, -1.5, 2}},
		{"1 abc 2 NaN Inf 3", []float64{1, 2, 3}},
		{"", []float64{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseArray(tt.in), "ParseArray(%q)", tt.in)
	}
	assert.Equal(t, "5 10 -1.5", FormatArray([]float64{5, 10, -1.5}))
}

func TestHeapify_Default(t *testing.T) {
	gen := NewHeapify(ParseArray("5 10 15 25 30 40 50"))
	res := gen.Result().(Result)

	assert.Equal(t, []float64{50, 30, 40, 25, 10, 5, 15}, res.Heap)
	assert.True(t, isMaxHeap(res.Heap, len(res.Heap)))
	assert.Empty(t, res.Sorted)
	assert.Equal(t, "heap: 50 30 40 25 10 5 15", res.Summary())
}

func TestHeapify_MaxHeapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 40; n++ {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = float64(rng.Intn(20))
		}
		res := NewHeapify(vals).Result().(Result)
		assert.True(t, isMaxHeap(res.Heap, n), "n=%d: %v", n, res.Heap)
		assert.ElementsMatch(t, vals, res.Heap)
	}
}

func TestHeapSort_Sorted(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
	}{
		{"empty", []float64{}},
		{"single", []float64{42}},
		{"default", []float64{5, 10, 15, 25, 30, 40, 50}},
		{"duplicates", []float64{3, 1, 3, 3, 2, 1}},
		{"descending", []float64{9, 8, 7, 6}},
		{"negative", []float64{-2, 0, -7.5, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewSort(tt.in).Result().(Result)

			want := slices.Clone(tt.in)
			sort.Sort(sort.Reverse(sort.Float64Slice(want)))
			assert.Equal(t, want, res.Sorted)
			assert.Len(t, res.Heap, len(tt.in))
			assert.True(t, sort.Float64sAreSorted(res.Heap))
		})
	}
}

func TestHeapSort_RandomPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		vals := make([]float64, rng.Intn(25))
		for i := range vals {
			vals[i] = float64(rng.Intn(10))
		}
		res := NewSort(vals).Result().(Result)
		assert.ElementsMatch(t, vals, res.Sorted)
		for i := 1; i < len(res.Sorted); i++ {
			assert.GreaterOrEqual(t, res.Sorted[i-1], res.Sorted[i])
		}
	}
}

func TestHeapSort_StepPayloads(t *testing.T) {
	gen := NewSort([]float64{5, 10, 15, 25, 30, 40, 50})
	steps := step.Drain(gen.Steps())
	require.NotEmpty(t, steps)
	listing := pseudocode.MustLookup(AlgorithmSort)

	sawSortPhase := false
	for i, s := range steps {
		assert.Equal(t, i, s.Seq)
		assert.Equal(t, AlgorithmSort, s.Algorithm)
		assert.Equal(t, listing.LineOf(s.Kind), s.Line)

		snap := s.Payload.(Snapshot)
		assert.Len(t, snap.Values, 7)
		assert.LessOrEqual(t, snap.HeapSize, 7)
		switch s.Kind {
		case KindSwap:
			assert.True(t, snap.Swapped)
			assert.Equal(t, snap.J/2, snap.K)
			assert.GreaterOrEqual(t, snap.Values[snap.K-1], snap.Values[snap.J-1])
		case KindCompare:
			assert.False(t, snap.Swapped)
			assert.Equal(t, 2*snap.K, snap.J)
		case KindExtract:
			sawSortPhase = true
			assert.Equal(t, PhaseSort, snap.Phase)
		}
	}
	assert.True(t, sawSortPhase)

	last := steps[len(steps)-1]
	assert.Equal(t, KindDone, last.Kind)
	final := last.Payload.(Snapshot)
	assert.Equal(t, []float64{50, 40, 30, 25, 15, 10, 5}, final.Sorted)
	assert.Equal(t, 0, final.HeapSize)
}

func TestHeapSort_BuildPhaseEndsInHeap(t *testing.T) {
	gen := NewSort([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	var lastBuild Snapshot
	for s := range gen.Steps() {
		snap := s.Payload.(Snapshot)
		if snap.Phase != PhaseBuild {
			break
		}
		lastBuild = snap
	}
	assert.True(t, isMaxHeap(lastBuild.Values, 8))
}

func TestHeapSort_LeftChildWinsTies(t *testing.T) {
	// Children are equal; the right child only wins when strictly larger.
	gen := NewHeapify([]float64{1, 5, 5})
	var swaps []Snapshot
	for s := range gen.Steps() {
		if s.Kind == KindSwap {
			swaps = append(swaps, s.Payload.(Snapshot))
		}
	}
	require.Len(t, swaps, 1)
	assert.Equal(t, 1, swaps[0].K)
	assert.Equal(t, 2, swaps[0].J)
	assert.Equal(t, []float64{5, 1, 5}, swaps[0].Values)
}

func TestHeapSort_SnapshotsAreCopies(t *testing.T) {
	steps := step.Drain(NewSort([]float64{3, 1, 2}).Steps())
	first := steps[0].Payload.(Snapshot)
	assert.Equal(t, []float64{3, 1, 2}, first.Values)
}

func TestHeapSort_TrivialInputs(t *testing.T) {
	for _, vals := range [][]float64{nil, {7}} {
		steps := step.Drain(NewSort(vals).Steps())
		require.Len(t, steps, 1)
		assert.Equal(t, KindDone, steps[0].Kind)
	}
}

func TestHeapSort_InputIsCaptured(t *testing.T) {
	vals := []float64{2, 1}
	gen := NewSort(vals)
	vals[0] = 100
	assert.Equal(t, []float64{2, 1}, gen.Result().(Result).Sorted)
}
