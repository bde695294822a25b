package dfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

const defaultEdges = "A B\nA C\nC D\nC E\nB A"

func TestDFS_InvalidSource(t *testing.T) {
	_, err := New(graph.Parse(defaultEdges, false), "Q")
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodeInvalidSource, errs.GetCode(err))
}

func TestDFS_DefaultGraph(t *testing.T) {
	gen, err := New(graph.Parse(defaultEdges, false), "A")
	require.NoError(t, err)

	res := gen.Result().(Result)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, res.Order)
	assert.Equal(t, []string{"A-B", "A-C", "C-D", "C-E"}, res.Edges)
	assert.Equal(t, "A", res.Parent["C"])
}

func TestDFS_DeepBeforeWide(t *testing.T) {
	gen, err := New(graph.Parse("A B\nA C\nB D\nD E", false), "A")
	require.NoError(t, err)
	res := gen.Result().(Result)
	assert.Equal(t, []string{"A", "B", "D", "E", "C"}, res.Order)
}

func TestDFS_EachNodeOnce(t *testing.T) {
	// B is a neighbor of A and of C; it must be entered once.
	gen, err := New(graph.Parse("A C\nA B\nC B\nB A", false), "A")
	require.NoError(t, err)
	res := gen.Result().(Result)
	assert.Equal(t, []string{"A", "C", "B"}, res.Order)
	assert.Len(t, res.Edges, 2)

	calls := 0
	for s := range gen.Steps() {
		if s.Kind == KindCall {
			calls++
		}
	}
	assert.Equal(t, 3, calls)
}

func TestDFS_EdgeRecordedBeforeRecursing(t *testing.T) {
	gen, err := New(graph.Parse(defaultEdges, false), "A")
	require.NoError(t, err)
	steps := step.Drain(gen.Steps())

	for i, s := range steps {
		if s.Kind != KindCall || i == 0 {
			continue
		}
		prev := steps[i-1]
		require.Equal(t, KindTraverse, prev.Kind)
		snap := s.Payload.(Snapshot)
		assert.Contains(t, prev.Payload.(Snapshot).Edges, graph.EdgeKey(snap.Stack[len(snap.Stack)-2], snap.Current))
	}
}

func TestDFS_StackAndDepth(t *testing.T) {
	gen, err := New(graph.Parse("A B\nB C", false), "A")
	require.NoError(t, err)
	steps := step.Drain(gen.Steps())

	maxDepth := 0
	for _, s := range steps {
		snap := s.Payload.(Snapshot)
		assert.Equal(t, len(snap.Stack), snap.Depth)
		maxDepth = max(maxDepth, snap.Depth)
	}
	assert.Equal(t, 3, maxDepth)

	last := steps[len(steps)-1]
	assert.Equal(t, KindDone, last.Kind)
	assert.Empty(t, last.Payload.(Snapshot).Stack)

	var returns []string
	for i, s := range steps {
		if s.Kind == KindReturn {
			// The returning frame is the one on top in the previous step.
			returns = append(returns, steps[i-1].Payload.(Snapshot).Current)
		}
	}
	assert.Equal(t, []string{"C", "B", "A"}, returns)
}

func TestDFS_Reachability(t *testing.T) {
	m := graph.Parse("1 2\n2 3\n3 1\n4 1\n3 5", false)
	gen, err := New(m, "1")
	require.NoError(t, err)
	res := gen.Result().(Result)
	assert.ElementsMatch(t, []string{"1", "2", "3", "5"}, res.Order)
}

func TestDFS_LinesAndSequence(t *testing.T) {
	gen, err := New(graph.Parse(defaultEdges, false), "A")
	require.NoError(t, err)
	listing := pseudocode.MustLookup(Algorithm)

	for _, k := range []step.Kind{KindCall, KindMark, KindNeighbors, KindCheck, KindTraverse} {
		assert.NotEqual(t, step.NoLine, listing.LineOf(k), "kind %s", k)
	}

	seq := 0
	for s := range gen.Steps() {
		assert.Equal(t, seq, s.Seq)
		assert.Equal(t, listing.LineOf(s.Kind), s.Line)
		seq++
	}
	assert.Positive(t, seq)
}

func TestDFS_StopsEarly(t *testing.T) {
	gen, err := New(graph.Parse(defaultEdges, false), "A")
	require.NoError(t, err)
	n := 0
	for range gen.Steps() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}
