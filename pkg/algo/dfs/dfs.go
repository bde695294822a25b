// Package dfs animates depth-first search over a directed edge list.
//
// The recursion of the textbook algorithm is unrolled onto an explicit frame
// stack, so a step can be emitted between any two operations and the
// generator can be suspended at every step without holding a goroutine.
package dfs

import (
	"fmt"
	"iter"
	"slices"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Algorithm is the registry name of this generator.
const Algorithm = "dfs"

// Step kinds emitted by the generator.
const (
	KindCall      step.Kind = "call"
	KindMark      step.Kind = "mark"
	KindNeighbors step.Kind = "neighbors"
	KindCheck     step.Kind = "check"
	KindTraverse  step.Kind = "traverse"
	KindReturn    step.Kind = "return"
	KindDone      step.Kind = "done"
)

const (
	paceCall = 600
	paceScan = 400
)

// Snapshot is the payload of every DFS step.
type Snapshot struct {
	Stack    []string `json:"stack"`
	Depth    int      `json:"depth"`
	Visited  []string `json:"visited"`
	Edges    []string `json:"edges"`
	Current  string   `json:"current,omitempty"`
	Neighbor string   `json:"neighbor,omitempty"`
	Skipped  bool     `json:"skipped,omitempty"`
}

// VisitedNodes implements step.Highlighter.
func (s Snapshot) VisitedNodes() []string { return s.Visited }

// VisitedEdges implements step.Highlighter.
func (s Snapshot) VisitedEdges() []string { return s.Edges }

// CurrentNode returns the node being expanded, if any.
func (s Snapshot) CurrentNode() string { return s.Current }

// Result is the outcome of a complete traversal.
type Result struct {
	Order  []string          `json:"order"`
	Edges  []string          `json:"edges"`
	Parent map[string]string `json:"parent"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	return fmt.Sprintf("visited %d nodes: %v", len(r.Order), r.Order)
}

// Generator runs DFS from a fixed source on a snapshot of the model.
type Generator struct {
	model   *graph.Model
	source  string
	listing pseudocode.Listing
}

// New validates the source and captures a copy of the model.
func New(model *graph.Model, source string) (*Generator, error) {
	if !model.HasNode(source) {
		return nil, errs.InvalidSource(source)
	}
	return &Generator{
		model:   model.Clone(),
		source:  source,
		listing: pseudocode.MustLookup(Algorithm),
	}, nil
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

// frame is one suspended DFS(node) activation.
type frame struct {
	node      string
	neighbors []string
	next      int
}

type traversal struct {
	stack   []*frame
	visited map[string]bool
	order   []string
	edges   []string
	parent  map[string]string
}

func (t *traversal) snapshot(neighbor string, skipped bool) Snapshot {
	s := Snapshot{
		Stack:    make([]string, len(t.stack)),
		Depth:    len(t.stack),
		Visited:  slices.Clone(t.order),
		Edges:    slices.Clone(t.edges),
		Neighbor: neighbor,
		Skipped:  skipped,
	}
	for i, f := range t.stack {
		s.Stack[i] = f.node
	}
	if len(t.stack) > 0 {
		s.Current = t.stack[len(t.stack)-1].node
	}
	return s
}

func (g *Generator) run(em *step.Emitter) Result {
	t := &traversal{
		visited: make(map[string]bool),
		order:   []string{},
		edges:   []string{},
		parent:  make(map[string]string),
	}
	res := func() Result {
		return Result{Order: t.order, Edges: t.edges, Parent: t.parent}
	}

	call := func(node string) bool {
		t.stack = append(t.stack, &frame{node: node, neighbors: g.model.OutNeighbors(node)})
		if !em.Emit(KindCall, paceCall, fmt.Sprintf("Call DFS(%s)", node), t.snapshot("", false)) {
			return false
		}
		t.visited[node] = true
		t.order = append(t.order, node)
		return em.Emit(KindMark, paceScan, fmt.Sprintf("Mark %s as visited", node), t.snapshot("", false))
	}

	if !call(g.source) {
		return res()
	}

	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]

		if top.next >= len(top.neighbors) {
			t.stack = t.stack[:len(t.stack)-1]
			note := fmt.Sprintf("Return from DFS(%s)", top.node)
			if !em.Emit(KindReturn, paceScan, note, t.snapshot("", false)) {
				return res()
			}
			continue
		}

		nbr := top.neighbors[top.next]
		top.next++
		if !em.Emit(KindNeighbors, paceScan, fmt.Sprintf("Next neighbor of %s: %s", top.node, nbr), t.snapshot(nbr, false)) {
			return res()
		}

		if t.visited[nbr] {
			if !em.Emit(KindCheck, paceScan, fmt.Sprintf("%s already visited, skip", nbr), t.snapshot(nbr, true)) {
				return res()
			}
			continue
		}
		if !em.Emit(KindCheck, paceScan, fmt.Sprintf("%s not visited yet", nbr), t.snapshot(nbr, false)) {
			return res()
		}

		key := graph.EdgeKey(top.node, nbr)
		t.edges = append(t.edges, key)
		t.parent[nbr] = top.node
		if !em.Emit(KindTraverse, paceCall, fmt.Sprintf("Traverse %s", key), t.snapshot(nbr, false)) {
			return res()
		}
		if !call(nbr) {
			return res()
		}
	}

	em.Emit(KindDone, paceScan, "Traversal complete", t.snapshot("", false))
	return res()
}
