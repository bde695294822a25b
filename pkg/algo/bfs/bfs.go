// Package bfs animates breadth-first search over a directed edge list.
//
// The generator follows outgoing edges only. A neighbor is marked visited at
// the moment it is enqueued, so every reachable node is enqueued and dequeued
// exactly once, and the edge that discovered it is recorded once.
package bfs

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Algorithm is the registry name of this generator.
const Algorithm = "bfs"

// Step kinds emitted by the generator.
const (
	KindCreateQueue  step.Kind = "create-queue"
	KindMarkStart    step.Kind = "mark-start"
	KindEnqueueStart step.Kind = "enqueue-start"
	KindLoop         step.Kind = "loop"
	KindDequeue      step.Kind = "dequeue"
	KindNeighbors    step.Kind = "neighbors"
	KindCheck        step.Kind = "check"
	KindVisit        step.Kind = "visit"
	KindEnqueue      step.Kind = "enqueue"
	KindDone         step.Kind = "done"
)

// Snapshot is the payload of every BFS step.
type Snapshot struct {
	Queue    []string       `json:"queue"`
	Visited  []string       `json:"visited"`
	Edges    []string       `json:"edges"`
	Order    []string       `json:"order"`
	Depth    map[string]int `json:"depth"`
	Current  string         `json:"current,omitempty"`
	Neighbor string         `json:"neighbor,omitempty"`
	Skipped  bool           `json:"skipped,omitempty"`
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
	Depth  map[string]int    `json:"depth"`
	Parent map[string]string `json:"parent"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	return fmt.Sprintf("visited %d nodes: %v", len(r.Order), r.Order)
}

// Generator runs BFS from a fixed source on a snapshot of the model.
type Generator struct {
	model   *graph.Model
	source  string
	listing pseudocode.Listing
}

// New validates the source and captures a copy of the model.
// An unknown source yields an ErrCodeInvalidSource error and no generator.
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

// traversal is the mutable state of one run.
type traversal struct {
	queue   []string
	visited map[string]bool
	marked  []string
	edges   []string
	order   []string
	depth   map[string]int
	parent  map[string]string
}

func (t *traversal) snapshot(current, neighbor string, skipped bool) Snapshot {
	return Snapshot{
		Queue:    slices.Clone(t.queue),
		Visited:  slices.Clone(t.marked),
		Edges:    slices.Clone(t.edges),
		Order:    slices.Clone(t.order),
		Depth:    maps.Clone(t.depth),
		Current:  current,
		Neighbor: neighbor,
		Skipped:  skipped,
	}
}

func (t *traversal) mark(id string, depth int) {
	t.visited[id] = true
	t.marked = append(t.marked, id)
	t.depth[id] = depth
}

func (g *Generator) run(em *step.Emitter) Result {
	t := &traversal{
		queue:   []string{},
		visited: make(map[string]bool),
		marked:  []string{},
		edges:   []string{},
		order:   []string{},
		depth:   make(map[string]int),
		parent:  make(map[string]string),
	}
	res := func() Result {
		return Result{Order: t.order, Edges: t.edges, Depth: t.depth, Parent: t.parent}
	}
	src := g.source

	if !em.Emit(KindCreateQueue, step.PaceFast, "Create an empty queue", t.snapshot("", "", false)) {
		return res()
	}
	t.mark(src, 0)
	if !em.Emit(KindMarkStart, step.PaceFast, fmt.Sprintf("Mark %s as visited", src), t.snapshot(src, "", false)) {
		return res()
	}
	t.queue = append(t.queue, src)
	if !em.Emit(KindEnqueueStart, step.PaceFast, fmt.Sprintf("Enqueue %s", src), t.snapshot(src, "", false)) {
		return res()
	}

	for {
		if !em.Emit(KindLoop, step.PaceFast, fmt.Sprintf("Queue holds %d node(s)", len(t.queue)), t.snapshot("", "", false)) {
			return res()
		}
		if len(t.queue) == 0 {
			break
		}

		node := t.queue[0]
		t.queue = t.queue[1:]
		t.order = append(t.order, node)
		if !em.Emit(KindDequeue, step.PaceNormal, fmt.Sprintf("Dequeue %s", node), t.snapshot(node, "", false)) {
			return res()
		}
		if !em.Emit(KindNeighbors, step.PaceFast, fmt.Sprintf("Scan neighbors of %s", node), t.snapshot(node, "", false)) {
			return res()
		}

		for _, nbr := range g.model.OutNeighbors(node) {
			if t.visited[nbr] {
				note := fmt.Sprintf("%s already visited, skip", nbr)
				if !em.Emit(KindCheck, step.PaceFast, note, t.snapshot(node, nbr, true)) {
					return res()
				}
				continue
			}
			if !em.Emit(KindCheck, step.PaceFast, fmt.Sprintf("%s not visited yet", nbr), t.snapshot(node, nbr, false)) {
				return res()
			}

			t.mark(nbr, t.depth[node]+1)
			t.parent[nbr] = node
			t.edges = append(t.edges, graph.EdgeKey(node, nbr))
			if !em.Emit(KindVisit, step.PaceNormal, fmt.Sprintf("Visit %s via %s", nbr, graph.EdgeKey(node, nbr)), t.snapshot(node, nbr, false)) {
				return res()
			}

			t.queue = append(t.queue, nbr)
			if !em.Emit(KindEnqueue, step.PaceFast, fmt.Sprintf("Enqueue %s", nbr), t.snapshot(node, nbr, false)) {
				return res()
			}
		}
	}

	em.Emit(KindDone, step.PaceFast, "Queue empty, traversal complete", t.snapshot("", "", false))
	return res()
}
