// Package prim animates Prim's minimum spanning tree algorithm.
//
// Edges are treated as undirected. Candidate edges live in a min-ordered pool
// ranked by weight, then by the lexicographically smaller endpoint, then the
// larger endpoint, then input position, so runs are fully deterministic.
// Edges whose endpoints have both been visited by the time they reach the
// front of the pool are discarded as stale. A disconnected graph yields the
// spanning tree of the source's component.
package prim

import (
	"container/heap"
	"fmt"
	"iter"
	"slices"
	"strconv"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Algorithm is the registry name of this generator.
const Algorithm = "prim"

// Step kinds emitted by the generator.
const (
	KindInit  step.Kind = "init"
	KindSeed  step.Kind = "seed"
	KindLoop  step.Kind = "loop"
	KindPick  step.Kind = "pick"
	KindStale step.Kind = "stale"
	KindVisit step.Kind = "visit"
	KindAdd   step.Kind = "add"
	KindPush  step.Kind = "push"
	KindDone  step.Kind = "done"
)

const paceStep = 400

// Snapshot is the payload of every Prim step.
type Snapshot struct {
	Visited     []string     `json:"visited"`
	MST         []graph.Edge `json:"mst"`
	Edges       []string     `json:"edges"`
	Pool        []graph.Edge `json:"pool"`
	Candidate   *graph.Edge  `json:"candidate,omitempty"`
	TotalWeight float64      `json:"total_weight"`
}

// VisitedNodes implements step.Highlighter.
func (s Snapshot) VisitedNodes() []string { return s.Visited }

// VisitedEdges implements step.Highlighter.
func (s Snapshot) VisitedEdges() []string { return s.Edges }

// Result is the spanning tree of the source's component.
type Result struct {
	Edges       []graph.Edge `json:"edges"`
	TotalWeight float64      `json:"total_weight"`
	Visited     []string     `json:"visited"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	return fmt.Sprintf("MST with %d edges, total weight %s", len(r.Edges), strconv.FormatFloat(r.TotalWeight, 'g', -1, 64))
}

// Generator runs Prim from a fixed source on a snapshot of the model.
type Generator struct {
	model   *graph.Model
	source  string
	listing pseudocode.Listing
}

// New validates the source and captures a copy of the model. Unweighted
// edges count with weight 0.
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

// candidate is a pool entry; index is the edge's input position.
type candidate struct {
	edge  graph.Edge
	index int
}

func (c candidate) less(o candidate) bool {
	if c.edge.Weight != o.edge.Weight {
		return c.edge.Weight < o.edge.Weight
	}
	cLo, cHi := endpoints(c.edge)
	oLo, oHi := endpoints(o.edge)
	if cLo != oLo {
		return cLo < oLo
	}
	if cHi != oHi {
		return cHi < oHi
	}
	return c.index < o.index
}

func endpoints(e graph.Edge) (lo, hi string) {
	if e.Source <= e.Target {
		return e.Source, e.Target
	}
	return e.Target, e.Source
}

// pool implements heap.Interface ordered by candidate.less.
type pool []candidate

func (p pool) Len() int           { return len(p) }
func (p pool) Less(i, j int) bool { return p[i].less(p[j]) }
func (p pool) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p *pool) Push(x any)        { *p = append(*p, x.(candidate)) }
func (p *pool) Pop() any {
	old := *p
	n := len(old)
	c := old[n-1]
	*p = old[:n-1]
	return c
}

// sorted returns the pool's edges in scan order.
func (p pool) sorted() []graph.Edge {
	cs := slices.Clone(p)
	slices.SortFunc(cs, func(a, b candidate) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	out := make([]graph.Edge, len(cs))
	for i, c := range cs {
		out[i] = c.edge
	}
	return out
}

type tree struct {
	visited map[string]bool
	order   []string
	mst     []graph.Edge
	keys    []string
	total   float64
	pool    *pool
}

func (t *tree) snapshot(cand *graph.Edge) Snapshot {
	s := Snapshot{
		Visited:     slices.Clone(t.order),
		MST:         slices.Clone(t.mst),
		Edges:       slices.Clone(t.keys),
		Pool:        t.pool.sorted(),
		TotalWeight: t.total,
	}
	if cand != nil {
		c := *cand
		s.Candidate = &c
	}
	return s
}

func (t *tree) visit(id string) {
	t.visited[id] = true
	t.order = append(t.order, id)
}

// pushFrom adds every edge touching id whose far end is unvisited.
func (g *Generator) pushFrom(t *tree, id string) int {
	n := 0
	for _, i := range g.model.Incident(id) {
		e := g.model.Edges[i]
		if t.visited[e.Other(id)] {
			continue
		}
		heap.Push(t.pool, candidate{edge: e, index: i})
		n++
	}
	return n
}

func (g *Generator) run(em *step.Emitter) Result {
	t := &tree{
		visited: make(map[string]bool),
		order:   []string{},
		mst:     []graph.Edge{},
		keys:    []string{},
		pool:    &pool{},
	}
	res := func() Result {
		return Result{Edges: t.mst, TotalWeight: t.total, Visited: t.order}
	}

	t.visit(g.source)
	if !em.Emit(KindInit, paceStep, fmt.Sprintf("Start at %s with an empty tree", g.source), t.snapshot(nil)) {
		return res()
	}
	n := g.pushFrom(t, g.source)
	if !em.Emit(KindSeed, paceStep, fmt.Sprintf("Add %d edge(s) from %s to the pool", n, g.source), t.snapshot(nil)) {
		return res()
	}

	for {
		if !em.Emit(KindLoop, paceStep, fmt.Sprintf("Pool holds %d edge(s)", t.pool.Len()), t.snapshot(nil)) {
			return res()
		}
		if t.pool.Len() == 0 {
			break
		}

		c := heap.Pop(t.pool).(candidate)
		e := c.edge
		if !em.Emit(KindPick, paceStep, fmt.Sprintf("Pick %s (weight %s)", e.Key(), weight(e)), t.snapshot(&e)) {
			return res()
		}

		srcIn, tgtIn := t.visited[e.Source], t.visited[e.Target]
		if srcIn && tgtIn {
			if !em.Emit(KindStale, paceStep, fmt.Sprintf("Both ends of %s already visited, discard", e.Key()), t.snapshot(&e)) {
				return res()
			}
			continue
		}

		far := e.Target
		if tgtIn {
			far = e.Source
		}
		t.visit(far)
		if !em.Emit(KindVisit, paceStep, fmt.Sprintf("Mark %s as visited", far), t.snapshot(&e)) {
			return res()
		}

		t.mst = append(t.mst, e)
		t.keys = append(t.keys, e.Key())
		t.total += e.Weight
		if !em.Emit(KindAdd, paceStep, fmt.Sprintf("Add %s to the tree", e.Key()), t.snapshot(&e)) {
			return res()
		}

		n := g.pushFrom(t, far)
		if !em.Emit(KindPush, paceStep, fmt.Sprintf("Add %d edge(s) from %s to the pool", n, far), t.snapshot(nil)) {
			return res()
		}
	}

	em.Emit(KindDone, paceStep, "Done: "+res().Summary(), t.snapshot(nil))
	return res()
}

func weight(e graph.Edge) string { return strconv.FormatFloat(e.Weight, 'g', -1, 64) }
