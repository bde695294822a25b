package gallery

import (
	"github.com/matzehuels/stepwise/pkg/algo/bfs"
	"github.com/matzehuels/stepwise/pkg/algo/dfs"
	"github.com/matzehuels/stepwise/pkg/algo/heapsort"
	"github.com/matzehuels/stepwise/pkg/algo/horspool"
	"github.com/matzehuels/stepwise/pkg/algo/prim"
	"github.com/matzehuels/stepwise/pkg/algo/recursion"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Recursion is the umbrella name that selects a recursive function through
// Request.Function.
const Recursion = "recursion"

// Input kinds describe which Request fields an algorithm reads.
const (
	InputGraph         = "graph"
	InputWeightedGraph = "weighted-graph"
	InputArray         = "array"
	InputText          = "text"
	InputRecursion     = "recursion"
)

// Default inputs.
const (
	DefaultEdges         = "A B\nA C\nC D\nC E\nB A"
	DefaultWeightedEdges = "A B 4\nA C 2\nB C 5\nB D 10\nC D 3"
	DefaultSource        = "A"
	DefaultArray         = "5 10 15 25 30 40 50"
	DefaultText          = "HERE IS A SIMPLE EXAMPLE"
	DefaultPattern       = "EXAMPLE"
)

// Info describes one algorithm of the gallery.
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Input string `json:"input"`
}

// Request is the raw input of one run.
type Request struct {
	Algorithm string `json:"algorithm" toml:"algorithm"`

	// Graph algorithms
	Edges  string `json:"edges,omitempty" toml:"edges"`
	Source string `json:"source,omitempty" toml:"source"`

	// Heap algorithms
	Array string `json:"array,omitempty" toml:"array"`

	// String matching
	Text    string `json:"text,omitempty" toml:"text"`
	Pattern string `json:"pattern,omitempty" toml:"pattern"`

	// Recursion trees
	Function string `json:"function,omitempty" toml:"function"`
	recursion.Args
}

var catalogue = []Info{
	{Name: bfs.Algorithm, Input: InputGraph},
	{Name: dfs.Algorithm, Input: InputGraph},
	{Name: prim.Algorithm, Input: InputWeightedGraph},
	{Name: heapsort.AlgorithmHeapify, Input: InputArray},
	{Name: heapsort.AlgorithmSort, Input: InputArray},
	{Name: horspool.Algorithm, Input: InputText},
	{Name: recursion.Fibonacci, Input: InputRecursion},
	{Name: recursion.Factorial, Input: InputRecursion},
	{Name: recursion.GCD, Input: InputRecursion},
	{Name: recursion.Hanoi, Input: InputRecursion},
}

// Algorithms returns every algorithm in display order.
func Algorithms() []Info {
	out := make([]Info, len(catalogue))
	for i, info := range catalogue {
		info.Title = pseudocode.MustLookup(info.Name).Title
		out[i] = info
	}
	return out
}

// Lookup returns the algorithm named name. The umbrella name "recursion" is
// not an algorithm on its own.
func Lookup(name string) (Info, bool) {
	for _, info := range Algorithms() {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// Names returns the algorithm names in display order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, info := range catalogue {
		names[i] = info.Name
	}
	return names
}

// Resolve returns the concrete algorithm name of req, expanding "recursion".
func (r Request) Resolve() string {
	if r.Algorithm == Recursion {
		return r.Function
	}
	return r.Algorithm
}

// DefaultRequest returns the request a fresh gallery page starts with.
func DefaultRequest(name string) (Request, error) {
	if name == Recursion {
		name = recursion.Fibonacci
	}
	info, ok := Lookup(name)
	if !ok {
		return Request{}, errs.New(errs.ErrCodeInvalidAlgorithm, "unknown algorithm %q", name)
	}
	req := Request{Algorithm: name}
	switch info.Input {
	case InputGraph:
		req.Edges, req.Source = DefaultEdges, DefaultSource
	case InputWeightedGraph:
		req.Edges, req.Source = DefaultWeightedEdges, DefaultSource
	case InputArray:
		req.Array = DefaultArray
	case InputText:
		req.Text, req.Pattern = DefaultText, DefaultPattern
	case InputRecursion:
		req.Args = recursion.DefaultArgs()
	}
	return req, nil
}

// Model parses the request's edge list for graph algorithms. ok is false for
// algorithms that do not take a graph.
func Model(req Request) (m *graph.Model, ok bool) {
	info, found := Lookup(req.Resolve())
	if !found {
		return nil, false
	}
	switch info.Input {
	case InputGraph:
		return graph.Parse(req.Edges, false), true
	case InputWeightedGraph:
		return graph.Parse(req.Edges, true), true
	}
	return nil, false
}

// New builds the generator for req.
//
// Unknown algorithms yield ErrCodeInvalidAlgorithm. A source node that is
// malformed or absent from the parsed graph yields ErrCodeInvalidSource, and
// no generator is created.
func New(req Request) (step.Generator, error) {
	name := req.Resolve()
	if err := errs.ValidateAlgorithmName(name); err != nil {
		return nil, err
	}
	info, ok := Lookup(name)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidAlgorithm, "unknown algorithm %q", name)
	}

	switch info.Input {
	case InputGraph, InputWeightedGraph:
		if err := errs.ValidateNodeID(req.Source); err != nil {
			return nil, err
		}
		m, _ := Model(req)
		switch name {
		case bfs.Algorithm:
			return generator(bfs.New(m, req.Source))
		case dfs.Algorithm:
			return generator(dfs.New(m, req.Source))
		default:
			return generator(prim.New(m, req.Source))
		}
	case InputArray:
		values := heapsort.ParseArray(req.Array)
		if name == heapsort.AlgorithmHeapify {
			return heapsort.NewHeapify(values), nil
		}
		return heapsort.NewSort(values), nil
	case InputText:
		return horspool.New(req.Text, req.Pattern), nil
	default:
		return generator(recursion.New(name, req.Args))
	}
}

// generator drops typed nil generators so a failed constructor never yields a
// non-nil interface.
func generator[G step.Generator](g G, err error) (step.Generator, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
