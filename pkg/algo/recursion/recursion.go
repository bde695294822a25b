// Package recursion animates the call tree of small recursive functions.
//
// Each supported function (Fibonacci, factorial, Euclid's GCD and the Towers
// of Hanoi) is written as a resumable state machine over an explicit frame
// stack. A frame holds its arguments, a program counter and the partial
// results of the calls it has made, so every call, base case, recursive call
// and combination is an individual step and the tree grows one node at a time.
package recursion

import (
	"fmt"
	"iter"
	"slices"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Supported functions. Each name is also the registry and listing name.
const (
	Fibonacci = "fibonacci"
	Factorial = "factorial"
	GCD       = "gcd"
	Hanoi     = "toh"
)

// Input bounds that keep the tree small enough to animate.
const (
	MaxFibonacci = 15
	MaxFactorial = 20
	MaxHanoi     = 8
)

// Step kinds emitted by the generator.
const (
	KindCall         step.Kind = "call"
	KindBaseCheck    step.Kind = "base-check"
	KindBase         step.Kind = "base"
	KindRecurseLeft  step.Kind = "recurse-left"
	KindRecurseRight step.Kind = "recurse-right"
	KindCombine      step.Kind = "combine"
	KindMove         step.Kind = "move"
	KindReturn       step.Kind = "return"
	KindDone         step.Kind = "done"
)

// Horizontal offsets of child nodes, divided by the parent's depth + 1.
const (
	spreadBinary = 120
	spreadHanoi  = 150
	levelHeight  = 100
)

// Functions returns the supported function names.
func Functions() []string {
	return []string{Fibonacci, Factorial, GCD, Hanoi}
}

// Args are the arguments of the root call. Fibonacci, factorial and Hanoi
// use N; GCD uses A and B; Hanoi also uses the peg names.
type Args struct {
	N    int    `json:"n,omitempty" toml:"n"`
	A    int    `json:"a,omitempty" toml:"a"`
	B    int    `json:"b,omitempty" toml:"b"`
	From string `json:"from,omitempty" toml:"from"`
	To   string `json:"to,omitempty" toml:"to"`
	Aux  string `json:"aux,omitempty" toml:"aux"`
}

// DefaultArgs returns the inputs the gallery starts with.
func DefaultArgs() Args {
	return Args{N: 4, A: 48, B: 18, From: "A", To: "C", Aux: "B"}
}

// Node is one call in the recursion tree.
type Node struct {
	ID       int     `json:"id"`
	Parent   int     `json:"parent"`
	Depth    int     `json:"depth"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Value    int64   `json:"value"`
	Returned bool    `json:"returned"`
}

// Snapshot is the payload of every recursion step.
type Snapshot struct {
	Tree    []Node   `json:"tree"`
	Stack   []int    `json:"stack"`
	Current int      `json:"current"`
	Moves   []string `json:"moves"`
}

// Result is the outcome of the root call. For Hanoi, Value is the number of
// disk moves.
type Result struct {
	Function string   `json:"function"`
	Label    string   `json:"label"`
	Value    int64    `json:"value"`
	Moves    []string `json:"moves"`
	Calls    int      `json:"calls"`
}

// Summary implements step.Result.
func (r Result) Summary() string {
	if r.Function == Hanoi {
		return fmt.Sprintf("%s: %d moves in %d calls", r.Label, r.Value, r.Calls)
	}
	return fmt.Sprintf("%s = %d in %d calls", r.Label, r.Value, r.Calls)
}

// Generator unrolls one recursive function call.
type Generator struct {
	fn      string
	args    Args
	listing pseudocode.Listing
}

// New validates fn and args. Unknown functions yield ErrCodeInvalidAlgorithm;
// out-of-range arguments yield ErrCodeInvalidInput.
func New(fn string, args Args) (*Generator, error) {
	if err := validate(fn, args); err != nil {
		return nil, err
	}
	return &Generator{fn: fn, args: args, listing: pseudocode.MustLookup(fn)}, nil
}

func validate(fn string, a Args) error {
	switch fn {
	case Fibonacci:
		if a.N < 0 || a.N > MaxFibonacci {
			return errs.New(errs.ErrCodeInvalidInput, "fibonacci needs 0 <= n <= %d, got %d", MaxFibonacci, a.N)
		}
	case Factorial:
		if a.N < 0 || a.N > MaxFactorial {
			return errs.New(errs.ErrCodeInvalidInput, "factorial needs 0 <= n <= %d, got %d", MaxFactorial, a.N)
		}
	case GCD:
		if a.A < 0 || a.B < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "gcd needs non-negative arguments, got %d and %d", a.A, a.B)
		}
	case Hanoi:
		if a.N < 1 || a.N > MaxHanoi {
			return errs.New(errs.ErrCodeInvalidInput, "towers of hanoi needs 1 <= n <= %d, got %d", MaxHanoi, a.N)
		}
		if a.From == "" || a.To == "" || a.Aux == "" {
			return errs.New(errs.ErrCodeInvalidInput, "towers of hanoi needs three peg names")
		}
	default:
		return errs.New(errs.ErrCodeInvalidAlgorithm, "unknown recursive function %q", fn)
	}
	return nil
}

// Algorithm implements step.Generator.
func (g *Generator) Algorithm() string { return g.fn }

// Steps implements step.Generator.
func (g *Generator) Steps() iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		g.run(step.NewEmitter(g.fn, g.listing, yield))
	}
}

// Result implements step.Generator.
func (g *Generator) Result() step.Result {
	return g.run(step.Discard(g.fn))
}

func (g *Generator) run(em *step.Emitter) Result {
	m := &machine{fn: g.fn, em: em, moves: []string{}}
	m.call(nil, g.args, 0)
	for len(m.stack) > 0 && !em.Stopped() {
		m.advance(m.stack[len(m.stack)-1])
	}
	if em.Stopped() {
		return m.result()
	}
	em.Emit(KindDone, step.PaceNormal, "Done: "+m.result().Summary(), m.snapshot(-1))
	return m.result()
}

// frame is one suspended call. pc selects the next transition; ret holds the
// value of the most recent child call and left the first child's value.
type frame struct {
	node int
	args Args
	pc   int
	left int64
	ret  int64
}

type machine struct {
	fn    string
	em    *step.Emitter
	tree  []Node
	stack []*frame
	moves []string
}

func (m *machine) result() Result {
	r := Result{Function: m.fn, Moves: m.moves, Calls: len(m.tree)}
	if len(m.tree) > 0 {
		r.Label = m.tree[0].Label
		r.Value = m.tree[0].Value
	}
	return r
}

func (m *machine) snapshot(current int) Snapshot {
	s := Snapshot{
		Tree:    slices.Clone(m.tree),
		Stack:   make([]int, len(m.stack)),
		Current: current,
		Moves:   slices.Clone(m.moves),
	}
	for i, f := range m.stack {
		s.Stack[i] = f.node
	}
	return s
}

func (m *machine) emit(kind step.Kind, f *frame, note string) bool {
	return m.em.Emit(kind, step.PaceNormal, note, m.snapshot(f.node))
}

func (m *machine) label(a Args) string {
	switch m.fn {
	case Fibonacci:
		return fmt.Sprintf("fib(%d)", a.N)
	case Factorial:
		return fmt.Sprintf("fact(%d)", a.N)
	case GCD:
		return fmt.Sprintf("gcd(%d, %d)", a.A, a.B)
	default:
		return fmt.Sprintf("T(%d,%s,%s,%s)", a.N, a.From, a.To, a.Aux)
	}
}

// call pushes a new frame below parent (nil for the root) and emits its node.
func (m *machine) call(parent *frame, a Args, spread float64) bool {
	n := Node{ID: len(m.tree), Parent: -1, Label: m.label(a)}
	if parent != nil {
		p := m.tree[parent.node]
		n.Parent = p.ID
		n.Depth = p.Depth + 1
		n.X = p.X + spread/float64(p.Depth+1)
	}
	n.Y = float64(n.Depth * levelHeight)
	m.tree = append(m.tree, n)

	f := &frame{node: n.ID, args: a}
	m.stack = append(m.stack, f)
	return m.emit(KindCall, f, "Call "+n.Label)
}

// ret pops f, records its value and hands it to the caller.
func (m *machine) ret(f *frame, v int64, kind step.Kind, move string) bool {
	m.tree[f.node].Value = v
	m.tree[f.node].Returned = true
	if move != "" {
		m.moves = append(m.moves, move)
	}
	m.stack = m.stack[:len(m.stack)-1]
	if len(m.stack) > 0 {
		m.stack[len(m.stack)-1].ret = v
	}
	note := fmt.Sprintf("%s returns %d", m.tree[f.node].Label, v)
	if move != "" {
		note = move
	}
	return m.emit(kind, f, note)
}

func (m *machine) advance(f *frame) bool {
	switch m.fn {
	case Fibonacci:
		return m.fibonacci(f)
	case Factorial:
		return m.factorial(f)
	case GCD:
		return m.gcd(f)
	default:
		return m.hanoi(f)
	}
}

func (m *machine) fibonacci(f *frame) bool {
	n := f.args.N
	switch f.pc {
	case 0:
		f.pc = 1
		return m.emit(KindBaseCheck, f, fmt.Sprintf("Is %d <= 1?", n))
	case 1:
		if n <= 1 {
			return m.ret(f, int64(n), KindBase, fmt.Sprintf("fib(%d) = %d", n, n))
		}
		f.pc = 2
		if !m.emit(KindRecurseLeft, f, fmt.Sprintf("left = fib(%d)", n-1)) {
			return false
		}
		return m.call(f, Args{N: n - 1}, -spreadBinary)
	case 2:
		f.left = f.ret
		f.pc = 3
		if !m.emit(KindRecurseRight, f, fmt.Sprintf("right = fib(%d)", n-2)) {
			return false
		}
		return m.call(f, Args{N: n - 2}, spreadBinary)
	default:
		v := f.left + f.ret
		move := fmt.Sprintf("fib(%d) = fib(%d) + fib(%d) = %d + %d = %d", n, n-1, n-2, f.left, f.ret, v)
		return m.ret(f, v, KindCombine, move)
	}
}

func (m *machine) factorial(f *frame) bool {
	n := f.args.N
	switch f.pc {
	case 0:
		f.pc = 1
		return m.emit(KindBaseCheck, f, fmt.Sprintf("Is %d <= 1?", n))
	case 1:
		if n <= 1 {
			return m.ret(f, 1, KindBase, fmt.Sprintf("fact(%d) = 1", n))
		}
		f.pc = 2
		if !m.emit(KindRecurseLeft, f, fmt.Sprintf("Compute fact(%d)", n-1)) {
			return false
		}
		return m.call(f, Args{N: n - 1}, 0)
	default:
		v := int64(n) * f.ret
		move := fmt.Sprintf("fact(%d) = %d * fact(%d) = %d * %d = %d", n, n, n-1, n, f.ret, v)
		return m.ret(f, v, KindCombine, move)
	}
}

func (m *machine) gcd(f *frame) bool {
	a, b := f.args.A, f.args.B
	switch f.pc {
	case 0:
		f.pc = 1
		return m.emit(KindBaseCheck, f, fmt.Sprintf("Is %d == 0?", b))
	case 1:
		if b == 0 {
			return m.ret(f, int64(a), KindBase, fmt.Sprintf("gcd(%d, %d) = %d", a, b, a))
		}
		f.pc = 2
		if !m.emit(KindRecurseLeft, f, fmt.Sprintf("Compute gcd(%d, %d)", b, a%b)) {
			return false
		}
		return m.call(f, Args{A: b, B: a % b}, 0)
	default:
		move := fmt.Sprintf("gcd(%d, %d) = gcd(%d, %d) = %d", a, b, b, a%b, f.ret)
		return m.ret(f, f.ret, KindCombine, move)
	}
}

func (m *machine) hanoi(f *frame) bool {
	a := f.args
	move := fmt.Sprintf("Move disk %d from %s to %s", a.N, a.From, a.To)
	switch f.pc {
	case 0:
		f.pc = 1
		return m.emit(KindBaseCheck, f, fmt.Sprintf("Is %d == 1?", a.N))
	case 1:
		if a.N == 1 {
			m.moves = append(m.moves, move)
			f.pc = 5
			return m.emit(KindBase, f, move)
		}
		f.pc = 2
		if !m.emit(KindRecurseLeft, f, fmt.Sprintf("Move %d disk(s) from %s to %s", a.N-1, a.From, a.Aux)) {
			return false
		}
		return m.call(f, Args{N: a.N - 1, From: a.From, To: a.Aux, Aux: a.To}, -spreadHanoi)
	case 2:
		f.left = f.ret
		m.moves = append(m.moves, move)
		f.pc = 3
		return m.emit(KindMove, f, move)
	case 3:
		f.pc = 4
		if !m.emit(KindRecurseRight, f, fmt.Sprintf("Move %d disk(s) from %s to %s", a.N-1, a.Aux, a.To)) {
			return false
		}
		return m.call(f, Args{N: a.N - 1, From: a.Aux, To: a.To, Aux: a.From}, spreadHanoi)
	case 4:
		return m.ret(f, f.left+1+f.ret, KindReturn, "")
	default:
		return m.ret(f, 1, KindReturn, "")
	}
}
