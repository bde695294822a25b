package gallery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stepwise/pkg/algo/bfs"
	"github.com/matzehuels/stepwise/pkg/algo/prim"
	"github.com/matzehuels/stepwise/pkg/algo/recursion"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/step"
)

func TestAlgorithms(t *testing.T) {
	infos := Algorithms()
	if len(infos) != len(Names()) {
		t.Fatalf("Algorithms() and Names() disagree")
	}
	for _, info := range infos {
		if info.Title == "" {
			t.Errorf("%s has no title", info.Name)
		}
	}
	if _, ok := Lookup("bfs"); !ok {
		t.Error("Lookup(bfs) failed")
	}
	if _, ok := Lookup(Recursion); ok {
		t.Error("recursion is not a concrete algorithm")
	}
}

func TestDefaultRequestsRun(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			req, err := DefaultRequest(name)
			if err != nil {
				t.Fatalf("DefaultRequest: %v", err)
			}
			gen, err := New(req)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if gen.Algorithm() != name {
				t.Errorf("Algorithm() = %q, want %q", gen.Algorithm(), name)
			}
			if n := len(step.Drain(gen.Steps())); n == 0 {
				t.Error("default input produced no steps")
			}
			if gen.Result().Summary() == "" {
				t.Error("empty summary")
			}
		})
	}
}

func TestDefaultRequestUnknown(t *testing.T) {
	if _, err := DefaultRequest("bogo"); !errs.Is(err, errs.ErrCodeInvalidAlgorithm) {
		t.Errorf("error = %v, want INVALID_ALGORITHM", err)
	}
	req, err := DefaultRequest(Recursion)
	if err != nil || req.Algorithm != recursion.Fibonacci {
		t.Errorf("DefaultRequest(recursion) = %+v, %v", req, err)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code errs.Code
	}{
		{"unknown", Request{Algorithm: "bogo"}, errs.ErrCodeInvalidAlgorithm},
		{"malformed name", Request{Algorithm: "BFS"}, errs.ErrCodeInvalidAlgorithm},
		{"missing source", Request{Algorithm: "bfs", Edges: DefaultEdges, Source: "Z"}, errs.ErrCodeInvalidSource},
		{"empty source", Request{Algorithm: "dfs", Edges: DefaultEdges}, errs.ErrCodeInvalidSource},
		{"spaced source", Request{Algorithm: "prim", Edges: DefaultWeightedEdges, Source: "A B"}, errs.ErrCodeInvalidSource},
		{"recursion bounds", Request{Algorithm: Recursion, Function: "fibonacci", Args: recursion.Args{N: 99}}, errs.ErrCodeInvalidInput},
		{"recursion unknown", Request{Algorithm: Recursion, Function: "ackermann"}, errs.ErrCodeInvalidAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(tt.req)
			if gen != nil {
				t.Error("generator returned alongside an error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewDispatch(t *testing.T) {
	gen, err := New(Request{Algorithm: "bfs", Edges: DefaultEdges, Source: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := gen.(*bfs.Generator); !ok {
		t.Errorf("bfs request built %T", gen)
	}

	gen, err = New(Request{Algorithm: "prim", Edges: DefaultWeightedEdges, Source: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if got := gen.Result().(prim.Result).TotalWeight; got != 9 {
		t.Errorf("prim total = %v, want 9", got)
	}

	gen, err = New(Request{Algorithm: Recursion, Function: "gcd", Args: recursion.Args{A: 48, B: 18}})
	if err != nil {
		t.Fatal(err)
	}
	if got := gen.Result().(recursion.Result).Value; got != 6 {
		t.Errorf("gcd = %d, want 6", got)
	}
}

func TestModel(t *testing.T) {
	m, ok := Model(Request{Algorithm: "prim", Edges: "A B 1\nB C"})
	if !ok || len(m.Edges) != 1 || !m.Edges[0].Weighted {
		t.Errorf("weighted Model() = %+v, %v", m, ok)
	}
	m, ok = Model(Request{Algorithm: "dfs", Edges: "A B 1\nB C"})
	if !ok || len(m.Edges) != 2 {
		t.Errorf("unweighted Model() = %+v, %v", m, ok)
	}
	if _, ok := Model(Request{Algorithm: "heapsort"}); ok {
		t.Error("heapsort has no graph")
	}
}

func TestReadScenarios(t *testing.T) {
	src := `
[[scenario]]
name = "tiny"
algorithm = "bfs"
source = "A"
edges = """
A B
"""
pace_scale = 0.5

[[scenario]]
name = "hanoi"
algorithm = "recursion"
function = "toh"
n = 2
from = "L"
to = "R"
aux = "M"
`
	scs, err := ReadScenarios(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadScenarios: %v", err)
	}
	if len(scs) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(scs))
	}
	if scs[0].PaceScale != 0.5 || scs[0].Source != "A" || scs[0].Edges != "A B\n" {
		t.Errorf("scenario 0 = %+v", scs[0])
	}
	h, err := FindScenario(scs, "hanoi")
	if err != nil {
		t.Fatal(err)
	}
	if h.N != 2 || h.From != "L" || h.Resolve() != "toh" {
		t.Errorf("hanoi = %+v", h)
	}
	gen, err := New(h.Request)
	if err != nil {
		t.Fatal(err)
	}
	if got := gen.Result().(recursion.Result).Moves[0]; got != "Move disk 1 from L to M" {
		t.Errorf("first move = %q", got)
	}

	if _, err := FindScenario(scs, "nope"); !errs.Is(err, errs.ErrCodeScenarioNotFound) {
		t.Errorf("FindScenario(nope) = %v", err)
	}
}

func TestReadScenariosInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `[[scenario]`},
		{"no name", "[[scenario]]\nalgorithm = \"bfs\""},
		{"duplicate", "[[scenario]]\nname = \"a\"\nalgorithm = \"bfs\"\n[[scenario]]\nname = \"a\"\nalgorithm = \"dfs\""},
		{"unknown algorithm", "[[scenario]]\nname = \"a\"\nalgorithm = \"quicksort\""},
		{"negative pace", "[[scenario]]\nname = \"a\"\nalgorithm = \"bfs\"\npace_scale = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadScenarios(strings.NewReader(tt.src)); !errs.Is(err, errs.ErrCodeInvalidScenario) {
				t.Errorf("error = %v, want INVALID_SCENARIO", err)
			}
		})
	}
}

func TestExampleScenarioFile(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "gallery.toml")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("example file not available: %v", err)
	}
	scs, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	for _, sc := range scs {
		if _, err := New(sc.Request); err != nil {
			t.Errorf("scenario %s: %v", sc.Name, err)
		}
	}

	if _, err := LoadScenarios(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadScenarios on missing file should fail")
	}
}

func TestNewLongNodeName(t *testing.T) {
	long := strings.Repeat("node", 40)
	gen, err := New(Request{Algorithm: "bfs", Edges: long + " B", Source: long})
	if err != nil {
		t.Fatalf("source accepted by the parser was rejected: %v", err)
	}
	if got := gen.Result().(bfs.Result).Order; len(got) != 2 || got[0] != long {
		t.Errorf("order = %v", got)
	}
}
