package graph

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		weighted  bool
		wantNodes []string
		wantEdges []Edge
	}{
		{
			name:      "Empty",
			raw:       "",
			wantNodes: []string{},
			wantEdges: []Edge{},
		},
		{
			name:      "FirstSeenOrder",
			raw:       "A B\nA C\nC D\nC E\nB A",
			wantNodes: []string{"A", "B", "C", "D", "E"},
			wantEdges: []Edge{
				{Source: "A", Target: "B"},
				{Source: "A", Target: "C"},
				{Source: "C", Target: "D"},
				{Source: "C", Target: "E"},
				{Source: "B", Target: "A"},
			},
		},
		{
			name:      "DropsShortLines",
			raw:       "A\n\nB C\n   \n",
			wantNodes: []string{"B", "C"},
			wantEdges: []Edge{{Source: "B", Target: "C"}},
		},
		{
			name:      "IgnoresExtraTokens",
			raw:       "A B 7 extra",
			wantNodes: []string{"A", "B"},
			wantEdges: []Edge{{Source: "A", Target: "B"}},
		},
		{
			name:      "CollapsesWhitespace",
			raw:       "  A \t  B  \r\n",
			wantNodes: []string{"A", "B"},
			wantEdges: []Edge{{Source: "A", Target: "B"}},
		},
		{
			name:      "KeepsDuplicatesAndLoops",
			raw:       "A B\nA B\nB B",
			wantNodes: []string{"A", "B"},
			wantEdges: []Edge{
				{Source: "A", Target: "B"},
				{Source: "A", Target: "B"},
				{Source: "B", Target: "B"},
			},
		},
		{
			name:      "Weighted",
			raw:       "A B 4\nA C 2.5",
			weighted:  true,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []Edge{
				{Source: "A", Target: "B", Weight: 4, Weighted: true},
				{Source: "A", Target: "C", Weight: 2.5, Weighted: true},
			},
		},
		{
			name:      "WeightedDropsMissingOrBadWeight",
			raw:       "A B\nA C x\nA E NaN\nC D 3",
			weighted:  true,
			wantNodes: []string{"C", "D"},
			wantEdges: []Edge{{Source: "C", Target: "D", Weight: 3, Weighted: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(tt.raw, tt.weighted)
			if got := m.NodeIDs(); !reflect.DeepEqual(got, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", got, tt.wantNodes)
			}
			if !reflect.DeepEqual(m.Edges, tt.wantEdges) {
				t.Errorf("edges = %+v, want %+v", m.Edges, tt.wantEdges)
			}
			for _, e := range m.Edges {
				if !m.HasNode(e.Source) || !m.HasNode(e.Target) {
					t.Errorf("edge %s has a dangling endpoint", e.Key())
				}
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	raw := "A B 4\nA C 2\nB C 5\nB D 10\nC D 3\nbogus"
	first := Parse(raw, true)
	second := Parse(raw, true)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same text twice produced different models")
	}

	again := Parse(Format(first), true)
	if !reflect.DeepEqual(first, again) {
		t.Errorf("Parse(Format(m)) = %+v, want %+v", again, first)
	}
}

func TestLayoutCircle(t *testing.T) {
	m := Parse("A B\nC D", false)
	for i, n := range m.Nodes {
		dx, dy := n.X-400, n.Y-400
		if r := math.Hypot(dx, dy); math.Abs(r-300) > 1e-9 {
			t.Errorf("node %s radius = %v, want 300", n.ID, r)
		}
		want := 2 * math.Pi * float64(i) / 4
		got := math.Atan2(dy, dx)
		if got < 0 {
			got += 2 * math.Pi
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("node %s angle = %v, want %v", n.ID, got, want)
		}
	}
}

func TestNeighbors(t *testing.T) {
	m := Parse("A B\nA C\nC A\nA B", false)

	if got, want := m.OutNeighbors("A"), []string{"B", "C", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("OutNeighbors(A) = %v, want %v", got, want)
	}
	if got := m.OutNeighbors("B"); len(got) != 0 {
		t.Errorf("OutNeighbors(B) = %v, want none", got)
	}
	if got, want := m.Incident("C"), []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Incident(C) = %v, want %v", got, want)
	}
	if m.HasNode("Z") {
		t.Error("HasNode(Z) = true, want false")
	}
}

func TestEdgeHelpers(t *testing.T) {
	e := Edge{Source: "A", Target: "B"}
	if e.Key() != "A-B" {
		t.Errorf("Key() = %q, want A-B", e.Key())
	}
	if e.Other("A") != "B" || e.Other("B") != "A" {
		t.Error("Other() returned the wrong endpoint")
	}
	if !e.Touches("B") || e.Touches("C") {
		t.Error("Touches() mismatch")
	}
}

func TestModelRoundTrip(t *testing.T) {
	m := Parse("A B 4\nB C 1", true)

	data, err := MarshalModel(m)
	if err != nil {
		t.Fatalf("MarshalModel: %v", err)
	}
	got, err := UnmarshalModel(data)
	if err != nil {
		t.Fatalf("UnmarshalModel: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %+v, want %+v", got, m)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteModelFile(m, path); err != nil {
		t.Fatalf("WriteModelFile: %v", err)
	}
	fromFile, err := ReadModelFile(path)
	if err != nil {
		t.Fatalf("ReadModelFile: %v", err)
	}
	if !reflect.DeepEqual(fromFile, m) {
		t.Errorf("file round trip = %+v, want %+v", fromFile, m)
	}
}

func TestReadModelValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"BadJSON", `{`, "decode"},
		{"DanglingEdge", `{"nodes":[{"id":"A"}],"edges":[{"source":"A","target":"B"}]}`, "unknown node"},
		{"DuplicateNode", `{"nodes":[{"id":"A"},{"id":"A"}],"edges":[]}`, "duplicate"},
		{"EmptyID", `{"nodes":[{"id":""}],"edges":[]}`, "empty id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadModel(bytes.NewReader([]byte(tt.json)))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadModel() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadModelFileMissing(t *testing.T) {
	_, err := ReadModelFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadModelFile() error = %v, want not-exist", err)
	}
}
