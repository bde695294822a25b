package render

import (
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Highlight names the graph elements a frame emphasizes.
type Highlight struct {
	Nodes   map[string]bool
	Edges   map[string]bool
	Current string
}

// HasEdge reports whether the edge between a and b is highlighted in either
// direction.
func (h Highlight) HasEdge(a, b string) bool {
	return h.Edges[graph.EdgeKey(a, b)] || h.Edges[graph.EdgeKey(b, a)]
}

// Empty reports whether nothing is highlighted.
func (h Highlight) Empty() bool {
	return len(h.Nodes) == 0 && len(h.Edges) == 0 && h.Current == ""
}

// HighlightFrom extracts a highlight from a step payload. Unknown payloads
// yield an empty highlight.
func HighlightFrom(payload any) Highlight {
	h := Highlight{Nodes: map[string]bool{}, Edges: map[string]bool{}}
	switch p := payload.(type) {
	case step.Highlighter:
		for _, id := range p.VisitedNodes() {
			h.Nodes[id] = true
		}
		for _, k := range p.VisitedEdges() {
			h.Edges[k] = true
		}
		if c, ok := payload.(interface{ CurrentNode() string }); ok {
			h.Current = c.CurrentNode()
		}
	case map[string]any:
		for _, id := range stringList(p["visited"]) {
			h.Nodes[id] = true
		}
		for _, k := range stringList(p["edges"]) {
			h.Edges[k] = true
		}
		h.Current, _ = p["current"].(string)
	}
	return h
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
