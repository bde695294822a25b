package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/stepwise/pkg/graph"
)

// Colors used for highlighted elements.
const (
	ColorVisited = "#f4a261"
	ColorCurrent = "#e76f51"
	ColorTree    = "#2a9d8f"
	ColorIdle    = "#adb5bd"
)

// pointsPerUnit scales model coordinates down to Graphviz points.
const pointsPerUnit = 0.01

// Options configures DOT output.
type Options struct {
	// Directed draws arrows and uses a digraph.
	Directed bool

	// Weighted prints edge weights as labels.
	Weighted bool
}

// ToDOT converts a graph model to DOT with pinned node positions. Nodes and
// edges named by h are colored.
func ToDOT(m *graph.Model, h Highlight, opts Options) string {
	kind, arrow := "graph", "--"
	if opts.Directed {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"" + ColorIdle + "\", penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, h), ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.Source, arrow, e.Target, strings.Join(edgeAttrs(e, h, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, h Highlight) []string {
	// Model y grows downward, Graphviz y grows upward.
	pos := fmt.Sprintf("%s,%s!", fmtPoint(n.X), fmtPoint(-n.Y))
	attrs := []string{fmt.Sprintf("pos=%q", pos)}
	switch {
	case n.ID == h.Current:
		attrs = append(attrs, "fillcolor=\""+ColorCurrent+"\"", "fontcolor=white")
	case h.Nodes[n.ID]:
		attrs = append(attrs, "fillcolor=\""+ColorVisited+"\"")
	}
	return attrs
}

func edgeAttrs(e graph.Edge, h Highlight, opts Options) []string {
	var attrs []string
	if opts.Weighted && e.Weighted {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(e.Weight, 'g', -1, 64)))
	}
	if h.HasEdge(e.Source, e.Target) {
		attrs = append(attrs, "color=\""+ColorTree+"\"", "penwidth=3")
	}
	if len(attrs) == 0 {
		attrs = append(attrs, "style=solid")
	}
	return attrs
}

func fmtPoint(v float64) string {
	return strconv.FormatFloat(v*pointsPerUnit, 'f', 2, 64)
}
