package graph

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts edge-list text into a positioned model.
//
// Each non-blank line is split on whitespace. In unweighted mode a line needs at
// least two tokens; in weighted mode it needs at least three and the third must
// parse as a finite number. Lines failing these rules are dropped without error.
// Nodes are laid out with [DefaultLayout].
func Parse(raw string, weighted bool) *Model {
	m := &Model{Nodes: []Node{}, Edges: []Edge{}}
	seen := make(map[string]bool)

	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			m.Nodes = append(m.Nodes, Node{ID: id})
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		e, ok := parseLine(line, weighted)
		if !ok {
			continue
		}
		addNode(e.Source)
		addNode(e.Target)
		m.Edges = append(m.Edges, e)
	}

	DefaultLayout.Apply(m)
	return m
}

func parseLine(line string, weighted bool) (Edge, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Edge{}, false
	}
	e := Edge{Source: fields[0], Target: fields[1]}
	if !weighted {
		return e, true
	}
	if len(fields) < 3 {
		return Edge{}, false
	}
	w, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return Edge{}, false
	}
	e.Weight = w
	e.Weighted = true
	return e, true
}

// Format renders a model back into edge-list text, one edge per line.
// Parse(Format(m), m.Weighted()) reproduces m for models Parse produced.
func Format(m *Model) string {
	var b strings.Builder
	for _, e := range m.Edges {
		b.WriteString(e.Source)
		b.WriteByte(' ')
		b.WriteString(e.Target)
		if e.Weighted {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(e.Weight, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
