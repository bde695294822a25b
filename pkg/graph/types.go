package graph

import "slices"

// =============================================================================
// Model - Parsed Graph
// =============================================================================

// Model is a parsed, positioned graph.
//
// Node order is first-seen order in the edge list. Edge order is input order;
// duplicate edges and self-loops are kept. Every edge endpoint is a node.
type Model struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a graph vertex with a fixed 2D position.
type Node struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// Edge is a connection between two nodes. Weight is meaningful only when
// Weighted is set.
type Edge struct {
	Source   string  `json:"source" bson:"source"`
	Target   string  `json:"target" bson:"target"`
	Weight   float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Weighted bool    `json:"weighted,omitempty" bson:"weighted,omitempty"`
}

// Key returns the "source-target" identifier used to record traversed edges.
func (e Edge) Key() string { return EdgeKey(e.Source, e.Target) }

// Other returns the endpoint of e opposite to id. For self-loops it returns id.
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// EdgeKey formats a directed edge identifier.
func EdgeKey(source, target string) string { return source + "-" + target }

// =============================================================================
// Queries
// =============================================================================

// HasNode reports whether the model contains a node with the given ID.
func (m *Model) HasNode(id string) bool {
	return m.Index(id) >= 0
}

// Index returns the position of the node in first-seen order, or -1.
func (m *Model) Index(id string) int {
	if m == nil {
		return -1
	}
	return slices.IndexFunc(m.Nodes, func(n Node) bool { return n.ID == id })
}

// Node returns the node with the given ID.
func (m *Model) Node(id string) (Node, bool) {
	i := m.Index(id)
	if i < 0 {
		return Node{}, false
	}
	return m.Nodes[i], true
}

// NodeIDs returns node IDs in first-seen order.
func (m *Model) NodeIDs() []string {
	ids := make([]string, len(m.Nodes))
	for i, n := range m.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// OutNeighbors returns the targets of all edges whose source is id, in edge
// order. Duplicates are kept.
func (m *Model) OutNeighbors(id string) []string {
	var out []string
	for _, e := range m.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// Incident returns the indices (into Edges) of every edge touching id,
// treating edges as undirected.
func (m *Model) Incident(id string) []int {
	var out []int
	for i, e := range m.Edges {
		if e.Touches(id) {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	return &Model{
		Nodes: slices.Clone(m.Nodes),
		Edges: slices.Clone(m.Edges),
	}
}

// Weighted reports whether any edge carries a weight.
func (m *Model) Weighted() bool {
	return slices.ContainsFunc(m.Edges, func(e Edge) bool { return e.Weighted })
}
