// Package graph provides the graph model shared by the traversal and
// spanning-tree step generators.
//
// This package turns the free-form edge-list text a user types into a
// positioned [Model], and defines the JSON wire format used by the HTTP API,
// trace files and caches.
//
// # Edge List Format
//
// One edge per line, whitespace separated:
//
//	A B        // unweighted: source target
//	A B 4      // weighted:   source target weight
//
// Lines that do not carry enough tokens for the selected mode, or whose weight
// does not parse as a number, are silently dropped. Extra tokens are ignored.
// Nodes are created on first mention, so every edge endpoint always exists.
//
// # Layout
//
// [Parse] places the k distinct nodes on a circle: node i (in first-seen order)
// sits at angle 2πi/k around [DefaultLayout]'s center. Parsing is deterministic,
// so re-parsing unchanged text yields an identical model.
//
//	m := graph.Parse("A B\nA C\nC D", false)
//	m.Nodes[0]              // {ID: "A", X: 700, Y: 400}
//	m.OutNeighbors("A")     // ["B", "C"]
//
// # Neighbor Rules
//
// Traversals follow directed edges ([Model.OutNeighbors]). The spanning-tree
// generator treats edges as undirected ([Model.Incident]). Duplicate edges and
// self-loops are preserved as typed; generators tolerate them.
//
// # Serialization
//
// Models use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "A", "x": 700, "y": 400}],
//	  "edges": [{"source": "A", "target": "B", "weight": 4, "weighted": true}]
//	}
//
// Common operations:
//
//	m, _ := graph.ReadModelFile("graph.json")
//	graph.WriteModelFile(m, "out.json")
//	data, _ := graph.MarshalModel(m)
package graph
