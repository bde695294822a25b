// Package render draws graph states as Graphviz DOT and SVG.
//
// # Overview
//
// The graph algorithms (bfs, dfs, prim) emit snapshots that name the visited
// nodes and the tree edges found so far. This package turns a [graph.Model]
// plus such a highlight into a picture:
//
//	dot := render.ToDOT(model, render.HighlightFrom(step.Payload), render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Layout
//
// Node positions come from the model (see [graph.CircleLayout]) and are
// pinned in the DOT output, so every frame of a trace places nodes in the
// same spot. Graphviz runs with the neato engine and only routes edges.
//
// # Highlights
//
// [HighlightFrom] accepts a live snapshot implementing [step.Highlighter] or
// the generic map a snapshot becomes after a JSON round trip, so traces read
// back from a cache or store render the same way as fresh ones.
package render
