// Package gallery is the catalogue of animated algorithms.
//
// It maps a user-facing [Request] (an algorithm name plus the raw inputs a
// user typed: edge list, source node, array, text, pattern or recursion
// arguments) to a ready [step.Generator]. Every boundary (CLI, TUI, HTTP)
// goes through [New], so input parsing and source validation behave the same
// everywhere.
//
// # Algorithms
//
//	bfs, dfs       directed traversal of an unweighted edge list
//	prim           minimum spanning tree of a weighted edge list
//	heapify        bottom-up max-heap construction
//	heapsort       heap construction followed by sorting
//	horspool       Horspool string matching
//	fibonacci, factorial, gcd, toh
//	               recursion trees ("recursion" with Function also works)
//
// # Scenarios
//
// Named requests can be kept in TOML files:
//
//	[[scenario]]
//	name = "default-bfs"
//	algorithm = "bfs"
//	source = "A"
//	edges = """
//	A B
//	A C
//	"""
//	pace_scale = 0.5
//
// Load them with [LoadScenarios] or [ReadScenarios].
package gallery
