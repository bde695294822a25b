// Package step defines the unit of algorithm animation: a [Step] pairing a
// state snapshot with a pseudocode line pointer.
//
// A [Generator] runs an algorithm on a fixed input and exposes its execution as
// a lazy, strictly ordered [iter.Seq] of steps. Generators are pure: every call
// to Steps restarts the algorithm from the captured input, and nothing is shared
// between two iterations. Consumers (the player, trace writers, the HTTP API)
// only read steps.
//
// # Steps
//
// Each step carries:
//
//   - Seq: 0-based position in the run
//   - Kind: what happened ("dequeue", "compare", "swap", ...)
//   - Line: the highlighted pseudocode line, or [NoLine]
//   - PaceMS: an advisory delay before the next step
//   - Note: a short human status message
//   - Payload: an algorithm-specific immutable snapshot
//
// Payload slices and maps are copied per step, so holding on to an earlier step
// never observes later mutations.
//
// # Emitting
//
// Generators build steps through an [Emitter], which numbers them, resolves
// the pseudocode line for each kind and stops cleanly once the consumer breaks
// out of the range loop:
//
//	func (g *Generator) Steps() iter.Seq[step.Step] {
//	    return func(yield func(step.Step) bool) {
//	        em := step.NewEmitter("bfs", listing, yield)
//	        g.run(em)
//	    }
//	}
//
// # Traces
//
// [Collect] drains a generator into a [Trace], a self-contained JSON document
// holding the pseudocode listing, every step and the final result.
package step
