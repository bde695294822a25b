package step

import "iter"

// Kind names what an individual step represents.
type Kind string

// NoLine is the line pointer of steps that highlight no pseudocode line.
const NoLine = -1

// Pacing hints carried on steps, in milliseconds.
const (
	PaceFast   = 300
	PaceNormal = 500
	PaceSlow   = 1000
	PaceMax    = 1500
)

// Step is one observable moment of an algorithm run.
type Step struct {
	Seq       int    `json:"seq"`
	Algorithm string `json:"algorithm"`
	Kind      Kind   `json:"kind"`
	Line      int    `json:"line"`
	PaceMS    int    `json:"pace_ms"`
	Note      string `json:"note,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// HasLine reports whether the step highlights a pseudocode line.
func (s Step) HasLine() bool { return s.Line >= 0 }

// Result is the final outcome of a run, published once the step sequence is
// exhausted.
type Result interface {
	Summary() string
}

// Generator produces the step sequence of one algorithm on a fixed input.
//
// Steps restarts the algorithm on every call. Result returns the outcome of a
// complete run; it does not depend on whether Steps has been consumed.
type Generator interface {
	Algorithm() string
	Steps() iter.Seq[Step]
	Result() Result
}

// LineMapper resolves the pseudocode line highlighted by a step kind.
type LineMapper interface {
	LineOf(kind Kind) int
}

// Highlighter is implemented by graph payloads that mark nodes and edges.
// Edge identifiers use the "source-target" form.
type Highlighter interface {
	VisitedNodes() []string
	VisitedEdges() []string
}

// Drain consumes a sequence and returns every step.
func Drain(seq iter.Seq[Step]) []Step {
	var out []Step
	for s := range seq {
		out = append(out, s)
	}
	return out
}
