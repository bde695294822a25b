package step

// Emitter numbers steps, resolves their pseudocode lines and forwards them to
// an iterator's yield function. After the consumer stops, every further Emit
// is a no-op that returns false.
type Emitter struct {
	algorithm string
	lines     LineMapper
	yield     func(Step) bool
	seq       int
	stopped   bool
}

// NewEmitter returns an emitter for algorithm. lines may be nil, in which case
// every step gets [NoLine].
func NewEmitter(algorithm string, lines LineMapper, yield func(Step) bool) *Emitter {
	return &Emitter{algorithm: algorithm, lines: lines, yield: yield}
}

// Discard returns an emitter that accepts and drops every step. Generators use
// it to compute a result without producing steps.
func Discard(algorithm string) *Emitter {
	return NewEmitter(algorithm, nil, func(Step) bool { return true })
}

// Emit publishes a step and reports whether the consumer wants more.
func (e *Emitter) Emit(kind Kind, paceMS int, note string, payload any) bool {
	if e.stopped {
		return false
	}
	line := NoLine
	if e.lines != nil {
		line = e.lines.LineOf(kind)
	}
	s := Step{
		Seq:       e.seq,
		Algorithm: e.algorithm,
		Kind:      kind,
		Line:      line,
		PaceMS:    paceMS,
		Note:      note,
		Payload:   payload,
	}
	e.seq++
	if !e.yield(s) {
		e.stopped = true
		return false
	}
	return true
}

// Stopped reports whether the consumer has stopped iterating.
func (e *Emitter) Stopped() bool { return e.stopped }

// Count returns the number of steps emitted so far.
func (e *Emitter) Count() int { return e.seq }
