package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stepwise/pkg/observability"
	"github.com/matzehuels/stepwise/pkg/step"
)

// ErrBusy is returned when a run is requested while another is animating.
var ErrBusy = errors.New("player: a run is already animating")

// State is the presentation-facing view of the current run.
type State struct {
	RunID      string      `json:"run_id,omitempty"`
	Algorithm  string      `json:"algorithm,omitempty"`
	Animating  bool        `json:"animating"`
	Current    *step.Step  `json:"current,omitempty"`
	Applied    int         `json:"applied"`
	Result     step.Result `json:"result,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	Cancelled  bool        `json:"cancelled,omitempty"`
	StartedAt  time.Time   `json:"started_at,omitzero"`
	FinishedAt time.Time   `json:"finished_at,omitzero"`
}

// Line returns the highlighted pseudocode line of the current step.
func (s State) Line() int {
	if s.Current == nil {
		return step.NoLine
	}
	return s.Current.Line
}

// Done reports whether the last run finished and published its result.
func (s State) Done() bool { return !s.Animating && s.Result != nil }

// Option configures a Player.
type Option func(*Player)

// WithPacer sets the pacing strategy. The default is Suggested(DefaultPaceScale).
func WithPacer(p Pacer) Option {
	return func(pl *Player) {
		if p != nil {
			pl.pacer = p
		}
	}
}

// WithLogger sets the logger used for run lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(pl *Player) {
		if l != nil {
			pl.logger = l
		}
	}
}

// Player plays one step sequence at a time.
type Player struct {
	pacer  Pacer
	logger *log.Logger

	mu        sync.RWMutex
	animating bool
	state     State
}

// New creates an idle player.
func New(opts ...Option) *Player {
	p := &Player{
		pacer:  Suggested(DefaultPaceScale),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Animating reports whether a run is in progress.
func (p *Player) Animating() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.animating
}

// State returns a copy of the current state.
func (p *Player) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.copyState()
}

func (p *Player) copyState() State {
	s := p.state
	if s.Current != nil {
		c := *s.Current
		s.Current = &c
	}
	return s
}

// Reset clears the state of the last run. It returns ErrBusy while animating.
func (p *Player) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.animating {
		return ErrBusy
	}
	p.state = State{}
	return nil
}

// Run plays gen to completion.
//
// Steps are consumed strictly in order. For each step the state is updated,
// onStep (if non-nil) receives a snapshot, and the pacer is awaited. When the
// sequence is exhausted, gen.Result() is published into the state and
// returned. If a run is already animating, Run returns ErrBusy immediately and
// leaves the state untouched. If ctx is cancelled, Run stops after the current
// step and returns the context's error.
func (p *Player) Run(ctx context.Context, gen step.Generator, onStep func(State)) (step.Result, error) {
	runID, err := p.begin(gen.Algorithm())
	if err != nil {
		return nil, err
	}
	return p.play(ctx, runID, gen, onStep)
}

// Start is Run in the background. It returns once the run holds the gate,
// so a second Start fails with ErrBusy immediately. done receives the run's
// error (nil when it completed) and is then closed.
func (p *Player) Start(ctx context.Context, gen step.Generator, onStep func(State)) (runID string, done <-chan error, err error) {
	runID, err = p.begin(gen.Algorithm())
	if err != nil {
		return "", nil, err
	}
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		_, err := p.play(ctx, runID, gen, onStep)
		ch <- err
	}()
	return runID, ch, nil
}

func (p *Player) play(ctx context.Context, runID string, gen step.Generator, onStep func(State)) (res step.Result, err error) {
	algorithm := gen.Algorithm()
	start := time.Now()
	hooks := observability.Player()
	hooks.OnRunStart(ctx, runID, algorithm)
	p.logger.Debug("run started", "run", runID, "algorithm", algorithm)

	applied := 0
	finished := false
	defer func() {
		if !finished {
			// onStep panicked; release the gate so the player stays usable.
			p.finish(nil, true)
		}
		hooks.OnRunComplete(ctx, runID, algorithm, applied, time.Since(start), err)
	}()

	if err = ctx.Err(); err == nil {
		for s := range gen.Steps() {
			snap := p.apply(s)
			applied++
			hooks.OnStep(ctx, runID, algorithm, s.Seq, string(s.Kind))
			if onStep != nil {
				onStep(snap)
			}
			if err = p.pacer.Wait(ctx, s); err != nil {
				break
			}
		}
	}

	if err != nil {
		finished = true
		p.finish(nil, true)
		p.logger.Debug("run cancelled", "run", runID, "steps", applied)
		return nil, err
	}

	res = gen.Result()
	finished = true
	p.finish(res, false)
	p.logger.Debug("run finished", "run", runID, "steps", applied, "duration", time.Since(start))
	return res, nil
}

// begin takes the animating gate and resets state for a new run.
func (p *Player) begin(algorithm string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.animating {
		return "", ErrBusy
	}
	p.animating = true
	p.state = State{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		Animating: true,
		StartedAt: time.Now().UTC(),
	}
	return p.state.RunID, nil
}

func (p *Player) apply(s step.Step) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := s
	p.state.Current = &cur
	p.state.Applied++
	return p.copyState()
}

func (p *Player) finish(res step.Result, cancelled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.animating = false
	p.state.Animating = false
	p.state.Cancelled = cancelled
	p.state.FinishedAt = time.Now().UTC()
	if res != nil {
		p.state.Result = res
		p.state.Summary = res.Summary()
	}
}
