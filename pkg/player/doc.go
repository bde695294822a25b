// Package player drives step generators at a controlled pace.
//
// A [Player] is a generic fold over a step sequence: it pulls steps one at a
// time, applies each to its shared [State], hands a snapshot to the caller's
// callback and then waits for the [Pacer] before pulling the next step. The
// player knows nothing about individual algorithms.
//
// # Exclusivity
//
// A player animates one run at a time. While a run is in progress,
// [Player.Run] and [Player.Reset] return [ErrBusy] without touching state, so
// a second "start" request can never interleave with the first:
//
//	p := player.New(player.WithPacer(player.Suggested(1)))
//	go p.Run(ctx, gen, render)
//	_, err := p.Run(ctx, other, render) // ErrBusy
//
// # Pacing
//
// Steps carry an advisory PaceMS. [Suggested] honours it scaled by a factor,
// [Fixed] ignores it, and [Instant] never waits, which is what tests and trace
// export use. Cancelling the context interrupts the wait; the partially
// applied state stays readable through [Player.State].
//
// # Concurrency
//
// State is guarded by a read-write mutex. [Player.State] returns a copy, so
// renderers on other goroutines (a TUI, HTTP handlers) can poll freely while a
// run is being played.
package player
