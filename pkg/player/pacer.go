package player

import (
	"context"
	"time"

	"github.com/matzehuels/stepwise/pkg/step"
)

// DefaultPaceScale is the speed factor applied to advisory step delays.
const DefaultPaceScale = 1.0

// Pacer decides how long to wait after a step has been rendered.
type Pacer interface {
	Wait(ctx context.Context, s step.Step) error
}

// PacerFunc adapts a function to the Pacer interface.
type PacerFunc func(ctx context.Context, s step.Step) error

// Wait implements Pacer.
func (f PacerFunc) Wait(ctx context.Context, s step.Step) error { return f(ctx, s) }

// Instant never waits. It still reports context cancellation.
var Instant Pacer = PacerFunc(func(ctx context.Context, _ step.Step) error {
	return ctx.Err()
})

// Suggested waits for each step's advisory delay multiplied by scale.
// A scale of 0.5 plays twice as fast. Non-positive scales behave like Instant.
func Suggested(scale float64) Pacer {
	return PacerFunc(func(ctx context.Context, s step.Step) error {
		return sleep(ctx, time.Duration(float64(s.PaceMS)*scale*float64(time.Millisecond)))
	})
}

// Fixed waits d after every step regardless of its advisory delay.
func Fixed(d time.Duration) Pacer {
	return PacerFunc(func(ctx context.Context, _ step.Step) error {
		return sleep(ctx, d)
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
