// Package store archives traces so they can be fetched again by ID.
//
// [MemoryStore] keeps traces in process and backs the CLI and tests.
// [MongoStore] persists them in a MongoDB collection for the HTTP server.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/stepwise/pkg/step"
)

// ErrNotFound is returned when no trace has the requested ID.
var ErrNotFound = errors.New("trace not found")

// DefaultListLimit bounds ListTraces when the caller passes no limit.
const DefaultListLimit = 50

// Store saves and loads traces.
type Store interface {
	SaveTrace(ctx context.Context, t *step.Trace) error
	GetTrace(ctx context.Context, id string) (*step.Trace, error)
	// ListTraces returns the newest traces first. An empty algorithm
	// matches all.
	ListTraces(ctx context.Context, algorithm string, limit int) ([]TraceInfo, error)
	Close(ctx context.Context) error
}

// TraceInfo is the listing view of a stored trace.
type TraceInfo struct {
	ID        string    `json:"id" bson:"_id"`
	Algorithm string    `json:"algorithm" bson:"algorithm"`
	Summary   string    `json:"summary" bson:"summary"`
	Steps     int       `json:"steps" bson:"steps"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Info returns the listing view of t.
func Info(t *step.Trace) TraceInfo {
	return TraceInfo{
		ID:        t.ID,
		Algorithm: t.Algorithm,
		Summary:   t.Summary,
		Steps:     t.Len(),
		CreatedAt: t.CreatedAt,
	}
}

func validate(t *step.Trace) error {
	if t == nil || t.ID == "" {
		return errors.New("trace has no id")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
