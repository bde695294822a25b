// Package pipeline turns a gallery request into a trace and rendered frames.
//
// Both the CLI and the HTTP server go through this package so traces are
// built, cached and rendered the same way everywhere.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Trace: build the generator, drain it and record every step
//  2. Render: draw one frame of a graph trace as DOT or SVG
//
// Each stage is cached independently through [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Request: gallery.Request{Algorithm: "prim", Edges: edges, Source: "A"},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/step"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultAlgorithm is used when a request names none.
const DefaultAlgorithm = "bfs"

// LastFrame selects the final state of a trace.
const LastFrame = 0

// Format constants for rendered frames.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported frame formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatDOT: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline execution.
type Options struct {
	gallery.Request

	// Frame is the 1-based number of applied steps to render. LastFrame
	// renders the final state.
	Frame int `json:"frame,omitempty"`

	// Formats lists the frame formats to render. Empty means trace only.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached traces.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills defaults and rejects unusable options.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if err := o.ValidateForTrace(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForTrace checks that the request names a known algorithm.
func (o *Options) ValidateForTrace() error {
	name := o.Resolve()
	if err := errs.ValidateAlgorithmName(name); err != nil {
		return err
	}
	if _, ok := gallery.Lookup(name); !ok {
		return errs.New(errs.ErrCodeInvalidAlgorithm, "unknown algorithm %q", name)
	}
	return nil
}

// ValidateForRender checks formats and frame.
func (o *Options) ValidateForRender() error {
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}
	if o.Frame < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "frame must not be negative")
	}
	return nil
}

// Renderable reports whether the requested algorithm draws a graph.
func (o *Options) Renderable() bool {
	_, ok := gallery.Model(o.Request)
	return ok
}

// =============================================================================
// Result
// =============================================================================

// Result holds everything one execution produced.
type Result struct {
	Trace     *step.Trace
	TraceKey  string
	Artifacts map[string][]byte
	CacheInfo CacheInfo
	Stats     Stats
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	TraceHit  bool `json:"trace_hit"`
	RenderHit bool `json:"render_hit"`
}

// Stats holds timings and sizes.
type Stats struct {
	Steps      int           `json:"steps"`
	TraceTime  time.Duration `json:"trace_time"`
	RenderTime time.Duration `json:"render_time"`
}

// String returns a one-line summary for logs.
func (s Stats) String() string {
	return fmt.Sprintf("%d steps, trace %s, render %s", s.Steps, s.TraceTime, s.RenderTime)
}
