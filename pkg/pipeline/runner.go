package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stepwise/pkg/cache"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/observability"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
	"github.com/matzehuels/stepwise/pkg/step"
)

// Key types reported to observability.CacheHooks.
const (
	keyTrace    = "trace"
	keyArtifact = "artifact"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-request state, so one Runner may serve many
// goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means cache.DefaultKeyer, a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute builds the trace and renders the requested formats of one frame.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	traceStart := time.Now()
	tr, hit, err := r.TraceWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	result.Trace = tr
	result.TraceKey = r.traceKey(opts)
	result.CacheInfo.TraceHit = hit
	result.Stats.Steps = tr.Len()
	result.Stats.TraceTime = time.Since(traceStart)

	logger.Info("traced",
		"algorithm", tr.Algorithm,
		"steps", tr.Len(),
		"cached", hit,
		"duration", result.Stats.TraceTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	allHit := true
	for _, format := range opts.Formats {
		data, hit, err := r.RenderWithCacheInfo(ctx, tr, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		allHit = allHit && hit
	}
	result.CacheInfo.RenderHit = allHit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered",
		"formats", opts.Formats,
		"frame", opts.Frame,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TraceWithCacheInfo returns the trace for opts and whether it came from
// the cache.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, opts Options) (*step.Trace, bool, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	if err := opts.ValidateForTrace(); err != nil {
		return nil, false, err
	}
	logger := r.logger(opts)
	key := r.traceKey(opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if tr, err := step.UnmarshalTrace(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTrace)
				return tr, true, nil
			}
			logger.Debug("discarding unreadable cached trace", "key", key)
		} else if err != nil {
			logger.Warn("cache lookup failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTrace)
	}

	tr, err := r.buildTrace(ctx, opts.Request)
	if err != nil {
		return nil, false, err
	}

	if data, err := step.MarshalTrace(tr); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTrace); err != nil {
			logger.Warn("cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTrace, len(data))
		}
	}
	return tr, false, nil
}

// Trace is TraceWithCacheInfo without the cache hit info.
func (r *Runner) Trace(ctx context.Context, opts Options) (*step.Trace, error) {
	tr, _, err := r.TraceWithCacheInfo(ctx, opts)
	return tr, err
}

func (r *Runner) buildTrace(ctx context.Context, req gallery.Request) (tr *step.Trace, err error) {
	name := req.Resolve()
	hooks := observability.Pipeline()
	hooks.OnTraceStart(ctx, name)
	start := time.Now()
	defer func() {
		n := 0
		if tr != nil {
			n = tr.Len()
		}
		hooks.OnTraceComplete(ctx, name, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gen, err := gallery.New(req)
	if err != nil {
		return nil, err
	}
	var lines []string
	if l, ok := pseudocode.Lookup(gen.Algorithm()); ok {
		lines = l.Lines
	}
	tr = step.Collect(gen, lines)
	tr.ID = uuid.NewString()
	tr.Input = req
	return tr, nil
}

// RenderWithCacheInfo renders one frame of tr in format and reports whether
// it came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tr *step.Trace, opts Options, format string) ([]byte, bool, error) {
	if !ValidFormats[format] {
		return nil, false, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(r.traceKey(opts))), cache.ArtifactKeyOpts{
		Seq:    opts.Frame,
		Format: format,
	})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyArtifact)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyArtifact)

	data, err := RenderFrame(ctx, tr, opts.Request, opts.Frame, format)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, keyArtifact, len(data))
	}
	return data, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, tr *step.Trace, opts Options, format string) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, tr, opts, format)
	return data, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) traceKey(opts Options) string {
	return r.Keyer.TraceKey(opts.Resolve(), opts.Request)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
