package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepwise/pkg/observability"
)

// logHooks reports player, pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnRunStart(_ context.Context, runID, algorithm string) {
	h.logger.Debug("run start", "run", shortID(runID), "algorithm", algorithm)
}

func (h *logHooks) OnStep(_ context.Context, runID, _ string, seq int, kind string) {
	h.logger.Debug("step", "run", shortID(runID), "seq", seq, "kind", kind)
}

func (h *logHooks) OnRunComplete(_ context.Context, runID, algorithm string, steps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run stopped", "run", shortID(runID), "algorithm", algorithm, "steps", steps, "err", err)
		return
	}
	h.logger.Debug("run complete", "run", shortID(runID), "algorithm", algorithm, "steps", steps, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnTraceStart(_ context.Context, algorithm string) {
	h.logger.Debug("tracing", "algorithm", algorithm)
}

func (h *logHooks) OnTraceComplete(_ context.Context, algorithm string, steps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("trace failed", "algorithm", algorithm, "err", err)
		return
	}
	h.logger.Debug("traced", "algorithm", algorithm, "steps", steps, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var (
	_ observability.PlayerHooks   = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
