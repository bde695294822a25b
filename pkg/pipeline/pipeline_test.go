package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/stepwise/pkg/cache"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/observability"
	"github.com/matzehuels/stepwise/pkg/step"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func bfsOptions() Options {
	return Options{Request: gallery.Request{Algorithm: "bfs", Edges: gallery.DefaultEdges, Source: "A"}}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Request: gallery.Request{Edges: gallery.DefaultEdges, Source: "A"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Algorithm != DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", opts.Algorithm, DefaultAlgorithm)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.Algorithm != DefaultAlgorithm {
		t.Error("ValidateAndSetDefaults should be idempotent")
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"unknown algorithm", Options{Request: gallery.Request{Algorithm: "bogo"}}, errs.ErrCodeInvalidAlgorithm},
		{"bad format", Options{Request: gallery.Request{Algorithm: "bfs"}, Formats: []string{"png"}}, errs.ErrCodeInvalidFormat},
		{"negative frame", Options{Request: gallery.Request{Algorithm: "bfs"}, Frame: -2}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsRenderable(t *testing.T) {
	tests := map[string]bool{"bfs": true, "dfs": true, "prim": true, "heapsort": false, "horspool": false, "toh": false}
	for alg, want := range tests {
		opts := Options{Request: gallery.Request{Algorithm: alg}}
		if got := opts.Renderable(); got != want {
			t.Errorf("Renderable(%s) = %v, want %v", alg, got, want)
		}
	}
}

func TestTraceCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	first, hit, err := r.TraceWithCacheInfo(ctx, bfsOptions())
	if err != nil {
		t.Fatalf("first trace: %v", err)
	}
	if hit {
		t.Error("first trace should miss")
	}
	if first.ID == "" || first.Algorithm != "bfs" || len(first.Pseudocode) == 0 {
		t.Errorf("trace = %+v", first)
	}
	if first.Summary == "" || first.Len() == 0 {
		t.Error("trace has no steps or summary")
	}

	second, hit, err := r.TraceWithCacheInfo(ctx, bfsOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second trace should hit")
	}
	if second.ID != first.ID || second.Len() != first.Len() {
		t.Errorf("cached trace differs: %s/%d vs %s/%d", second.ID, second.Len(), first.ID, first.Len())
	}

	opts := bfsOptions()
	opts.Refresh = true
	third, hit, err := r.TraceWithCacheInfo(ctx, opts)
	if err != nil || hit {
		t.Fatalf("refresh = %v, %v", hit, err)
	}
	if third.ID == first.ID {
		t.Error("refresh should rebuild the trace")
	}
}

func TestTraceInvalidSource(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := bfsOptions()
	opts.Source = "Z"
	_, err := r.Trace(context.Background(), opts)
	if !errs.Is(err, errs.ErrCodeInvalidSource) {
		t.Errorf("error = %v, want INVALID_SOURCE", err)
	}
	if c.sets != 0 {
		t.Error("failed traces must not be cached")
	}
}

func TestTraceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, nil, nil).Trace(ctx, bfsOptions()); err == nil {
		t.Error("cancelled context should abort the trace")
	}
}

func TestFramePayload(t *testing.T) {
	tr := &step.Trace{Steps: []step.Step{{Seq: 0, Payload: "a"}, {Seq: 1, Payload: "b"}, {Seq: 2, Payload: "c"}}}
	tests := []struct {
		frame int
		want  any
	}{
		{LastFrame, "c"},
		{1, "a"},
		{2, "b"},
		{99, "c"},
	}
	for _, tt := range tests {
		if got := FramePayload(tr, tt.frame); got != tt.want {
			t.Errorf("FramePayload(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
	if got := FramePayload(&step.Trace{}, LastFrame); got != nil {
		t.Errorf("empty trace payload = %v", got)
	}
}

func TestExecuteDOT(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	opts := Options{
		Request: gallery.Request{Algorithm: "prim", Edges: gallery.DefaultWeightedEdges, Source: "A"},
		Formats: []string{FormatDOT},
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(res.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "graph G {") || !strings.Contains(dot, `label="10"`) {
		t.Errorf("prim DOT:\n%s", dot)
	}
	if res.Stats.Steps != res.Trace.Len() || res.CacheInfo.TraceHit || res.CacheInfo.RenderHit {
		t.Errorf("result = %+v", res.CacheInfo)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.TraceHit || !again.CacheInfo.RenderHit {
		t.Errorf("second execute cache info = %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatDOT], res.Artifacts[FormatDOT]) {
		t.Error("cached DOT differs")
	}
}

func TestRenderFrameFromCachedTrace(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	opts := bfsOptions()

	fresh, err := r.Trace(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	cached, err := r.Trace(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	a, err := RenderFrame(ctx, fresh, opts.Request, LastFrame, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderFrame(ctx, cached, opts.Request, LastFrame, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("decoded trace renders differently:\n%s\nvs\n%s", a, b)
	}
}

func TestRenderUnsupported(t *testing.T) {
	opts := Options{Request: gallery.Request{Algorithm: "heapsort", Array: "3 1 2"}, Formats: []string{FormatSVG}}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu                 sync.Mutex
	started, completed int
	hits, misses, sets int
	lastSteps          int
}

func (h *recordingHooks) OnTraceStart(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *recordingHooks) OnTraceComplete(_ context.Context, _ string, steps int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
	h.lastSteps = steps
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	for range 2 {
		if _, err := r.Trace(ctx, bfsOptions()); err != nil {
			t.Fatal(err)
		}
	}

	if h.started != 1 || h.completed != 1 || h.lastSteps == 0 {
		t.Errorf("pipeline hooks: started=%d completed=%d steps=%d", h.started, h.completed, h.lastSteps)
	}
	if h.misses != 1 || h.hits != 1 || h.sets != 1 {
		t.Errorf("cache hooks: hits=%d misses=%d sets=%d", h.hits, h.misses, h.sets)
	}
}
