package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stepwise/pkg/buildinfo"
	errs "github.com/matzehuels/stepwise/pkg/errors"
	"github.com/matzehuels/stepwise/pkg/gallery"
	"github.com/matzehuels/stepwise/pkg/graph"
	"github.com/matzehuels/stepwise/pkg/pipeline"
	"github.com/matzehuels/stepwise/pkg/player"
	"github.com/matzehuels/stepwise/pkg/pseudocode"
)

// =============================================================================
// Catalogue
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, gallery.Algorithms())
}

// algorithmDetail is the response of GET /api/algorithms/{name}.
type algorithmDetail struct {
	gallery.Info
	Pseudocode []string        `json:"pseudocode"`
	Lines      map[string]int  `json:"lines"`
	Defaults   gallery.Request `json:"defaults"`
}

func (s *Server) handleAlgorithm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, ok := gallery.Lookup(name)
	if !ok {
		s.respondError(w, r, errs.New(errs.ErrCodeNotFound, "unknown algorithm %q", name))
		return
	}
	listing := pseudocode.MustLookup(name)
	lines := make(map[string]int, len(listing.Kinds))
	for k, l := range listing.Kinds {
		lines[string(k)] = l
	}
	defaults, _ := gallery.DefaultRequest(name)
	respondJSON(w, http.StatusOK, algorithmDetail{
		Info:       info,
		Pseudocode: listing.Lines,
		Lines:      lines,
		Defaults:   defaults,
	})
}

// handleGraph parses an edge list and returns the laid-out model.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req gallery.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	var m *graph.Model
	if req.Algorithm == "" {
		m = graph.Parse(req.Edges, false)
	} else {
		var ok bool
		if m, ok = gallery.Model(req); !ok {
			s.respondError(w, r, errs.New(errs.ErrCodeUnsupported, "%s does not take a graph", req.Resolve()))
			return
		}
	}
	respondJSON(w, http.StatusOK, m)
}

// =============================================================================
// Traces
// =============================================================================

func (s *Server) handleCreateTrace(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeJSON(w, r, &opts); err != nil {
		s.respondError(w, r, err)
		return
	}
	opts.Formats = nil
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.SaveTrace(r.Context(), res.Trace); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.TraceHit))
	w.Header().Set("Location", "/api/traces/"+res.Trace.ID)
	respondJSON(w, http.StatusCreated, res.Trace)
}

func (s *Server) handleListTraces(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	infos, err := s.store.ListTraces(r.Context(), r.URL.Query().Get("algorithm"), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request) {
	tr, err := s.store.GetTrace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tr)
}

// =============================================================================
// Rendering
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := decodeJSON(w, r, &opts); err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	format := opts.Formats[0]
	opts.Formats = opts.Formats[:1]

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Player
// =============================================================================

// liveRun tracks the cancel function of the animating run.
type liveRun struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// begin calls start and records cancel under the same lock, so a stop
// arriving while start runs waits and then cancels the new run.
func (l *liveRun) begin(start func() error, cancel context.CancelFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := start(); err != nil {
		return err
	}
	l.cancel = cancel
	return nil
}

func (l *liveRun) stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return false
	}
	l.cancel()
	l.cancel = nil
	return true
}

// startResponse is the body of a successful POST /api/player/start.
type startResponse struct {
	RunID     string `json:"run_id"`
	Algorithm string `json:"algorithm"`
}

func (s *Server) handlePlayerStart(w http.ResponseWriter, r *http.Request) {
	var req gallery.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	// Edits are refused while a run animates, before the input is parsed.
	if s.player.Animating() {
		s.respondError(w, r, player.ErrBusy)
		return
	}
	gen, err := gallery.New(req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx, cancel := context.WithCancel(s.runCtx)
	var (
		runID string
		done  <-chan error
	)
	err = s.live.begin(func() (err error) {
		runID, done, err = s.player.Start(ctx, gen, nil)
		return err
	}, cancel)
	if err != nil {
		cancel()
		s.respondError(w, r, err)
		return
	}
	go func() {
		if err := <-done; err != nil {
			s.logger.Debug("run stopped", "run", runID, "err", err)
		}
		cancel()
	}()

	respondJSON(w, http.StatusAccepted, startResponse{RunID: runID, Algorithm: gen.Algorithm()})
}

func (s *Server) handlePlayerStop(w http.ResponseWriter, r *http.Request) {
	if !s.player.Animating() || !s.live.stop() {
		s.respondError(w, r, errs.New(errs.ErrCodeNotFound, "no run is animating"))
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "stopping"})
}

// stateView adds the highlighted pseudocode line to a player state.
type stateView struct {
	player.State
	Line int  `json:"line"`
	Done bool `json:"done"`
}

func (s *Server) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	st := s.player.State()
	respondJSON(w, http.StatusOK, stateView{State: st, Line: st.Line(), Done: st.Done()})
}
