// Package server exposes the gallery over HTTP.
//
// The server owns exactly one live [player.Player]. Starting a run while it
// animates is refused with 409 Conflict; everything else (traces, renders,
// graph parsing) is stateless and goes through [pipeline.Runner].
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stepwise/pkg/cache"
	"github.com/matzehuels/stepwise/pkg/pipeline"
	"github.com/matzehuels/stepwise/pkg/player"
	"github.com/matzehuels/stepwise/pkg/store"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Config holds server configuration. Zero values select an in-memory cache,
// an in-memory store and the suggested pace.
type Config struct {
	Addr      string
	Logger    *log.Logger
	Cache     cache.Cache
	Store     store.Store
	PaceScale float64

	// Pacer overrides PaceScale; tests use player.Instant.
	Pacer player.Pacer
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	runner *pipeline.Runner
	store  store.Store
	player *player.Player
	router chi.Router
	live   liveRun

	// runCtx outlives individual requests so player runs keep going after
	// the start request returns.
	runCtx    context.Context
	cancelRun context.CancelFunc
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemoryCache()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.PaceScale <= 0 {
		cfg.PaceScale = player.DefaultPaceScale
	}
	pacer := cfg.Pacer
	if pacer == nil {
		pacer = player.Suggested(cfg.PaceScale)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:       cfg,
		logger:    cfg.Logger,
		runner:    pipeline.NewRunner(cfg.Cache, cache.NewScopedKeyer(nil, "server:"), cfg.Logger),
		store:     cfg.Store,
		player:    player.New(player.WithPacer(pacer), player.WithLogger(cfg.Logger)),
		runCtx:    runCtx,
		cancelRun: cancel,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/algorithms/{name}", s.handleAlgorithm)
		r.Post("/graph", s.handleGraph)

		r.Post("/traces", s.handleCreateTrace)
		r.Get("/traces", s.handleListTraces)
		r.Get("/traces/{id}", s.handleGetTrace)

		r.Post("/player/start", s.handlePlayerStart)
		r.Post("/player/stop", s.handlePlayerStop)
		r.Get("/player/state", s.handlePlayerState)

		r.Post("/render", s.handleRender)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

// Close stops any live run and releases the backends.
func (s *Server) Close(ctx context.Context) {
	s.cancelRun()
	if err := s.runner.Close(); err != nil {
		s.logger.Warn("close cache", "err", err)
	}
	if err := s.store.Close(ctx); err != nil {
		s.logger.Warn("close store", "err", err)
	}
}
