// Package server exposes the solver over HTTP.
//
// The browser flow mirrors the classic upload page: GET / serves a form,
// POST /plot accepts a coordinate file and answers with the tour, its
// distance and an inline plot. A JSON API (POST /api/solve) and run lookups
// (GET /runs/{id}) serve programmatic clients.
package server

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/pipeline"
	"github.com/matzehuels/acotour/pkg/runstore"
)

// Config holds the per-request limits and defaults.
type Config struct {
	// Solver holds the defaults that form fields and API options override.
	Solver aco.Options

	// MaxUploadBytes bounds request bodies.
	MaxUploadBytes int64

	// MaxNodes bounds accepted inputs; 0 means unlimited.
	MaxNodes int

	// MaxAnts and MaxIterations bound the requested solver effort; 0 means
	// unlimited.
	MaxAnts       int
	MaxIterations int

	// RunTTL is how long stored runs stay retrievable; 0 keeps them forever.
	RunTTL time.Duration

	// SolveTimeout bounds a single solve; 0 means no limit beyond the
	// request context.
	SolveTimeout time.Duration
}

// DefaultConfig returns limits suitable for local use.
func DefaultConfig() Config {
	return Config{
		Solver:         aco.DefaultOptions(),
		MaxUploadBytes: 1 << 20,
		MaxNodes:       2000,
		MaxAnts:        1000,
		MaxIterations:  100000,
		RunTTL:         runstore.DefaultTTL,
		SolveTimeout:   2 * time.Minute,
	}
}

// Server routes HTTP requests to the pipeline runner and run store.
type Server struct {
	runner *pipeline.Runner
	store  runstore.Store
	logger *log.Logger
	cfg    Config
	pages  *template.Template
	router chi.Router
}

// New builds a server. A nil logger discards output.
func New(runner *pipeline.Runner, store runstore.Store, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		cfg:    cfg,
		pages:  pages,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(s.cfg.MaxUploadBytes))

	r.Get("/", s.handleIndex)
	r.Post("/plot", s.handlePlot)
	r.Get("/healthz", s.handleHealth)

	r.Post("/api/solve", s.handleSolve)
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetRun)
		r.Get("/plot.png", s.handleRunPlot)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// solveContext applies the configured solve timeout.
func (s *Server) solveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.SolveTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.SolveTimeout)
	}
	return context.WithCancel(ctx)
}
