// Package server exposes the analysis pipeline over HTTP: a JSON API
// guarded by a static API key and per-client rate limiting, plus a
// server-rendered demo report page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/pipeline"
	"github.com/akarpov/feedlens/internal/worker"
)

// Server wires the pipeline to the HTTP surface
type Server struct {
	pipeline *pipeline.Pipeline
	limiter  *worker.ClientLimiter
	config   *model.Config
}

// NewServer creates a server around an existing pipeline
func NewServer(p *pipeline.Pipeline, cfg *model.Config) *Server {
	return &Server{
		pipeline: p,
		limiter:  worker.NewClientLimiter(cfg.Server.RateLimit.RequestsPerMinute, cfg.Server.RateLimit.Burst),
		config:   cfg,
	}
}

// Handler builds the chi router with the full middleware chain
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if s.config.Output.Verbose {
		r.Use(chimiddleware.Logger)
	}

	// Open endpoints
	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/report", s.handleReportPage)

	// API endpoints behind key auth and rate limiting
	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Use(s.rateLimit)
		r.Post("/insights", s.handleInsights)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "feedlens listening on %s\n", s.config.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
