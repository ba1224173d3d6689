// Package server exposes blob generation and scene rendering over HTTP.
//
// Routes:
//
//	GET  /healthz          build info
//	GET  /v1/styles        the preset table
//	GET  /v1/blob          one blob's geometry as JSON
//	GET  /v1/blob.svg      one blob as a standalone SVG
//	POST /v1/render        render a TOML scene through the pipeline
//
// Errors are returned as {"code": ..., "message": ...} with a status derived
// from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/pipeline"
)

// APIPrefix namespaces the service's cache keys.
const APIPrefix = "api:"

// MaxSceneBytes bounds the request body of /v1/render.
const MaxSceneBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	cache  cache.Cache
	keyer  cache.Keyer
	runner *pipeline.Runner
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithBlobTTL overrides how long generated blob SVGs stay cached.
func WithBlobTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithArtifactTTL overrides how long rendered scene artifacts stay cached.
func WithArtifactTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.runner.TTL = ttl
		}
	}
}

// New creates a server backed by c. A nil cache disables caching and a nil
// logger discards output.
func New(c cache.Cache, logger *log.Logger, opts ...Option) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), APIPrefix)
	s := &Server{
		cache:  c,
		keyer:  keyer,
		runner: pipeline.NewRunner(c, keyer, logger),
		logger: logger,
		ttl:    cache.TTLBlob,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/styles", s.handleStyles)
		r.Get("/blob", s.handleBlob)
		r.Get("/blob.svg", s.handleBlobSVG)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.runner.Close()
}
