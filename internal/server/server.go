// Package server exposes a workspace over HTTP/JSON so that a browser (or
// any other client) can act as the rendering layer.
//
// Handlers run concurrently; every request that touches the workspace holds
// the server mutex for its whole duration.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dockyard/pkg/cache"
	"github.com/matzehuels/dockyard/pkg/observability"
	"github.com/matzehuels/dockyard/pkg/workspace"
)

// Options configures a Server.
type Options struct {
	Logger *log.Logger

	// Stats, when set, is served at /api/stats.
	Stats *observability.Counters

	// Cache holds rendered SVG. Defaults to a small in-memory cache.
	Cache cache.Cache

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration
}

const svgCacheSize = 32

// Server serves one workspace.
type Server struct {
	mu     sync.Mutex
	ws     *workspace.Workspace
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New builds the router for ws.
func New(ws *workspace.Workspace, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache(svgCacheSize)
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{ws: ws, opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/layout.dot", s.handleDOT)
		r.Get("/layout.svg", s.handleSVG)
		r.Get("/panels", s.handlePanels)
		r.Get("/stats", s.handleStats)
		r.Put("/viewport", s.handleViewport)
		r.Put("/lock", s.handleLock)
		r.Post("/dragover", s.handleDragOver)
		r.Post("/dragleave", s.handleDragLeave)
		r.Post("/drop", s.handleDrop)
		r.Post("/nodes/{key}/move", s.handleMove)
		r.Delete("/nodes/{key}", s.handleRemove)
		r.Post("/splits/{key}/resize", s.handleResize)
	})
	return r
}

// observe reports every request to the server hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("Request", "method", r.Method, "route", route, "status", status,
			"duration", elapsed.Round(time.Microsecond), "request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("Serving workspace", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
