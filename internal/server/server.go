// Package server exposes the resolver over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/resolve              resolve a declaration batch, store the snapshot
//	POST   /v1/graph?format=dot     dependency graph (dot, mermaid, svg)
//	POST   /v1/clamp                reposition one rectangle inside a canvas
//	GET    /v1/snapshots            list stored snapshots
//	GET    /v1/snapshots/{id}
//	DELETE /v1/snapshots/{id}
//
// Errors are JSON objects of the form {"error": {"code": ..., "message": ...}}
// where code is one of the pkg/errors codes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/pipeline"
	"github.com/matzehuels/anchorlayout/pkg/store"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router

	defaults layout.Options
}

// New builds the API router. A nil store keeps snapshots in memory.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: st, logger: logger, defaults: layout.DefaultOptions()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", s.handleResolve)
		r.Post("/graph", s.handleGraph)
		r.Post("/clamp", s.handleClamp)
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Delete("/snapshots/{id}", s.handleDeleteSnapshot)
	})
	s.router = r
	return s
}

// SetDefaults sets the options requests start from. Request fields and the
// document canvas override them.
func (s *Server) SetDefaults(opts layout.Options) {
	s.defaults = opts
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
