// Package server exposes the simulation engine over HTTP, mirroring the
// contract of the upstream advisor API: a /simulate endpoint plus CRUD
// for named assumption sets.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"advisor-mc-lab/internal/observability"
	"advisor-mc-lab/internal/storage"
)

// Server wires handlers, storage and metrics.
type Server struct {
	logger  *zap.Logger
	store   storage.AssumptionSetStore
	metrics *observability.Metrics
}

// New creates a Server.
func New(logger *zap.Logger, store storage.AssumptionSetStore, metrics *observability.Metrics) *Server {
	return &Server{logger: logger, store: store, metrics: metrics}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/simulate", s.handleSimulate)
	r.Get("/assumptions", s.handleListAssumptions)
	r.Put("/assumptions/{name}", s.handlePutAssumptions)
	r.Delete("/assumptions/{name}", s.handleDeleteAssumptions)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
