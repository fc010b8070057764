package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"advisor-mc-lab/internal/cma"
	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/engine"
	"advisor-mc-lab/internal/mcparams"
	"advisor-mc-lab/internal/portfolio"
	"advisor-mc-lab/internal/storage"
)

// SimulateRequest is the /simulate request body. Absent run parameters
// take the engine defaults; absent assumptions take the baseline, with
// the optional named set and then the override applied on top.
type SimulateRequest struct {
	Portfolio        map[string]any `json:"portfolio"`
	AssumptionSet    string         `json:"assumption_set,omitempty"`
	CMAOverride      *cma.Override  `json:"cma_override,omitempty"`
	NPaths           int            `json:"n_paths,omitempty"`
	Seed             *uint64        `json:"seed,omitempty"`
	StorePercentiles *bool          `json:"store_percentiles,omitempty"`
	SubsampleCap     int            `json:"subsample_cap,omitempty"`
	ScheduledMode    string         `json:"scheduled_mode,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "handleSimulate"))

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Portfolio == nil {
		writeError(w, http.StatusBadRequest, errors.New("portfolio is required"))
		return
	}

	p, err := portfolio.FromMap(req.Portfolio)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	assumptions := cma.Baseline()
	if req.AssumptionSet != "" {
		set, err := s.store.GetByName(r.Context(), req.AssumptionSet)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, fmt.Errorf("assumption set %q not found", req.AssumptionSet))
				return
			}
			logger.Error("load assumption set", zap.Error(err))
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			return
		}
		assumptions = set.Assumptions
	}
	assumptions = req.CMAOverride.Apply(assumptions)

	nPaths := req.NPaths
	if nPaths <= 0 {
		nPaths = engine.DefaultPaths
	}

	cfg := engine.Config{
		NPaths:           nPaths,
		Seed:             engine.DefaultSeed,
		StorePercentiles: true,
		SubsampleCap:     req.SubsampleCap,
		ScheduledMode:    req.ScheduledMode,
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.StorePercentiles != nil {
		cfg.StorePercentiles = *req.StorePercentiles
	}

	s.metrics.SimulationsInFlight.Inc()
	start := time.Now()
	res, err := engine.Simulate(r.Context(), p, assumptions, cfg)
	s.metrics.SimulationsInFlight.Dec()

	if err != nil {
		s.metrics.RecordSimulation("error", 0, time.Since(start).Seconds())
		switch {
		case errors.Is(err, engine.ErrConfig),
			errors.Is(err, cma.ErrUnknownClass),
			errors.Is(err, cma.ErrInvalidCorrelation),
			errors.Is(err, mcparams.ErrNotPositiveSemiDefinite):
			writeError(w, http.StatusUnprocessableEntity, err)
		default:
			logger.Error("simulate", zap.Error(err))
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	s.metrics.RecordSimulation("ok", cfg.NPaths, time.Since(start).Seconds())
	logger.Info("simulation complete",
		zap.Int("n_paths", cfg.NPaths),
		zap.Duration("duration", time.Since(start)))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePutAssumptions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var assumptions domain.Assumptions
	if err := json.NewDecoder(r.Body).Decode(&assumptions); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode assumptions: %w", err))
		return
	}

	classes := make([]domain.AssetClass, 0, len(assumptions.Mu))
	for c := range assumptions.Mu {
		classes = append(classes, c)
	}
	if err := cma.Validate(assumptions, classes); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	set := &domain.AssumptionSet{
		Name:        name,
		Assumptions: assumptions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Insert(r.Context(), set); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateKey):
			writeError(w, http.StatusConflict, fmt.Errorf("assumption set %q already exists", name))
		case errors.Is(err, storage.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err)
		default:
			s.metrics.StoreErrors.WithLabelValues("insert").Inc()
			s.logger.Error("insert assumption set", zap.Error(err))
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	s.metrics.AssumptionSetsStored.Inc()
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleListAssumptions(w http.ResponseWriter, r *http.Request) {
	sets, err := s.store.List(r.Context())
	if err != nil {
		s.metrics.StoreErrors.WithLabelValues("list").Inc()
		s.logger.Error("list assumption sets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	if sets == nil {
		sets = []*domain.AssumptionSet{}
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleDeleteAssumptions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Errorf("assumption set %q not found", name))
			return
		}
		s.metrics.StoreErrors.WithLabelValues("delete").Inc()
		s.logger.Error("delete assumption set", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
