// Package api provides the HTTP surface for the scheduler: submit a graph,
// get back the best schedule found within budget, and look up past runs.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhenglier/eo/internal/app/eval"
	"github.com/zhenglier/eo/internal/app/ga"
	"github.com/zhenglier/eo/internal/domain"
	"github.com/zhenglier/eo/internal/infra/config"
	"github.com/zhenglier/eo/internal/infra/observability"
	"github.com/zhenglier/eo/internal/infra/parse"
	"github.com/zhenglier/eo/internal/infra/store"
)

// Server is the scheduler's HTTP API.
type Server struct {
	db             *store.DB
	cfg            config.Config
	tracer         *observability.Tracer
	metricsEnabled bool
}

// NewServer creates a new API server backed by db, using cfg for GA
// defaults.
func NewServer(db *store.DB, cfg config.Config) *Server {
	return &Server{
		db:     db,
		cfg:    cfg,
		tracer: observability.NewTracer(observability.DefaultTracerConfig()),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/schedules", func(r chi.Router) {
		r.Post("/", s.handleCreateSchedule)
		r.Get("/{id}", s.handleGetSchedule)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// scheduleRequest is the POST /v1/schedules body: the graph in the parser's
// line-oriented format, plus optional overrides.
type scheduleRequest struct {
	Input string `json:"input"`
	Seed  any    `json:"seed,omitempty"`
}

type scheduleResponse struct {
	ID          string          `json:"id"`
	GraphSize   int             `json:"graph_size"`
	CardCount   int             `json:"card_count"`
	Makespan    int64           `json:"makespan"`
	Generations int             `json:"generations"`
	WallTimeMS  int64           `json:"wall_time_ms"`
	Schedule    domain.Schedule `json:"schedule"`
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	span := s.tracer.StartSpan(r.Context(), "api.create_schedule", nil)
	defer func() { s.tracer.EndSpan(span, nil) }()

	parsed, err := parse.Parse(strings.NewReader(req.Input))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := config.ResolveSeed(req.Seed)
	start := time.Now()
	runCtx := observability.WithSpanID(observability.WithTraceID(r.Context(), span.TraceID), span.SpanID)
	result, err := ga.Run(runCtx, parsed.Graph, parsed.CardCount, s.cfg.GA, seed, s.tracer)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	wallTime := time.Since(start)

	if _, err := eval.ValidateAndMakespan(result.Schedule, parsed.Graph, parsed.CardCount); err != nil && len(result.Schedule) > 0 {
		writeError(w, http.StatusInternalServerError, "internal error: solver produced an invalid schedule: "+err.Error())
		return
	}

	id := uuid.NewString()
	run := store.Run{
		ID:          id,
		GraphSize:   parsed.Graph.NumOps(),
		CardCount:   parsed.CardCount,
		Makespan:    result.Makespan,
		WallTimeMS:  wallTime.Milliseconds(),
		Generations: result.Generations,
		Seed:        seed,
		Schedule:    result.Schedule,
	}
	if s.db != nil {
		if err := s.db.InsertRun(run); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist run: "+err.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, scheduleResponse{
		ID:          id,
		GraphSize:   run.GraphSize,
		CardCount:   run.CardCount,
		Makespan:    run.Makespan,
		Generations: run.Generations,
		WallTimeMS:  run.WallTimeMS,
		Schedule:    run.Schedule,
	})
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no run store configured")
		return
	}

	run, err := s.db.GetRun(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{
		ID:          run.ID,
		GraphSize:   run.GraphSize,
		CardCount:   run.CardCount,
		Makespan:    run.Makespan,
		Generations: run.Generations,
		WallTimeMS:  run.WallTimeMS,
		Schedule:    run.Schedule,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
