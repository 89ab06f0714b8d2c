// Package httpapi exposes the run engine over HTTP so dashboards and cron
// jobs can trigger measurements without shelling out to the CLI.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/shariq818/latencymon/internal/domain"
	"github.com/shariq818/latencymon/internal/repo"
	"github.com/shariq818/latencymon/internal/runner"
)

// RunExecutor performs one full measurement run. The API expects an executor
// that admits a single run at a time and reports runner.ErrBusy otherwise,
// which *runner.Serial provides.
type RunExecutor interface {
	Run(ctx context.Context, opts runner.Options) (*domain.Run, error)
}

type Server struct {
	Logger   *zap.Logger
	Runner   RunExecutor
	Store    repo.RunStore
	Defaults runner.Options
}

func NewServer(l *zap.Logger, run RunExecutor, store repo.RunStore, defaults runner.Options) *Server {
	return &Server{Logger: l, Runner: run, Store: store, Defaults: defaults}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/runs", s.handleListRuns)
	r.Get("/api/runs/{id}", s.handleGetRun)
	r.Post("/api/runs", s.handleStartRun)

	return r
}

type runPayload struct {
	Targets        []string `json:"targets"`
	Samples        int      `json:"samples"`
	TimeoutSeconds float64  `json:"timeout_seconds"`
	Concurrency    int      `json:"concurrency"`
	SpoofUserAgent *bool    `json:"spoof_user_agent"`
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var p runPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	if len(p.Targets) == 0 {
		http.Error(w, "targets required", http.StatusBadRequest)
		return
	}

	opts := s.Defaults
	opts.Targets = p.Targets
	if p.Samples > 0 {
		opts.Samples = p.Samples
	}
	if p.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(p.TimeoutSeconds * float64(time.Second))
	}
	if p.Concurrency > 0 {
		opts.Concurrency = p.Concurrency
	}
	if p.SpoofUserAgent != nil {
		opts.SpoofUserAgent = *p.SpoofUserAgent
	}

	run, err := s.Runner.Run(r.Context(), opts)
	switch {
	case errors.Is(err, runner.ErrBusy):
		http.Error(w, "a run is already in progress", http.StatusConflict)
		return
	case errors.Is(err, runner.ErrNoTargets):
		http.Error(w, "targets required", http.StatusBadRequest)
		return
	case err != nil:
		s.Logger.Error("run_failed", zap.Error(err))
		http.Error(w, "run failed", http.StatusInternalServerError)
		return
	}

	// History is best effort; the measurement already succeeded.
	if err := s.Store.Save(r.Context(), run); err != nil {
		s.Logger.Error("run_save_failed", zap.String("run_id", run.ID), zap.Error(err))
	}

	s.Logger.Info("run_served",
		zap.String("run_id", run.ID),
		zap.Int("targets", len(run.Summaries)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "unknown run", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "get error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}
