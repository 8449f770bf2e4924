// Package server exposes the game tester workflow over HTTP.
//
// Routes:
//
//	GET  /                  banner listing the endpoints
//	POST /plan              generate candidate test cases
//	POST /rank              select the most promising candidates
//	POST /execute           run tests in parallel, assign a run ID
//	POST /analyze           derive verdicts and store the run report
//	GET  /report/{run_id}   fetch a stored report (404 when absent)
//
// Errors are returned as {"detail": "..."} bodies to stay compatible with
// the original backend's clients.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ezyqa/game-tester/pkg/analyzer"
	"github.com/ezyqa/game-tester/pkg/artifacts"
	"github.com/ezyqa/game-tester/pkg/config"
	"github.com/ezyqa/game-tester/pkg/executor"
	"github.com/ezyqa/game-tester/pkg/logger"
	"github.com/ezyqa/game-tester/pkg/planner"
	"github.com/ezyqa/game-tester/pkg/report"
)

// Server wires the workflow stages behind the HTTP API.
type Server struct {
	cfg      *config.Config
	planner  *planner.Planner
	orch     *executor.Orchestrator
	analyzer *analyzer.Analyzer
	store    *report.Store
}

// New creates a server from the configuration.
func New(cfg *config.Config) *Server {
	store := report.NewStore(cfg.ReportsDir)
	capturer := artifacts.NewCapturer(cfg.ReportsDir)

	return &Server{
		cfg:      cfg,
		planner:  planner.New(),
		orch:     executor.NewOrchestrator(capturer, cfg.TargetURL, cfg.Parallelism),
		analyzer: analyzer.New(store),
		store:    store,
	}
}

// Handler returns the HTTP handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /plan", s.handlePlan)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /execute", s.handleExecute)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /report/{run_id}", s.handleReport)

	return corsMiddleware(loggingMiddleware(mux))
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("game tester API listening on %s", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}
}
