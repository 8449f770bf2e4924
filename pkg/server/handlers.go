package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
	"github.com/ezyqa/game-tester/pkg/ranker"
)

type planRequest struct {
	TargetURL   string   `json:"target_url"`
	Seeds       []string `json:"seeds,omitempty"`
	NCandidates int      `json:"n_candidates"`
}

type planResponse struct {
	Candidates []core.TestCase `json:"candidates"`
}

type rankRequest struct {
	Candidates []core.TestCase `json:"candidates"`
	TopK       int             `json:"top_k"`
}

type rankResponse struct {
	TopCandidates []core.TestCase `json:"top_candidates"`
}

type executeRequest struct {
	Tests       []core.TestCase `json:"tests"`
	Parallelism int             `json:"parallelism"`
}

type executeResponse struct {
	RunID   string            `json:"run_id"`
	Results []core.TestResult `json:"results"`
}

type analyzeRequest struct {
	RunID   string            `json:"run_id"`
	Results []core.TestResult `json:"results"`
}

type analyzeResponse struct {
	ReportPath string      `json:"report_path"`
	Report     interface{} `json:"report"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Game Tester API is running. Endpoints: /plan, /rank, /execute, /analyze, /report/{run_id}",
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetURL) == "" {
		writeError(w, http.StatusBadRequest, "target_url is required")
		return
	}

	n := req.NCandidates
	if n <= 0 {
		n = s.cfg.Candidates
	}

	logger.Info("plan request received for %s", req.TargetURL)
	candidates := s.planner.Generate(req.TargetURL, req.Seeds, n)

	writeJSON(w, http.StatusOK, planResponse{Candidates: candidates})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	logger.Info("ranking %d candidates (top %d)", len(req.Candidates), topK)
	top := ranker.Rank(req.Candidates, topK)

	writeJSON(w, http.StatusOK, rankResponse{TopCandidates: top})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tests) == 0 {
		writeError(w, http.StatusBadRequest, "tests must not be empty")
		return
	}

	runID := newRunID()
	logger.Info("executing %d tests (parallelism=%d) run_id=%s", len(req.Tests), req.Parallelism, runID)

	results := s.orch.ExecuteTests(r.Context(), runID, req.Tests, req.Parallelism)

	if _, err := s.store.WriteRaw(runID, results); err != nil {
		logger.Error("failed to persist raw results for %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, executeResponse{RunID: runID, Results: results})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RunID == "" {
		writeError(w, http.StatusBadRequest, "run_id is required")
		return
	}

	path, rep, err := s.analyzer.Analyze(req.RunID, req.Results)
	if err != nil {
		logger.Error("analyze failed for %s: %v", req.RunID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{ReportPath: path, Report: rep})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	rep, err := s.store.Read(runID)
	if err != nil {
		if errors.Is(err, core.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		logger.Error("failed to read report %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// newRunID mints an opaque run identifier in the run_<hex> form the
// front-end displays.
func newRunID() string {
	return "run_" + uuid.NewString()[:8]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
