// Package client implements the workflow client that drives the game tester
// backend through its plan, rank, execute, analyze and report stages.
//
// Each stage is invoked explicitly and validates a precondition against the
// session state before contacting the backend; a violated precondition
// returns a core sentinel error without issuing a request. On success a
// stage overwrites its output state wholesale, and every stage returns the
// raw response body so callers can render it verbatim.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ezyqa/game-tester/pkg/core"
)

// DefaultTargetURL is used when Plan is invoked without a target.
const DefaultTargetURL = "https://play.ezygamers.com"

// Stage parameters fixed by the workflow contract.
const (
	NumCandidates = 20 // candidates requested from the planner
	TopK          = 10 // candidates kept by the ranker
	Parallelism   = 3  // concurrent executors
)

// Session holds the state of one workflow run and the connection to the
// backend. State produced by one stage feeds the next; a failed stage
// leaves all prior state untouched.
//
// A Session is not safe for concurrent use. Re-invoking a stage while a
// previous request is still in flight lets the slower response win,
// matching the behavior of the original single-page client.
type Session struct {
	serverURL string
	client    *http.Client

	candidates    []core.TestCase
	topCandidates []core.TestCase
	results       []core.TestResult
	runID         string
}

// NewSession creates a workflow session against the given backend URL.
func NewSession(serverURL string) *Session {
	return &Session{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Minute, // execution runs tests, give it room
		},
	}
}

// Candidates returns the candidate list produced by the last Plan call.
func (s *Session) Candidates() []core.TestCase { return s.candidates }

// TopCandidates returns the selection produced by the last Rank call.
func (s *Session) TopCandidates() []core.TestCase { return s.topCandidates }

// Results returns the execution results of the last Execute call.
func (s *Session) Results() []core.TestResult { return s.results }

// RunID returns the run identifier assigned by the last Execute call.
func (s *Session) RunID() string { return s.runID }

type planRequest struct {
	TargetURL   string `json:"target_url"`
	NCandidates int    `json:"n_candidates"`
}

type planResponse struct {
	Candidates []core.TestCase `json:"candidates"`
}

// Plan asks the backend to generate candidate test cases for the target URL
// and replaces the session's candidate list with the response. An empty
// targetURL falls back to DefaultTargetURL. Plan has no precondition.
func (s *Session) Plan(ctx context.Context, targetURL string) (json.RawMessage, error) {
	if targetURL == "" {
		targetURL = DefaultTargetURL
	}

	raw, err := s.post(ctx, "/plan", planRequest{
		TargetURL:   targetURL,
		NCandidates: NumCandidates,
	})
	if err != nil {
		return nil, err
	}

	var resp planResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse plan response: %w", err)
	}

	s.candidates = resp.Candidates
	return raw, nil
}

type rankRequest struct {
	Candidates []core.TestCase `json:"candidates"`
	TopK       int             `json:"top_k"`
}

type rankResponse struct {
	TopCandidates []core.TestCase `json:"top_candidates"`
}

// Rank submits the current candidates for ranking and replaces the session's
// top candidates with the response. Requires a prior successful Plan.
func (s *Session) Rank(ctx context.Context) (json.RawMessage, error) {
	if len(s.candidates) == 0 {
		return nil, core.ErrNoCandidates
	}

	raw, err := s.post(ctx, "/rank", rankRequest{
		Candidates: s.candidates,
		TopK:       TopK,
	})
	if err != nil {
		return nil, err
	}

	var resp rankResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse rank response: %w", err)
	}

	s.topCandidates = resp.TopCandidates
	return raw, nil
}

type executeRequest struct {
	Tests       []core.TestCase `json:"tests"`
	Parallelism int             `json:"parallelism"`
}

type executeResponse struct {
	RunID   string            `json:"run_id"`
	Results []core.TestResult `json:"results"`
}

// Execute submits the top candidates for execution and replaces both the
// session's results and run ID from the response. The two are updated
// together or not at all. Requires a prior successful Rank.
func (s *Session) Execute(ctx context.Context) (json.RawMessage, error) {
	if len(s.topCandidates) == 0 {
		return nil, core.ErrNoTopCandidates
	}

	raw, err := s.post(ctx, "/execute", executeRequest{
		Tests:       s.topCandidates,
		Parallelism: Parallelism,
	})
	if err != nil {
		return nil, err
	}

	var resp executeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse execute response: %w", err)
	}

	s.results = resp.Results
	s.runID = resp.RunID
	return raw, nil
}

type analyzeRequest struct {
	RunID   string            `json:"run_id"`
	Results []core.TestResult `json:"results"`
}

// Analyze submits the current run's results for analysis and returns the
// analysis response for display. Analyze stores no new session state.
// Requires a prior successful Execute.
func (s *Session) Analyze(ctx context.Context) (json.RawMessage, error) {
	if len(s.results) == 0 || s.runID == "" {
		return nil, core.ErrNoResults
	}

	return s.post(ctx, "/analyze", analyzeRequest{
		RunID:   s.runID,
		Results: s.results,
	})
}

// FetchReport retrieves the stored report for the current run. A non-2xx
// response means the report does not exist yet; the body is not parsed in
// that case. Requires a prior successful Execute.
func (s *Session) FetchReport(ctx context.Context) (json.RawMessage, error) {
	if s.runID == "" {
		return nil, core.ErrNoRun
	}

	url := s.serverURL + "/report/" + s.runID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, core.ErrReportNotFound
	}

	return io.ReadAll(resp.Body)
}

// post issues a JSON POST and returns the raw response body. Any non-2xx
// status fails the stage so malformed backend data never reaches the
// session state.
func (s *Session) post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serverURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return raw, nil
}
