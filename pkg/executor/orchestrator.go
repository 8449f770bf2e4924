// Package executor runs ranked test cases against the target site with
// bounded parallelism, capturing artifacts for each execution.
package executor

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ezyqa/game-tester/pkg/artifacts"
	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
)

// DefaultParallelism is the executor count used when the request does not
// specify one.
const DefaultParallelism = 3

// Orchestrator coordinates test execution across parallel executors.
type Orchestrator struct {
	capturer    *artifacts.Capturer
	targetURL   string // fallback when a test carries no target
	parallelism int
}

// NewOrchestrator creates an orchestrator. defaultTargetURL is used for
// tests that carry no target of their own; parallelism is the default
// concurrency bound.
func NewOrchestrator(capturer *artifacts.Capturer, defaultTargetURL string, parallelism int) *Orchestrator {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Orchestrator{
		capturer:    capturer,
		targetURL:   defaultTargetURL,
		parallelism: parallelism,
	}
}

// ExecuteTests runs the tests with at most parallelism concurrent executors
// (the orchestrator default when non-positive). Results are returned in the
// same order as the input tests. Individual test failures are recorded in
// the result rather than returned; only a cancelled context can lose tests,
// and those are marked failed.
func (o *Orchestrator) ExecuteTests(ctx context.Context, runID string, tests []core.TestCase, parallelism int) []core.TestResult {
	if parallelism <= 0 {
		parallelism = o.parallelism
	}

	logger.Info("executing %d tests with parallelism=%d (run_id=%s)", len(tests), parallelism, runID)

	sem := semaphore.NewWeighted(int64(parallelism))
	results := make([]core.TestResult, len(tests))

	var wg sync.WaitGroup
	for i := range tests {
		wg.Add(1)
		go func(i int, tc core.TestCase) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = core.TestResult{
					TestID:    tc.ID,
					Name:      tc.Name(),
					Status:    core.StatusFailed,
					Verdict:   core.VerdictPending,
					Artifacts: core.Artifacts{Error: err.Error()},
				}
				return
			}
			defer sem.Release(1)

			results[i] = o.runOne(ctx, runID, tc)
		}(i, tests[i])
	}
	wg.Wait()

	logger.Info("completed execution of %d tests", len(results))
	return results
}

// runOne executes a single test case by capturing artifacts for its target.
// The verdict is left pending; the analyzer decides it later.
func (o *Orchestrator) runOne(ctx context.Context, runID string, tc core.TestCase) core.TestResult {
	url := tc.TargetURL
	if url == "" {
		url = o.targetURL
	}

	logger.Debug("executor starting test %s (%s)", tc.ID, url)

	page, err := o.capturer.CapturePage(ctx, url, runID, tc.Name())
	if err != nil {
		// Artifact storage itself failed; the capture error field is
		// still authoritative for the test outcome below.
		logger.Error("artifact write failed for test %s: %v", tc.ID, err)
		page.Error = err.Error()
	}

	status := core.StatusCompleted
	if page.Error != "" {
		status = core.StatusFailed
	}

	result := core.TestResult{
		TestID:  tc.ID,
		Name:    tc.Name(),
		Status:  status,
		Verdict: core.VerdictPending,
		Artifacts: core.Artifacts{
			DOMSnapshot: page.DOMSnapshot,
			Logs:        page.Logs,
			NetworkLog:  page.NetworkLog,
			Error:       page.Error,
		},
	}

	logger.Debug("executor finished test %s with status=%s", tc.ID, result.Status)
	return result
}
