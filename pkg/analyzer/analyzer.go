// Package analyzer turns raw execution results into verdicts and a stored
// run report.
//
// A pending verdict is decided from the captured log artifact: a log
// containing "ERROR" (case-insensitive) fails the test, a missing log is
// treated as a failure, anything else passes. Already-decided verdicts are
// kept as-is.
package analyzer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/logger"
	"github.com/ezyqa/game-tester/pkg/report"
)

// Analyzer validates execution results and writes run reports.
type Analyzer struct {
	store *report.Store
}

// New creates an analyzer writing reports through the given store.
func New(store *report.Store) *Analyzer {
	return &Analyzer{store: store}
}

// Analyze determines a verdict for every result, aggregates a summary and
// writes the report for the run. It returns the report path and the report.
func (a *Analyzer) Analyze(runID string, results []core.TestResult) (string, *report.Report, error) {
	logger.Info("analyzing %d results for run %s", len(results), runID)

	tests := make([]report.TestReport, 0, len(results))
	for _, r := range results {
		verdict := r.Verdict
		if verdict == "" || verdict == core.VerdictPending {
			verdict = verdictFromLogs(r.Artifacts.Logs)
		}

		tests = append(tests, report.TestReport{
			TestID:    r.TestID,
			Name:      r.Name,
			Verdict:   verdict,
			Artifacts: r.Artifacts,
			Reproducibility: report.Reproducibility{
				Repeats: 1,
				Stable:  verdict == core.VerdictPassed,
			},
			Notes: notesFor(verdict),
		})
	}

	rep := &report.Report{
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Tests:     tests,
		Notes:     "Generated by the game tester analyzer",
	}
	rep.ComputeSummary()

	path, err := a.store.Write(rep)
	if err != nil {
		return "", nil, fmt.Errorf("failed to store report for run %s: %w", runID, err)
	}

	logger.Info("analyzer wrote report to %s | total=%d, passed=%d, failed=%d",
		path, rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed)
	return path, rep, nil
}

// verdictFromLogs decides a pending verdict from the captured log artifact.
func verdictFromLogs(logsPath string) core.Verdict {
	if logsPath == "" {
		return core.VerdictFailed // no evidence, treat as failure
	}

	content, err := os.ReadFile(logsPath) //#nosec G304 -- path produced by the capturer
	if err != nil {
		return core.VerdictFailed
	}

	if strings.Contains(strings.ToUpper(string(content)), "ERROR") {
		return core.VerdictFailed
	}
	return core.VerdictPassed
}

func notesFor(verdict core.Verdict) string {
	switch verdict {
	case core.VerdictPassed:
		return "Execution completed successfully."
	case core.VerdictFailed:
		return "Execution failed: see artifacts."
	default:
		return "Execution completed, verdict pending."
	}
}
