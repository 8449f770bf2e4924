// Package report defines the run report model and its on-disk store.
//
// Layout under the reports directory:
//   - <run_id>_raw.json: raw execution results, written right after a run
//   - <run_id>_report.json: the analyzed report served by GET /report/{run_id}
//   - artifacts/<run_id>/: per-test artifacts (dom snapshots, logs)
package report

import (
	"time"

	"github.com/ezyqa/game-tester/pkg/core"
)

// Summary aggregates verdicts across a run.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Flaky  int `json:"flaky"`
}

// Reproducibility records how stable a test outcome was across repeats.
type Reproducibility struct {
	Repeats int  `json:"repeats"`
	Stable  bool `json:"stable"`
}

// TestReport is the analyzed record for a single executed test.
type TestReport struct {
	TestID          string          `json:"test_id"`
	Name            string          `json:"name"`
	Verdict         core.Verdict    `json:"verdict"`
	Artifacts       core.Artifacts  `json:"artifacts"`
	TargetURL       string          `json:"target_url,omitempty"`
	Reproducibility Reproducibility `json:"reproducibility"`
	Notes           string          `json:"notes,omitempty"`
}

// Report is the stored result of analyzing a run.
type Report struct {
	RunID     string       `json:"run_id"`
	Timestamp time.Time    `json:"timestamp"`
	Summary   Summary      `json:"summary"`
	Tests     []TestReport `json:"tests"`
	Notes     string       `json:"notes,omitempty"`
}

// ComputeSummary recalculates the summary from the test verdicts.
func (r *Report) ComputeSummary() {
	r.Summary = Summary{Total: len(r.Tests)}
	for _, t := range r.Tests {
		switch t.Verdict {
		case core.VerdictPassed:
			r.Summary.Passed++
		case core.VerdictFailed:
			r.Summary.Failed++
		case core.VerdictFlaky:
			r.Summary.Flaky++
		}
	}
}
