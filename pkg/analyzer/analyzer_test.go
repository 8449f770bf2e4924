package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ezyqa/game-tester/pkg/core"
	"github.com/ezyqa/game-tester/pkg/report"
)

func writeLogs(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeVerdicts(t *testing.T) {
	dir := t.TempDir()
	cleanLogs := writeLogs(t, dir, "clean.txt", "GET http://example.com\nstatus 200\n")
	errorLogs := writeLogs(t, dir, "bad.txt", "GET http://example.com\nERROR: connection refused\n")
	lowerLogs := writeLogs(t, dir, "lower.txt", "an error occurred during play\n")

	results := []core.TestResult{
		{TestID: "a", Verdict: core.VerdictPending, Artifacts: core.Artifacts{Logs: cleanLogs}},
		{TestID: "b", Verdict: core.VerdictPending, Artifacts: core.Artifacts{Logs: errorLogs}},
		{TestID: "c", Verdict: core.VerdictPending, Artifacts: core.Artifacts{Logs: lowerLogs}},
		{TestID: "d", Verdict: core.VerdictPending}, // no logs captured
		{TestID: "e", Verdict: core.VerdictFlaky},   // already decided, kept as-is
	}

	a := New(report.NewStore(t.TempDir()))
	_, rep, err := a.Analyze("run_abc", results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]core.Verdict{
		"a": core.VerdictPassed,
		"b": core.VerdictFailed,
		"c": core.VerdictFailed, // case-insensitive match
		"d": core.VerdictFailed, // missing logs are a failure
		"e": core.VerdictFlaky,
	}
	for _, tr := range rep.Tests {
		if tr.Verdict != want[tr.TestID] {
			t.Errorf("test %s: expected %s, got %s", tr.TestID, want[tr.TestID], tr.Verdict)
		}
	}

	if rep.Summary.Total != 5 || rep.Summary.Passed != 1 || rep.Summary.Failed != 3 || rep.Summary.Flaky != 1 {
		t.Errorf("unexpected summary: %+v", rep.Summary)
	}
}

func TestAnalyzeWritesReadableReport(t *testing.T) {
	dir := t.TempDir()
	store := report.NewStore(dir)
	a := New(store)

	path, rep, err := a.Analyze("run_xyz", []core.TestResult{
		{TestID: "a", Verdict: core.VerdictPassed},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "run_xyz_report.json" {
		t.Errorf("unexpected report path %s", path)
	}
	if rep.RunID != "run_xyz" {
		t.Errorf("expected run_xyz, got %s", rep.RunID)
	}

	stored, err := store.Read("run_xyz")
	if err != nil {
		t.Fatalf("stored report unreadable: %v", err)
	}
	if stored.Summary.Passed != 1 {
		t.Errorf("expected 1 passed in stored report, got %d", stored.Summary.Passed)
	}

	stable := rep.Tests[0].Reproducibility
	if stable.Repeats != 1 || !stable.Stable {
		t.Errorf("expected stable single-repeat record, got %+v", stable)
	}
}
