package executor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ezyqa/game-tester/pkg/artifacts"
	"github.com/ezyqa/game-tester/pkg/core"
)

func newTargetServer(t *testing.T, delay time.Duration) (*httptest.Server, *int64, *int64) {
	t.Helper()
	var inFlight, maxInFlight int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inFlight, 1)
		defer atomic.AddInt64(&inFlight, -1)
		for {
			prev := atomic.LoadInt64(&maxInFlight)
			if n <= prev || atomic.CompareAndSwapInt64(&maxInFlight, prev, n) {
				break
			}
		}
		time.Sleep(delay)
		w.Write([]byte("<html>ok</html>"))
	}))
	return server, &inFlight, &maxInFlight
}

func makeTests(n int) []core.TestCase {
	tests := make([]core.TestCase, n)
	for i := range tests {
		tests[i] = core.TestCase{ID: fmt.Sprintf("cand_%d", i+1)}
	}
	return tests
}

func TestExecuteTestsPreservesOrder(t *testing.T) {
	server, _, _ := newTargetServer(t, 0)
	defer server.Close()

	o := NewOrchestrator(artifacts.NewCapturer(t.TempDir()), server.URL, 3)
	results := o.ExecuteTests(context.Background(), "run_abc", makeTests(7), 3)

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	for i, r := range results {
		want := fmt.Sprintf("cand_%d", i+1)
		if r.TestID != want {
			t.Errorf("result %d: expected %s, got %s", i, want, r.TestID)
		}
		if r.Status != core.StatusCompleted {
			t.Errorf("result %d: expected completed, got %s: %s", i, r.Status, r.Artifacts.Error)
		}
		if r.Verdict != core.VerdictPending {
			t.Errorf("result %d: verdict must stay pending, got %s", i, r.Verdict)
		}
	}
}

func TestExecuteTestsBoundsParallelism(t *testing.T) {
	server, _, maxInFlight := newTargetServer(t, 50*time.Millisecond)
	defer server.Close()

	o := NewOrchestrator(artifacts.NewCapturer(t.TempDir()), server.URL, 2)
	o.ExecuteTests(context.Background(), "run_abc", makeTests(8), 2)

	if got := atomic.LoadInt64(maxInFlight); got > 2 {
		t.Errorf("expected at most 2 concurrent requests, observed %d", got)
	}
}

func TestExecuteTestsRecordsFetchFailures(t *testing.T) {
	server, _, _ := newTargetServer(t, 0)
	url := server.URL
	server.Close()

	o := NewOrchestrator(artifacts.NewCapturer(t.TempDir()), url, 3)
	results := o.ExecuteTests(context.Background(), "run_abc", makeTests(2), 0)

	for i, r := range results {
		if r.Status != core.StatusFailed {
			t.Errorf("result %d: expected failed, got %s", i, r.Status)
		}
		if r.Artifacts.Error == "" {
			t.Errorf("result %d: expected capture error to be recorded", i)
		}
	}
}

func TestExecuteTestsUsesTestTarget(t *testing.T) {
	var hits int64
	perTest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte("ok"))
	}))
	defer perTest.Close()

	o := NewOrchestrator(artifacts.NewCapturer(t.TempDir()), "http://127.0.0.1:0", 1)
	tests := []core.TestCase{{ID: "cand_1", TargetURL: perTest.URL}}
	results := o.ExecuteTests(context.Background(), "run_abc", tests, 1)

	if atomic.LoadInt64(&hits) != 1 {
		t.Errorf("expected the test's own target to be fetched, hits=%d", hits)
	}
	if results[0].Status != core.StatusCompleted {
		t.Errorf("expected completed, got %s", results[0].Status)
	}
}
