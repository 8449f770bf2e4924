package artifacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCapturePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>puzzle</body></html>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	c := NewCapturer(dir)

	got, err := c.CapturePage(context.Background(), server.URL, "run_abc", "test_cand_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Error != "" {
		t.Fatalf("unexpected capture error: %s", got.Error)
	}

	dom, err := os.ReadFile(got.DOMSnapshot)
	if err != nil {
		t.Fatalf("dom snapshot missing: %v", err)
	}
	if !strings.Contains(string(dom), "puzzle") {
		t.Error("dom snapshot does not contain the page body")
	}

	logs, err := os.ReadFile(got.Logs)
	if err != nil {
		t.Fatalf("log artifact missing: %v", err)
	}
	if strings.Contains(strings.ToUpper(string(logs)), "ERROR") {
		t.Errorf("successful capture log must not contain ERROR: %s", logs)
	}
	if !strings.Contains(string(logs), "status 200") {
		t.Errorf("expected status line in logs, got %s", logs)
	}

	if _, err := os.Stat(got.NetworkLog); err != nil {
		t.Errorf("network log missing: %v", err)
	}

	wantDir := filepath.Join(dir, "artifacts", "run_abc")
	if filepath.Dir(got.DOMSnapshot) != wantDir {
		t.Errorf("artifacts written to %s, expected %s", filepath.Dir(got.DOMSnapshot), wantDir)
	}
}

func TestCapturePageFetchError(t *testing.T) {
	dir := t.TempDir()
	c := NewCapturer(dir)

	// Closed server: the fetch fails but the capture still records evidence.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	got, err := c.CapturePage(context.Background(), url, "run_abc", "test_cand_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Error == "" {
		t.Fatal("expected capture error for unreachable target")
	}
	if got.DOMSnapshot != "" {
		t.Error("no dom snapshot should be recorded on a failed fetch")
	}

	logs, err := os.ReadFile(got.Logs)
	if err != nil {
		t.Fatalf("log artifact missing: %v", err)
	}
	if !strings.Contains(string(logs), "ERROR") {
		t.Errorf("expected ERROR line in logs, got %s", logs)
	}
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"test_cand_1", "test_cand_1"},
		{"login / happy-path", "login___happy-path"},
		{"weird*name?", "weird_name_"},
	}

	for _, tc := range cases {
		if got := safeFilename(tc.in); got != tc.want {
			t.Errorf("safeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
