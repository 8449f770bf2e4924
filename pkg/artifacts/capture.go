// Package artifacts captures execution evidence for a test run: a DOM
// snapshot of the target page, a request log and a network summary, stored
// under <reports>/artifacts/<run_id>/.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fetchTimeout bounds a single page fetch.
const fetchTimeout = 15 * time.Second

// Capture describes the evidence gathered for one test execution.
// Fetch failures are recorded in Error instead of failing the capture.
type Capture struct {
	DOMSnapshot string
	Logs        string
	NetworkLog  string
	Error       string
}

// networkEntry is the summary written to the network log artifact.
type networkEntry struct {
	URL         string `json:"url"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Bytes       int    `json:"bytes,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}

// Capturer captures page artifacts under a base reports directory.
type Capturer struct {
	baseDir string
	client  *http.Client
}

// NewCapturer creates a capturer rooted at the given reports directory.
func NewCapturer(reportsDir string) *Capturer {
	return &Capturer{
		baseDir: reportsDir,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// CapturePage fetches the target URL and writes the artifacts for the named
// test. The returned capture carries the paths of whatever was written; a
// failed fetch is recorded in the log and Error fields rather than returned,
// so one broken page never aborts a run.
func (c *Capturer) CapturePage(ctx context.Context, url, runID, testName string) (Capture, error) {
	dir := filepath.Join(c.baseDir, "artifacts", runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Capture{}, fmt.Errorf("failed to create artifacts dir: %w", err)
	}

	prefix := filepath.Join(dir, safeFilename(testName))

	var out Capture
	var logs []string
	entry := networkEntry{URL: url}

	logs = append(logs, fmt.Sprintf("%s GET %s", time.Now().UTC().Format(time.RFC3339), url))

	start := time.Now()
	body, status, contentType, err := c.fetch(ctx, url)
	entry.DurationMS = time.Since(start).Milliseconds()

	if err != nil {
		out.Error = err.Error()
		entry.Error = err.Error()
		logs = append(logs, "ERROR: "+err.Error())
	} else {
		entry.Status = status
		entry.ContentType = contentType
		entry.Bytes = len(body)
		logs = append(logs, fmt.Sprintf("status %d (%d bytes, %s)", status, len(body), contentType))

		domPath := prefix + "_dom.html"
		if werr := os.WriteFile(domPath, body, 0644); werr != nil {
			return out, fmt.Errorf("failed to write dom snapshot: %w", werr)
		}
		out.DOMSnapshot = domPath
	}

	logPath := prefix + "_logs.txt"
	if werr := os.WriteFile(logPath, []byte(strings.Join(logs, "\n")+"\n"), 0644); werr != nil {
		return out, fmt.Errorf("failed to write log artifact: %w", werr)
	}
	out.Logs = logPath

	netPath := prefix + "_network.json"
	data, _ := json.MarshalIndent(entry, "", "  ")
	if werr := os.WriteFile(netPath, data, 0644); werr != nil {
		return out, fmt.Errorf("failed to write network log: %w", werr)
	}
	out.NetworkLog = netPath

	return out, nil
}

func (c *Capturer) fetch(ctx context.Context, url string) (body []byte, status int, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, "", err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, "", err
	}

	return body, resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

// safeFilename makes a test name safe for use in file paths.
func safeFilename(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
