package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ezyqa/game-tester/pkg/core"
)

// Store reads and writes run reports in a reports directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the reports directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteRaw persists the unanalyzed execution results for a run and returns
// the file path.
func (s *Store) WriteRaw(runID string, results []core.TestResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}

	path := filepath.Join(s.dir, runID+"_raw.json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write raw results: %w", err)
	}
	return path, nil
}

// Write persists an analyzed report and returns the file path.
func (s *Store) Write(r *Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}

	path := filepath.Join(s.dir, r.RunID+"_report.json")
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Read loads the stored report for a run. A missing report returns
// core.ErrReportNotFound.
func (s *Store) Read(runID string) (*Report, error) {
	path := filepath.Join(s.dir, runID+"_report.json")
	data, err := os.ReadFile(path) //#nosec G304 -- path is store-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrReportNotFound
		}
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse stored report: %w", err)
	}
	return &r, nil
}
