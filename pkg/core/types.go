// Package core provides the domain model for the game tester workflow:
// candidate test cases, execution results and captured artifacts.
package core

// TestCase is a candidate test scenario produced by the planner, ordered by
// the ranker and executed against the target site. The JSON field names are
// part of the wire contract shared with the web front-end and must not change.
type TestCase struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expected_result"`
	Category       string   `json:"category,omitempty"`
	Priority       int      `json:"priority,omitempty"`
	TargetURL      string   `json:"target_url,omitempty"`
}

// Name returns a display name for the test case.
func (t TestCase) Name() string {
	if t.ID != "" {
		return "test_" + t.ID
	}
	return "test_unknown"
}

// Artifacts holds paths to the evidence captured while executing a test.
// Paths are rooted at the configured reports directory.
type Artifacts struct {
	DOMSnapshot string `json:"dom_snapshot,omitempty"`
	Logs        string `json:"logs,omitempty"`
	NetworkLog  string `json:"network_log,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TestResult captures the outcome of executing a single test case.
// The verdict stays pending until the analyzer inspects the artifacts.
type TestResult struct {
	TestID    string    `json:"test_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Verdict   Verdict   `json:"verdict"`
	Artifacts Artifacts `json:"artifacts"`
}
