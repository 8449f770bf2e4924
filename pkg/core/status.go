package core

// Status represents the execution outcome of a test case, before analysis.
type Status string

// Status values.
const (
	StatusCompleted Status = "completed" // Test ran and artifacts were captured
	StatusFailed    Status = "failed"    // Artifact capture reported an error
)

// Verdict is the analyzer's judgement of a test result.
type Verdict string

// Verdict values.
const (
	VerdictPending Verdict = "pending" // Awaiting analysis
	VerdictPassed  Verdict = "passed"
	VerdictFailed  Verdict = "failed"
	VerdictFlaky   Verdict = "flaky"
	VerdictUnknown Verdict = "unknown"
)

// IsTerminal returns true if the verdict is a final judgement.
func (v Verdict) IsTerminal() bool {
	switch v {
	case VerdictPassed, VerdictFailed, VerdictFlaky:
		return true
	default:
		return false
	}
}

// IsSuccess returns true if the verdict indicates a passing test.
func (v Verdict) IsSuccess() bool {
	return v == VerdictPassed
}
