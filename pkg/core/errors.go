package core

import (
	"fmt"
)

// WorkflowError represents a structured error with a machine-readable code.
type WorkflowError struct {
	Code    string // Machine-readable code: no_candidates, report_not_found, etc.
	Message string // Human-readable message
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *WorkflowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *WorkflowError) WithCause(cause error) *WorkflowError {
	return &WorkflowError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
	}
}

// Is matches workflow errors by code, so copies produced by WithCause still
// satisfy errors.Is against the predefined sentinels.
func (e *WorkflowError) Is(target error) bool {
	t, ok := target.(*WorkflowError)
	return ok && t.Code == e.Code
}

// Predefined workflow errors. The first four are stage precondition
// violations: required prior-stage state is missing, so the stage must not
// contact the backend.
var (
	ErrNoCandidates = &WorkflowError{
		Code:    "no_candidates",
		Message: "no candidates available, run plan first",
	}
	ErrNoTopCandidates = &WorkflowError{
		Code:    "no_top_candidates",
		Message: "no top candidates available, run rank first",
	}
	ErrNoResults = &WorkflowError{
		Code:    "no_results",
		Message: "no execution results available, run execute first",
	}
	ErrNoRun = &WorkflowError{
		Code:    "no_run",
		Message: "no run available, run execute first",
	}

	ErrReportNotFound = &WorkflowError{
		Code:    "report_not_found",
		Message: "report not found",
	}
)
