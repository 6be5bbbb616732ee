package engine

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidInputError rejects a malformed request before any strategy runs.
// It is never retried.
type InvalidInputError struct {
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// AllStrategiesFailedError reports that every strategy tried for one pair
// failed, including any fallback. It is the one condition the orchestrator
// cannot mask.
type AllStrategiesFailedError struct {
	CandidateID string
	JobID       string
	Failures    map[string]error
}

func (e *AllStrategiesFailedError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for name := range e.Failures {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("all strategies failed for candidate %s and job %s: %s",
		e.CandidateID, e.JobID, strings.Join(names, ", "))
}
