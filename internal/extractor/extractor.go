// Package extractor defines the document extractor collaborator and the
// JSON intake helpers for records supplied directly.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// Extractor turns a raw uploaded document into a structured record. The
// matching engine consumes only the structured output; parsing the raw
// document is the collaborator's business.
type Extractor interface {
	ExtractCandidate(ctx context.Context, raw []byte) (types.Candidate, error)
	ExtractJobOffer(ctx context.Context, raw []byte) (types.JobOffer, error)
}

// LoadError reports a failed file read or JSON parse during intake.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadCandidate reads one structured candidate record from a JSON file.
func LoadCandidate(path string) (*types.Candidate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var candidate types.Candidate
	if err := json.Unmarshal(content, &candidate); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal candidate JSON",
			Cause:   err,
		}
	}

	return &candidate, nil
}

// LoadCandidates reads a JSON array of candidate records.
func LoadCandidates(path string) ([]types.Candidate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var candidates []types.Candidate
	if err := json.Unmarshal(content, &candidates); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal candidates JSON",
			Cause:   err,
		}
	}

	return candidates, nil
}

// LoadJobOffer reads one structured job offer record from a JSON file.
func LoadJobOffer(path string) (*types.JobOffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var job types.JobOffer
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal job offer JSON",
			Cause:   err,
		}
	}

	return &job, nil
}

// LoadJobOffers reads a JSON array of job offer records.
func LoadJobOffers(path string) ([]types.JobOffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var jobs []types.JobOffer
	if err := json.Unmarshal(content, &jobs); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal job offers JSON",
			Cause:   err,
		}
	}

	return jobs, nil
}
