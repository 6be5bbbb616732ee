package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// resolveDirection defaults an unset direction and rejects unknown ones.
func resolveDirection(d Direction) (Direction, error) {
	switch d {
	case "":
		return CandidateToJobs, nil
	case CandidateToJobs, JobToCandidates:
		return d, nil
	default:
		return "", &InvalidInputError{Message: fmt.Sprintf("unknown direction %q", d)}
	}
}

// validateRequest checks the request shape before any strategy runs.
func (e *Engine) validateRequest(req Request, dir Direction) error {
	name := req.Options.Strategy
	if name != "" && name != AutoStrategy && !e.registry.Has(name) {
		return &InvalidInputError{Message: fmt.Sprintf("unknown strategy %q", name)}
	}

	switch dir {
	case CandidateToJobs:
		if req.Candidate == nil {
			return &InvalidInputError{Message: "candidate is required"}
		}
		if len(req.Jobs) == 0 {
			return &InvalidInputError{Message: "at least one job offer is required"}
		}
		if err := e.validateCandidate(*req.Candidate); err != nil {
			return err
		}
		for i := range req.Jobs {
			if err := e.validateJob(req.Jobs[i]); err != nil {
				return err
			}
		}
	case JobToCandidates:
		if req.Job == nil {
			return &InvalidInputError{Message: "job offer is required"}
		}
		if err := e.validateJob(*req.Job); err != nil {
			return err
		}
		// An empty candidate list is permitted and yields an empty ranking.
		for i := range req.Candidates {
			if err := e.validateCandidate(req.Candidates[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) validateCandidate(c types.Candidate) error {
	if err := e.validate.Struct(c); err != nil {
		return &InvalidInputError{
			Message: fmt.Sprintf("candidate %s failed validation", c.ID),
			Cause:   describeValidation(err),
		}
	}
	if !c.Priorities.IsZero() && !c.Priorities.Valid() {
		return &InvalidInputError{
			Message: fmt.Sprintf("candidate %s priority sliders must be between 1 and 10", c.ID),
		}
	}
	return nil
}

func (e *Engine) validateJob(j types.JobOffer) error {
	if err := e.validate.Struct(j); err != nil {
		return &InvalidInputError{
			Message: fmt.Sprintf("job offer %s failed validation", j.ID),
			Cause:   describeValidation(err),
		}
	}
	return nil
}

// describeValidation condenses validator errors to their first offending
// field, which is enough for a caller to act on.
func describeValidation(err error) error {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return fmt.Errorf("field %s fails %q", first.Field(), first.Tag())
	}
	return err
}
