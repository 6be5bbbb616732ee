package types

import (
	"encoding/json"
	"fmt"
)

// ExperienceRange is the experience a job requires, in years. Max is zero
// when the posting states a single number rather than a range.
type ExperienceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max,omitempty" validate:"gte=0"`
}

// UnmarshalJSON accepts either a bare number ("experience": 3) or a range
// object ("experience": {"min": 3, "max": 5}), since upstream records use
// both shapes.
func (r *ExperienceRange) UnmarshalJSON(data []byte) error {
	var years float64
	if err := json.Unmarshal(data, &years); err == nil {
		r.Min = years
		r.Max = 0
		return nil
	}

	type rangeAlias ExperienceRange
	var alias rangeAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("experience must be a number or a {min, max} object: %w", err)
	}
	*r = ExperienceRange(alias)
	return nil
}

// JobOffer is one structured job posting record. Like Candidate it is
// immutable for the duration of a match request.
type JobOffer struct {
	ID             string          `json:"id" validate:"required"`
	Title          string          `json:"title,omitempty"`
	Company        string          `json:"company,omitempty"`
	RequiredSkills []string        `json:"required_skills,omitempty"`
	Experience     ExperienceRange `json:"experience"`
	Location       Location        `json:"location,omitempty"`
	SalaryMin      *float64        `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax      *float64        `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	ContractType   string          `json:"contract_type,omitempty"`
	RemotePolicy   string          `json:"remote_policy,omitempty" validate:"omitempty,oneof=none hybrid remote"`
	Description    string          `json:"description,omitempty"`
}

// RequiredSkillSet returns the job's required skills as a normalized set.
func (j *JobOffer) RequiredSkillSet() map[string]bool {
	set := make(map[string]bool, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		if n := NormalizeSkill(s); n != "" {
			set[n] = true
		}
	}
	return set
}

// HasSalaryRange reports whether the posting advertises any salary bound.
func (j *JobOffer) HasSalaryRange() bool {
	return j.SalaryMin != nil || j.SalaryMax != nil
}
