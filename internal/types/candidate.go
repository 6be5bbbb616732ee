// Package types provides type definitions for the candidate and job records
// scored by the matching engine, and for the score shapes it produces.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Remote preference / policy values shared by candidates and job offers.
const (
	RemoteNone   = "none"
	RemoteHybrid = "hybrid"
	RemoteFull   = "remote"
)

// Location is a geocodable address with optional resolved coordinates.
// Coordinates are filled in when the upstream record already carried them;
// they are never resolved by the engine itself.
type Location struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// IsZero reports whether the location carries no usable information.
func (l Location) IsZero() bool {
	return l.Address == "" && !l.HasCoordinates()
}

// PriorityVector holds the four candidate priority sliders, each 1-10.
// A completely zero vector means the candidate never answered and is
// normalized to the neutral value before weighting.
type PriorityVector struct {
	Evolution    int `json:"evolution"`
	Remuneration int `json:"remuneration"`
	Proximity    int `json:"proximity"`
	Flexibility  int `json:"flexibility"`
}

// neutralSlider is the midpoint value assumed for unanswered priorities.
const neutralSlider = 5

// IsZero reports whether no slider was set at all.
func (p PriorityVector) IsZero() bool {
	return p.Evolution == 0 && p.Remuneration == 0 && p.Proximity == 0 && p.Flexibility == 0
}

// Valid reports whether every slider is inside the 1-10 range.
func (p PriorityVector) Valid() bool {
	for _, v := range []int{p.Evolution, p.Remuneration, p.Proximity, p.Flexibility} {
		if v < 1 || v > 10 {
			return false
		}
	}
	return true
}

// Normalized returns the vector with an all-zero value replaced by neutral
// sliders. Any other shape is returned unchanged.
func (p PriorityVector) Normalized() PriorityVector {
	if p.IsZero() {
		return PriorityVector{
			Evolution:    neutralSlider,
			Remuneration: neutralSlider,
			Proximity:    neutralSlider,
			Flexibility:  neutralSlider,
		}
	}
	return p
}

// Questionnaire holds the structured behavioral answers a candidate may have
// filled in. Its presence (complete) unlocks the consensus auto-selection
// that includes the remote scoring service.
type Questionnaire struct {
	WorkEnvironment string   `json:"work_environment,omitempty"`
	TeamSize        string   `json:"team_size,omitempty"`
	ManagementStyle string   `json:"management_style,omitempty"`
	Motivations     []string `json:"motivations,omitempty"`
}

// Complete reports whether enough of the questionnaire was answered to be
// useful to the remote scoring service.
func (q *Questionnaire) Complete() bool {
	if q == nil {
		return false
	}
	answered := 0
	if q.WorkEnvironment != "" {
		answered++
	}
	if q.TeamSize != "" {
		answered++
	}
	if q.ManagementStyle != "" {
		answered++
	}
	if len(q.Motivations) > 0 {
		answered++
	}
	return answered >= 2
}

// Candidate is one structured candidate record, as produced by the upstream
// document extractor or supplied directly. It is treated as immutable for
// the duration of a match request.
type Candidate struct {
	ID              string         `json:"id" validate:"required"`
	Name            string         `json:"name,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	ExperienceYears float64        `json:"experience_years" validate:"gte=0"`
	Education       string         `json:"education,omitempty"`
	Location        Location       `json:"location,omitempty"`
	DesiredSalary   *float64       `json:"desired_salary,omitempty" validate:"omitempty,gte=0"`
	ContractTypes   []string       `json:"contract_types,omitempty"`
	RemotePref      string         `json:"remote_preference,omitempty" validate:"omitempty,oneof=none hybrid remote"`
	CommuteMode     string         `json:"commute_mode,omitempty"`
	Priorities      PriorityVector `json:"priorities"`
	Questionnaire   *Questionnaire `json:"questionnaire,omitempty"`
	Summary         string         `json:"summary,omitempty"`
}

// SkillSet returns the candidate's skills as a normalized lookup set.
func (c *Candidate) SkillSet() map[string]bool {
	set := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		if n := NormalizeSkill(s); n != "" {
			set[n] = true
		}
	}
	return set
}

// WantsRemote reports whether the candidate expressed any remote or
// mobility preference at all.
func (c *Candidate) WantsRemote() bool {
	return c.RemotePref == RemoteHybrid || c.RemotePref == RemoteFull
}

// NormalizeSkill lowercases and trims a skill tag so that "Python " and
// "python" compare equal across candidate and job records.
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
