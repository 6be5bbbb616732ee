package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bapt252/Commitment--sub002/internal/travel"
	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Each 10% of salary expectation above the posted maximum costs this many
// points, down to the floor.
const (
	salaryOvershootPenalty = 15.0
	salaryFloor            = 10.0
	salaryUnknownScore     = 70.0
)

// Comprehensive blends all five weighted criteria: skills, experience,
// location, salary and flexibility. It is the one strategy that consumes
// the full weighting profile without re-normalization.
type Comprehensive struct {
	cache *travel.Cache
	bands []Band
}

// NewComprehensive creates the comprehensive strategy. Nil or empty bands
// select the geography defaults.
func NewComprehensive(cache *travel.Cache, bands []Band) *Comprehensive {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	return &Comprehensive{cache: cache, bands: bands}
}

// Name implements Strategy.
func (c *Comprehensive) Name() string { return NameComprehensive }

// Score implements Strategy.
func (c *Comprehensive) Score(ctx context.Context, candidate types.Candidate, job types.JobOffer, weights weighting.Profile) (types.MatchScore, error) {
	skillScore, matched, missing := skillOverlap(candidate, job)
	expScore, expDetail := experienceFit(candidate.ExperienceYears, job.Experience.Min)
	locScore, locDetails, err := c.locationFit(ctx, candidate, job)
	if err != nil {
		return types.MatchScore{}, err
	}
	salScore, salDetail := salaryFit(candidate, job)
	flexScore, flexDetails := flexibilityFit(candidate, job)

	overall := skillScore*weights.Get(weighting.Skills) +
		expScore*weights.Get(weighting.Experience) +
		locScore*weights.Get(weighting.Location) +
		salScore*weights.Get(weighting.Salary) +
		flexScore*weights.Get(weighting.Flexibility)

	skillDetails := []string{fmt.Sprintf("%d of %d required skills matched", len(matched), len(matched)+len(missing))}
	if len(missing) > 0 {
		skillDetails = append(skillDetails, "missing: "+strings.Join(missing, ", "))
	}

	return types.MatchScore{
		Overall:  types.ClampScore(overall),
		Strategy: NameComprehensive,
		Criteria: []types.CriterionScore{
			{Name: weighting.Skills, Score: skillScore, Details: skillDetails},
			{Name: weighting.Experience, Score: expScore, Details: []string{expDetail}},
			{Name: weighting.Location, Score: locScore, Details: locDetails},
			{Name: weighting.Salary, Score: salScore, Details: []string{salDetail}},
			{Name: weighting.Flexibility, Score: flexScore, Details: flexDetails},
		},
	}, nil
}

// locationFit scores the commute via the travel cache. A fully remote job
// makes the commute irrelevant.
func (c *Comprehensive) locationFit(ctx context.Context, candidate types.Candidate, job types.JobOffer) (float64, []string, error) {
	if job.RemotePolicy == types.RemoteFull {
		return 100, []string{"fully remote, commute irrelevant"}, nil
	}

	mode := travel.ParseMode(candidate.CommuteMode)
	entry, err := c.cache.Lookup(ctx, candidate.Location, job.Location, mode)
	if err != nil {
		return 0, nil, &UnavailableError{Strategy: NameComprehensive, Message: "travel lookup cancelled", Cause: err}
	}

	score := bandScore(c.bands, entry.Duration())
	details := []string{fmt.Sprintf("%.0f min by %s", entry.Duration().Minutes(), mode)}
	if entry.Degraded {
		details = append(details, "degraded straight-line estimate")
	}
	return score, details, nil
}

// salaryFit scores the candidate's expectation against the posted range.
// Asking below the range is not penalized; asking above the maximum decays
// linearly with the overshoot.
func salaryFit(candidate types.Candidate, job types.JobOffer) (float64, string) {
	if candidate.DesiredSalary == nil {
		return 100, "no salary expectation stated"
	}
	if !job.HasSalaryRange() {
		return salaryUnknownScore, "posting does not state a salary range"
	}

	desired := *candidate.DesiredSalary
	if job.SalaryMax != nil && *job.SalaryMax > 0 && desired > *job.SalaryMax {
		overshoot := (desired - *job.SalaryMax) / *job.SalaryMax
		score := 100 - overshoot/0.10*salaryOvershootPenalty
		if score < salaryFloor {
			score = salaryFloor
		}
		return score, fmt.Sprintf("expectation %.0f exceeds the posted maximum %.0f", desired, *job.SalaryMax)
	}
	return 100, "expectation inside the posted range"
}

// flexibilityFit averages the remote-policy fit and the contract-type fit.
func flexibilityFit(candidate types.Candidate, job types.JobOffer) (float64, []string) {
	remoteScore, remoteDetail := remoteFit(candidate.RemotePref, job.RemotePolicy)
	contractScore, contractDetail := contractFit(candidate, job)
	return (remoteScore + contractScore) / 2, []string{remoteDetail, contractDetail}
}

// remoteFit scores how the job's remote policy honors the candidate's
// stated preference.
func remoteFit(pref, policy string) (float64, string) {
	switch pref {
	case types.RemoteFull:
		switch policy {
		case types.RemoteFull:
			return 100, "full remote offered"
		case types.RemoteHybrid:
			return 70, "hybrid offered, full remote preferred"
		default:
			return 30, "on-site only, full remote preferred"
		}
	case types.RemoteHybrid:
		switch policy {
		case types.RemoteFull, types.RemoteHybrid:
			return 100, "remote flexibility offered"
		default:
			return 50, "on-site only, hybrid preferred"
		}
	default:
		return 100, "no remote preference stated"
	}
}

// contractFit checks the posted contract type against the candidate's
// accepted set. Either side staying silent is not a mismatch.
func contractFit(candidate types.Candidate, job types.JobOffer) (float64, string) {
	if len(candidate.ContractTypes) == 0 || job.ContractType == "" {
		return 100, "no contract constraint"
	}
	for _, ct := range candidate.ContractTypes {
		if strings.EqualFold(ct, job.ContractType) {
			return 100, fmt.Sprintf("%s contract accepted", job.ContractType)
		}
	}
	return 40, fmt.Sprintf("%s contract not among the candidate's accepted types", job.ContractType)
}
