package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Experience shortfall costs points per missing year, but never drives a
// candidate to zero on experience alone.
const (
	experienceDecayPerYear = 15.0
	experienceFloor        = 10.0
)

// Skills scores skill-set overlap and experience fit, the two criteria
// every profile carries. It is the engine's safe default and its fallback
// when another strategy fails.
type Skills struct{}

// NewSkills creates the skills/experience strategy.
func NewSkills() *Skills { return &Skills{} }

// Name implements Strategy.
func (s *Skills) Name() string { return NameSkills }

// Score implements Strategy. The overall score is the weighted blend of
// the skills and experience criteria, re-normalized over just those two
// weights.
func (s *Skills) Score(_ context.Context, candidate types.Candidate, job types.JobOffer, weights weighting.Profile) (types.MatchScore, error) {
	skillScore, matched, missing := skillOverlap(candidate, job)
	expScore, expDetail := experienceFit(candidate.ExperienceYears, job.Experience.Min)

	wSkills := weights.Get(weighting.Skills)
	wExp := weights.Get(weighting.Experience)
	overall := blendTwo(skillScore, wSkills, expScore, wExp)

	skillDetails := []string{fmt.Sprintf("%d of %d required skills matched", len(matched), len(matched)+len(missing))}
	if len(matched) > 0 {
		skillDetails = append(skillDetails, "matched: "+strings.Join(matched, ", "))
	}
	if len(missing) > 0 {
		skillDetails = append(skillDetails, "missing: "+strings.Join(missing, ", "))
	}

	return types.MatchScore{
		Overall:  types.ClampScore(overall),
		Strategy: NameSkills,
		Criteria: []types.CriterionScore{
			{Name: weighting.Skills, Score: skillScore, Details: skillDetails},
			{Name: weighting.Experience, Score: expScore, Details: []string{expDetail}},
		},
	}, nil
}

// blendTwo averages two criterion scores by their weights, falling back to
// a plain mean when both weights are zero.
func blendTwo(a, wa, b, wb float64) float64 {
	total := wa + wb
	if total <= 0 {
		return (a + b) / 2
	}
	return (a*wa + b*wb) / total
}

// skillOverlap returns the skills criterion score plus the matched and
// missing skill lists in the job's stated order. A job with no required
// skills is vacuously satisfied.
func skillOverlap(candidate types.Candidate, job types.JobOffer) (float64, []string, []string) {
	required := job.RequiredSkillSet()
	if len(required) == 0 {
		return 100, nil, nil
	}

	have := candidate.SkillSet()
	seen := make(map[string]bool, len(required))
	var matched, missing []string
	for _, raw := range job.RequiredSkills {
		norm := types.NormalizeSkill(raw)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		if have[norm] {
			matched = append(matched, norm)
		} else {
			missing = append(missing, norm)
		}
	}

	score := float64(len(matched)) / float64(len(required)) * 100
	return score, matched, missing
}

// experienceFit returns the experience criterion score and its
// explanation. Meeting the requirement scores 100; each missing year
// decays the score linearly down to the floor.
func experienceFit(years, required float64) (float64, string) {
	if years >= required {
		return 100, fmt.Sprintf("%.1f years meets the %.1f required", years, required)
	}

	shortfall := required - years
	score := 100 - experienceDecayPerYear*shortfall
	if score < experienceFloor {
		score = experienceFloor
	}
	return score, fmt.Sprintf("%.1f years is %.1f short of the %.1f required", years, shortfall, required)
}
