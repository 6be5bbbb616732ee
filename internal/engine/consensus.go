package engine

import (
	"fmt"
	"sort"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// Agreement bonus: up to maxConsensusBonus points when strategies agree,
// shrinking linearly and vanishing once the score variance reaches
// varianceLimit.
const (
	maxConsensusBonus = 5.0
	varianceLimit     = 100.0
)

// ConsensusName labels blended scores in place of a single strategy name.
const ConsensusName = "consensus"

// aggregate blends the surviving per-strategy scores into one consensus
// score. Blend weights are renormalized over the survivors; strategies
// without a weight count as 1. The agreement bonus is computed from the
// plain variance of the surviving overall scores, so disagreeing
// strategies earn nothing regardless of weighting.
func aggregate(perStrategy map[string]types.MatchScore, failures map[string]error, weights map[string]float64) (types.MatchScore, types.ConsensusResult) {
	names := make([]string, 0, len(perStrategy))
	for name := range perStrategy {
		names = append(names, name)
	}
	sort.Strings(names)

	var totalWeight float64
	blendWeights := make(map[string]float64, len(names))
	for _, name := range names {
		w := 1.0
		if v, ok := weights[name]; ok && v > 0 {
			w = v
		}
		blendWeights[name] = w
		totalWeight += w
	}

	var blended, mean float64
	for _, name := range names {
		overall := perStrategy[name].Overall
		blended += overall * blendWeights[name] / totalWeight
		mean += overall / float64(len(names))
	}

	var variance float64
	for _, name := range names {
		d := perStrategy[name].Overall - mean
		variance += d * d / float64(len(names))
	}

	if bonus := consensusBonus(variance); bonus > 0 {
		blended += bonus
	}
	blended = types.ClampScore(blended)

	confidence := types.Confidence("")
	criteria := make([]types.CriterionScore, 0, len(names))
	for i, name := range names {
		score := perStrategy[name]
		criteria = append(criteria, types.CriterionScore{
			Name:    name,
			Score:   score.Overall,
			Details: []string{fmt.Sprintf("blend weight %.2f", blendWeights[name]/totalWeight)},
		})
		if i == 0 {
			confidence = score.Confidence
		} else {
			confidence = confidence.Weakest(score.Confidence)
		}
	}

	failed := make([]string, 0, len(failures))
	for name := range failures {
		failed = append(failed, name)
	}
	sort.Strings(failed)

	result := types.ConsensusResult{
		Blended:     blended,
		PerStrategy: perStrategy,
		Contributed: names,
		Failed:      failed,
	}
	score := types.MatchScore{
		Overall:    blended,
		Strategy:   ConsensusName,
		Criteria:   criteria,
		Confidence: confidence,
	}
	return score, result
}

// consensusBonus decays linearly from the maximum at zero variance to
// nothing at the variance limit.
func consensusBonus(variance float64) float64 {
	if variance >= varianceLimit {
		return 0
	}
	return maxConsensusBonus * (1 - variance/varianceLimit)
}
