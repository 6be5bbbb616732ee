package engine

import (
	"context"

	"github.com/Bapt252/Commitment--sub002/internal/strategy"
	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// Auto-policy thresholds.
const (
	seniorExperienceYears = 7
	broadSkillCount       = 8
)

// Geography speaks directly to a stated mobility preference, so it
// carries extra weight in the rule-4 consensus.
const geographyConsensusWeight = 1.5

// Selection is the selector's decision for one pair.
type Selection struct {
	Strategies []string
	Weights    map[string]float64
	Consensus  bool
	Reason     string
}

// selectStrategies decides which strategies score a pair. An explicit
// name bypasses the policy; otherwise the auto rules run top to bottom,
// first match wins.
func (e *Engine) selectStrategies(ctx context.Context, candidate types.Candidate, explicit string) Selection {
	if explicit != "" && explicit != AutoStrategy {
		return Selection{
			Strategies: []string{explicit},
			Reason:     "explicitly requested",
		}
	}

	// Rule 1: rich profile + questionnaire + reachable remote service.
	if len(candidate.Skills) >= 1 && candidate.ExperienceYears > 0 &&
		candidate.Questionnaire.Complete() && e.remoteReachable(ctx) {
		return Selection{
			Strategies: []string{strategy.NameRemote, strategy.NameSkills},
			Consensus:  true,
			Reason:     "rich profile with questionnaire, remote service reachable",
		}
	}

	// Rule 2: senior profiles are scored on hard skills and experience.
	if candidate.ExperienceYears >= seniorExperienceYears {
		return Selection{
			Strategies: []string{strategy.NameSkills},
			Reason:     "senior profile",
		}
	}

	// Rule 3: a broad skill set gives the semantic comparison enough text.
	if len(candidate.SkillSet()) >= broadSkillCount {
		return Selection{
			Strategies: []string{strategy.NameSemantic},
			Reason:     "broad skill set",
		}
	}

	// Rule 4: a mobility preference makes commute fit decisive.
	if candidate.WantsRemote() {
		return Selection{
			Strategies: []string{strategy.NameSkills, strategy.NameGeography},
			Weights: map[string]float64{
				strategy.NameSkills:    1.0,
				strategy.NameGeography: geographyConsensusWeight,
			},
			Consensus: true,
			Reason:    "mobility preference, geography-weighted consensus",
		}
	}

	// Rule 5: safe default.
	return Selection{
		Strategies: []string{strategy.NameSkills},
		Reason:     "default",
	}
}

// remoteReachable reports whether auto selection may include the remote
// strategy: it must be registered and the circuit must be closed.
func (e *Engine) remoteReachable(ctx context.Context) bool {
	return e.registry.Has(strategy.NameRemote) && e.breaker.Allow(ctx)
}
