package types

// Confidence qualifies how much a strategy trusts its own score.
type Confidence string

// Confidence labels, from least to most trusted. The empty value means the
// strategy did not qualify its score.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// rank orders confidence labels so aggregation can pick the most
// conservative one. Unset sorts above low: an unqualified score is not a
// doubted one.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceLow:
		return 0
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	default:
		return 1
	}
}

// Weakest returns the more conservative of two confidence labels.
func (c Confidence) Weakest(other Confidence) Confidence {
	if other.rank() < c.rank() {
		return other
	}
	return c
}

// CriterionScore is one named sub-score inside a MatchScore, with free-form
// explanation lines a caller can surface to the user.
type CriterionScore struct {
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Details []string `json:"details,omitempty"`
}

// MatchScore is the result of one strategy applied to one (candidate, job)
// pair: an overall 0-100 score, the strategy that produced it, and the
// per-criterion breakdown. A MatchScore is never mutated once produced;
// blending several builds a fresh one.
type MatchScore struct {
	Overall    float64          `json:"overall"`
	Strategy   string           `json:"strategy"`
	Criteria   []CriterionScore `json:"criteria,omitempty"`
	Confidence Confidence       `json:"confidence,omitempty"`
}

// ConsensusResult wraps the per-strategy scores behind one blended score,
// and records which strategies contributed versus failed. The blended score
// is computed only from strategies that succeeded.
type ConsensusResult struct {
	Blended     float64               `json:"blended"`
	PerStrategy map[string]MatchScore `json:"per_strategy"`
	Contributed []string              `json:"contributed"`
	Failed      []string              `json:"failed,omitempty"`
}

// ClampScore bounds a score to the 0-100 scale every MatchScore uses.
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
