package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

const defaultRemoteTimeout = 5 * time.Second

// RemoteScore is the remote scoring collaborator's answer for one pair.
type RemoteScore struct {
	Overall    float64
	Criteria   []types.CriterionScore
	Confidence types.Confidence
}

// ScoreClient is the remote scoring collaborator. Implementations must
// honor context cancellation; the strategy imposes its own timeout.
type ScoreClient interface {
	Score(ctx context.Context, candidate types.Candidate, job types.JobOffer) (RemoteScore, error)
}

// Remote delegates scoring to the external collaborator under a strict
// timeout. It never fabricates a degraded score: any timeout, transport
// failure, or out-of-contract answer surfaces as UnavailableError.
type Remote struct {
	client  ScoreClient
	timeout time.Duration
}

// NewRemote creates the remote strategy. A non-positive timeout selects
// the default.
func NewRemote(client ScoreClient, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Remote{client: client, timeout: timeout}
}

// Name implements Strategy.
func (r *Remote) Name() string { return NameRemote }

// Score implements Strategy.
func (r *Remote) Score(ctx context.Context, candidate types.Candidate, job types.JobOffer, _ weighting.Profile) (types.MatchScore, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	answer, err := r.client.Score(ctx, candidate, job)
	if err != nil {
		return types.MatchScore{}, &UnavailableError{Strategy: NameRemote, Message: "scoring call failed", Cause: err}
	}
	if answer.Overall < 0 || answer.Overall > 100 {
		return types.MatchScore{}, &UnavailableError{
			Strategy: NameRemote,
			Message:  fmt.Sprintf("score %.1f outside the 0-100 contract", answer.Overall),
		}
	}

	return types.MatchScore{
		Overall:    answer.Overall,
		Strategy:   NameRemote,
		Criteria:   answer.Criteria,
		Confidence: answer.Confidence,
	}, nil
}
