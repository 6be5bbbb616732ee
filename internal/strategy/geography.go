package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/Bapt252/Commitment--sub002/internal/travel"
	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Band maps a maximum commute duration to a score. A Band with Max == 0
// is a catch-all matching any duration.
type Band struct {
	Max   time.Duration
	Score float64
}

// DefaultBands is the stock duration-to-score step function, decreasing
// monotonically from a quarter-hour commute down to anything past ninety
// minutes.
func DefaultBands() []Band {
	return []Band{
		{Max: 15 * time.Minute, Score: 100},
		{Max: 30 * time.Minute, Score: 85},
		{Max: 45 * time.Minute, Score: 70},
		{Max: 60 * time.Minute, Score: 55},
		{Max: 75 * time.Minute, Score: 40},
		{Max: 90 * time.Minute, Score: 30},
		{Max: 0, Score: 20},
	}
}

// Geography scores the commute between the candidate's home and the job's
// location via the travel cache. The cache degrades instead of failing, so
// this strategy only errors when the request is already cancelled.
type Geography struct {
	cache *travel.Cache
	bands []Band
}

// NewGeography creates the geography strategy. Nil or empty bands select
// the defaults.
func NewGeography(cache *travel.Cache, bands []Band) *Geography {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	return &Geography{cache: cache, bands: bands}
}

// Name implements Strategy.
func (g *Geography) Name() string { return NameGeography }

// Score implements Strategy.
func (g *Geography) Score(ctx context.Context, candidate types.Candidate, job types.JobOffer, _ weighting.Profile) (types.MatchScore, error) {
	mode := travel.ParseMode(candidate.CommuteMode)
	entry, err := g.cache.Lookup(ctx, candidate.Location, job.Location, mode)
	if err != nil {
		return types.MatchScore{}, &UnavailableError{Strategy: NameGeography, Message: "travel lookup cancelled", Cause: err}
	}

	duration := entry.Duration()
	score := bandScore(g.bands, duration)

	details := []string{fmt.Sprintf("%.0f min by %s", duration.Minutes(), mode)}
	if entry.DistanceMeters > 0 {
		details = append(details, fmt.Sprintf("%.1f km", entry.DistanceMeters/1000))
	}
	details = append(details, entry.TransitDetails...)
	if entry.Degraded {
		details = append(details, "degraded straight-line estimate")
	}

	confidence := types.Confidence("")
	if entry.Degraded {
		confidence = types.ConfidenceLow
	}

	return types.MatchScore{
		Overall:  types.ClampScore(score),
		Strategy: NameGeography,
		Criteria: []types.CriterionScore{
			{Name: weighting.Location, Score: score, Details: details},
		},
		Confidence: confidence,
	}, nil
}

// bandScore walks the bands in order and returns the first match, so the
// band list must be sorted by Max ascending with any catch-all last.
func bandScore(bands []Band, d time.Duration) float64 {
	for _, band := range bands {
		if band.Max == 0 || d <= band.Max {
			return band.Score
		}
	}
	return bands[len(bands)-1].Score
}
