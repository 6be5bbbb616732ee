package strategy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

func TestSemantic_StrongOverlapScoresHigh(t *testing.T) {
	candidate := types.Candidate{
		ID:     "c1",
		Skills: []string{"Python", "Django", "PostgreSQL", "REST"},
		Summary: "Backend engineer building Django services with PostgreSQL, " +
			"REST APIs and Python tooling for data teams",
	}
	job := types.JobOffer{
		ID: "j1",
		Description: "We need a backend engineer fluent in Python and Django, " +
			"comfortable with PostgreSQL and REST APIs, to build services for data teams",
	}

	score, err := NewSemantic().Score(context.Background(), candidate, job, baseWeights())
	require.NoError(t, err)
	assert.Greater(t, score.Overall, 40.0)
	assert.Contains(t, score.Criteria[0].Details[1], "django")
}

func TestSemantic_DisjointTextsScoreZero(t *testing.T) {
	candidate := types.Candidate{
		ID:      "c1",
		Skills:  []string{"carpentry", "plumbing"},
		Summary: "woodwork restoration specialist furniture joinery",
	}
	job := types.JobOffer{
		ID:          "j1",
		Description: "quantum compiler research position optimizing qubit allocation",
	}

	score, err := NewSemantic().Score(context.Background(), candidate, job, baseWeights())
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Overall)
}

func TestSemantic_StripsHTMLDescriptions(t *testing.T) {
	candidate := types.Candidate{
		ID:      "c1",
		Skills:  []string{"golang", "kubernetes", "terraform", "prometheus", "grafana"},
		Summary: "platform engineer golang kubernetes terraform prometheus grafana monitoring",
	}
	plain := types.JobOffer{
		ID:          "plain",
		Description: "platform engineer golang kubernetes terraform prometheus grafana monitoring",
	}
	markup := types.JobOffer{
		ID: "markup",
		Description: "<html><body><h1>Platform engineer</h1><p>golang kubernetes terraform</p>" +
			"<ul><li>prometheus</li><li>grafana monitoring</li></ul>" +
			"<script>trackVisit()</script></body></html>",
	}

	plainScore, err := NewSemantic().Score(context.Background(), candidate, plain, baseWeights())
	require.NoError(t, err)
	markupScore, err := NewSemantic().Score(context.Background(), candidate, markup, baseWeights())
	require.NoError(t, err)

	assert.Greater(t, markupScore.Overall, 0.0)
	// Markup must not tank the score relative to the same text in plain form.
	assert.InDelta(t, plainScore.Overall, markupScore.Overall, 25)
	for _, detail := range markupScore.Criteria[0].Details {
		assert.NotContains(t, detail, "trackvisit", "script content must be stripped")
	}
}

func TestSemantic_ShortTextLowersConfidence(t *testing.T) {
	candidate := types.Candidate{ID: "c1", Skills: []string{"Go"}}
	job := types.JobOffer{ID: "j1", Description: "Go developer"}

	score, err := NewSemantic().Score(context.Background(), candidate, job, baseWeights())
	require.NoError(t, err)
	assert.Equal(t, types.ConfidenceLow, score.Confidence)
}

func TestSemantic_RichTextRaisesConfidence(t *testing.T) {
	long := strings.Repeat("distributed systems kafka streaming golang postgres redis docker ", 8)
	candidate := types.Candidate{ID: "c1", Summary: long}
	job := types.JobOffer{ID: "j1", Description: long}

	score, err := NewSemantic().Score(context.Background(), candidate, job, baseWeights())
	require.NoError(t, err)
	assert.Equal(t, types.ConfidenceHigh, score.Confidence)
}

func TestTokenizeDropsStopwordsAndNoise(t *testing.T) {
	tokens := tokenize("We are looking for a Python engineer to join the team!")
	assert.Contains(t, tokens, "python")
	assert.Contains(t, tokens, "engineer")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "a")
}

func TestCosineIdenticalVectorsIsOne(t *testing.T) {
	tf := termFrequencies([]string{"go", "go", "kafka"})
	assert.InDelta(t, 1.0, cosine(tf, tf), 1e-9)
}
