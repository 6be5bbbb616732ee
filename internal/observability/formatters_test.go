package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bapt252/Commitment--sub002/internal/engine"
	"github.com/Bapt252/Commitment--sub002/internal/types"
)

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidate := &types.Candidate{
		ID:              "cand-1",
		Name:            "Alex Martin",
		Skills:          []string{"Go", "Python", "Kubernetes"},
		ExperienceYears: 6,
		RemotePref:      types.RemoteHybrid,
		Location:        types.Location{Address: "Paris, France"},
	}

	p.PrintCandidate(candidate)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE PROFILE")
	assert.Contains(t, output, "cand-1")
	assert.Contains(t, output, "Alex Martin")
	assert.Contains(t, output, "6.0 years")
	assert.Contains(t, output, "hybrid")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintCandidate_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidate(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCandidate_TruncatesLongSkillList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	candidate := &types.Candidate{
		ID:     "cand-1",
		Skills: []string{"go", "python", "rust", "java", "scala", "elixir", "haskell"},
	}

	p.PrintCandidate(candidate)
	output := buf.String()

	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "haskell")
}

func TestPrintJobOffer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobOffer{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Company:        "Acme Corp",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		Experience:     types.ExperienceRange{Min: 3, Max: 5},
		RemotePolicy:   types.RemoteFull,
	}

	p.PrintJobOffer(job)
	output := buf.String()

	assert.Contains(t, output, "JOB OFFER")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "3-5 years")
	assert.Contains(t, output, "PostgreSQL")
}

func TestPrintJobOffer_SingleExperienceValue(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobOffer{
		ID:         "job-1",
		Experience: types.ExperienceRange{Min: 4},
	}

	p.PrintJobOffer(job)

	assert.Contains(t, buf.String(), "4+ years")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []engine.Result{
		{
			CandidateID: "cand-1",
			JobID:       "job-backend",
			Score: types.MatchScore{
				Overall:    86.8,
				Strategy:   "consensus",
				Confidence: types.ConfidenceHigh,
				Criteria: []types.CriterionScore{
					{Name: "remote", Score: 80},
					{Name: "skills", Score: 84},
				},
			},
			Consensus: &types.ConsensusResult{
				Blended:     86.8,
				Contributed: []string{"remote", "skills"},
				Failed:      []string{"geography"},
			},
		},
		{
			CandidateID: "cand-1",
			JobID:       "job-frontend",
			Score: types.MatchScore{
				Overall:  54.5,
				Strategy: "skills",
			},
		},
	}

	p.PrintResults(results, engine.CandidateToJobs)
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULTS")
	assert.Contains(t, output, "Total pairs ranked: 2")
	assert.Contains(t, output, "#1  job-backend")
	assert.Contains(t, output, "86.8 (consensus) [high]")
	assert.Contains(t, output, "Consensus of: remote, skills")
	assert.Contains(t, output, "Failed:       geography")
	assert.Contains(t, output, "#2  job-frontend")
	assert.Contains(t, output, "54.5 (skills)")
}

func TestPrintResults_JobToCandidatesHeadlinesCandidateID(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []engine.Result{
		{
			CandidateID: "cand-strong",
			JobID:       "job-1",
			Score:       types.MatchScore{Overall: 91, Strategy: "skills"},
		},
	}

	p.PrintResults(results, engine.JobToCandidates)

	assert.Contains(t, buf.String(), "#1  cand-strong")
}

func TestPrintResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResults(nil, engine.CandidateToJobs)

	assert.Contains(t, buf.String(), "No results.")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// A candidate with text long enough to force line truncation
	candidate := &types.Candidate{
		ID:   "cand-with-an-extremely-long-identifier-that-should-be-truncated",
		Name: "A Very Long Name That Certainly Exceeds The Box Width Limit",
	}

	p.PrintCandidate(candidate)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
	assert.Contains(t, output, "...")
}
