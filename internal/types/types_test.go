package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "python", NormalizeSkill("Python"))
	assert.Equal(t, "machine learning", NormalizeSkill("  Machine   Learning "))
	assert.Equal(t, "c++", NormalizeSkill("C++"))
	assert.Equal(t, "", NormalizeSkill("   "))
}

func TestSkillSetDeduplicates(t *testing.T) {
	c := Candidate{Skills: []string{"Python", "python", " PYTHON ", "Django"}}
	set := c.SkillSet()
	assert.Len(t, set, 2)
	assert.True(t, set["python"])
	assert.True(t, set["django"])
}

func TestPriorityVectorNormalized(t *testing.T) {
	t.Run("zero vector becomes neutral", func(t *testing.T) {
		var p PriorityVector
		n := p.Normalized()
		assert.Equal(t, PriorityVector{Evolution: 5, Remuneration: 5, Proximity: 5, Flexibility: 5}, n)
	})

	t.Run("set vector is untouched", func(t *testing.T) {
		p := PriorityVector{Evolution: 9, Remuneration: 3, Proximity: 1, Flexibility: 7}
		assert.Equal(t, p, p.Normalized())
	})
}

func TestPriorityVectorValid(t *testing.T) {
	assert.True(t, PriorityVector{Evolution: 1, Remuneration: 10, Proximity: 5, Flexibility: 5}.Valid())
	assert.False(t, PriorityVector{Evolution: 0, Remuneration: 5, Proximity: 5, Flexibility: 5}.Valid())
	assert.False(t, PriorityVector{Evolution: 11, Remuneration: 5, Proximity: 5, Flexibility: 5}.Valid())
}

func TestQuestionnaireComplete(t *testing.T) {
	assert.False(t, (*Questionnaire)(nil).Complete())
	assert.False(t, (&Questionnaire{WorkEnvironment: "startup"}).Complete())
	assert.True(t, (&Questionnaire{WorkEnvironment: "startup", TeamSize: "small"}).Complete())
	assert.True(t, (&Questionnaire{ManagementStyle: "flat", Motivations: []string{"impact"}}).Complete())
}

func TestLocationHasCoordinates(t *testing.T) {
	lat, lng := 48.8566, 2.3522
	assert.True(t, Location{Lat: &lat, Lng: &lng}.HasCoordinates())
	assert.False(t, Location{Lat: &lat}.HasCoordinates())
	assert.False(t, Location{Address: "Paris"}.HasCoordinates())
}

func TestExperienceRangeUnmarshal(t *testing.T) {
	t.Run("bare number means open-ended minimum", func(t *testing.T) {
		var r ExperienceRange
		require.NoError(t, json.Unmarshal([]byte(`5`), &r))
		assert.Equal(t, 5.0, r.Min)
		assert.Zero(t, r.Max)
	})

	t.Run("object form", func(t *testing.T) {
		var r ExperienceRange
		require.NoError(t, json.Unmarshal([]byte(`{"min": 3, "max": 8}`), &r))
		assert.Equal(t, 3.0, r.Min)
		assert.Equal(t, 8.0, r.Max)
	})

	t.Run("inside a job offer", func(t *testing.T) {
		var j JobOffer
		require.NoError(t, json.Unmarshal([]byte(`{"id": "j1", "experience": 4}`), &j))
		assert.Equal(t, 4.0, j.Experience.Min)
	})
}

func TestConfidenceWeakest(t *testing.T) {
	assert.Equal(t, ConfidenceLow, ConfidenceHigh.Weakest(ConfidenceLow))
	assert.Equal(t, ConfidenceLow, ConfidenceLow.Weakest(ConfidenceMedium))
	assert.Equal(t, ConfidenceMedium, ConfidenceMedium.Weakest(ConfidenceHigh))
	assert.Equal(t, Confidence(""), ConfidenceMedium.Weakest(""))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-3))
	assert.Equal(t, 100.0, ClampScore(104.2))
	assert.Equal(t, 86.8, ClampScore(86.8))
}
