package strategy

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Token counts that set the confidence label.
const (
	minSemanticTokens  = 5
	richSemanticTokens = 30
)

// Shares of the two similarity components in the blended score.
const (
	jaccardShare = 0.4
	cosineShare  = 0.6
)

// Common words carrying no signal for skill matching.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"in": true, "is": true, "it": true, "of": true, "on": true, "or": true,
	"our": true, "the": true, "to": true, "we": true, "with": true, "you": true,
	"your": true, "will": true, "this": true, "that": true, "they": true,
}

// Semantic compares the candidate's skill and summary text against the
// job description, blending token-set overlap with a term-frequency
// cosine similarity.
type Semantic struct{}

// NewSemantic creates the semantic strategy.
func NewSemantic() *Semantic { return &Semantic{} }

// Name implements Strategy.
func (s *Semantic) Name() string { return NameSemantic }

// Score implements Strategy.
func (s *Semantic) Score(_ context.Context, candidate types.Candidate, job types.JobOffer, _ weighting.Profile) (types.MatchScore, error) {
	candidateText := strings.Join(candidate.Skills, " ") + " " + candidate.Summary
	jobText := job.Description
	if looksLikeHTML(jobText) {
		if text, err := stripHTML(jobText); err == nil {
			jobText = text
		}
	}

	candTokens := tokenize(candidateText)
	jobTokens := tokenize(jobText)

	jac := jaccard(candTokens, jobTokens)
	cos := cosine(termFrequencies(candTokens), termFrequencies(jobTokens))
	score := (jac*jaccardShare + cos*cosineShare) * 100

	details := []string{
		fmt.Sprintf("token overlap %.0f%%, term similarity %.0f%%", jac*100, cos*100),
	}
	if shared := sharedTokens(candTokens, jobTokens, 8); len(shared) > 0 {
		details = append(details, "shared terms: "+strings.Join(shared, ", "))
	}

	return types.MatchScore{
		Overall:  types.ClampScore(score),
		Strategy: NameSemantic,
		Criteria: []types.CriterionScore{
			{Name: weighting.Skills, Score: types.ClampScore(score), Details: details},
		},
		Confidence: semanticConfidence(len(candTokens), len(jobTokens)),
	}, nil
}

// semanticConfidence labels the score by how much text backed it.
func semanticConfidence(candTokens, jobTokens int) types.Confidence {
	switch {
	case candTokens < minSemanticTokens || jobTokens < minSemanticTokens:
		return types.ConfidenceLow
	case candTokens >= richSemanticTokens && jobTokens >= richSemanticTokens:
		return types.ConfidenceHigh
	default:
		return types.ConfidenceMedium
	}
}

// looksLikeHTML is a cheap markup sniff; false positives only cost a
// harmless parse.
func looksLikeHTML(text string) bool {
	return strings.ContainsRune(text, '<') && strings.ContainsRune(text, '>')
}

// stripHTML reduces a marked-up description to its visible text.
func stripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Text(), nil
}

// tokenize lowercases, splits on non-alphanumerics, and drops stopwords
// and single characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

// jaccard is intersection over union of the two token sets.
func jaccard(a, b []string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

// cosine is the cosine similarity of the two term-frequency vectors.
func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for tok, fa := range a {
		magA += fa * fa
		if fb, ok := b[tok]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range b {
		magB += fb * fb
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// sharedTokens returns up to limit tokens present in both texts, sorted
// for deterministic output.
func sharedTokens(a, b []string, limit int) []string {
	setB := tokenSet(b)
	seen := make(map[string]bool)
	var shared []string
	for _, tok := range a {
		if setB[tok] && !seen[tok] {
			seen[tok] = true
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)
	if len(shared) > limit {
		shared = shared[:limit]
	}
	return shared
}
