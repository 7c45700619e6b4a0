// Package matching resolves free-text interview questions to catalog problems
// through an ordered cascade of matchers (exact, keyword, alias, fuzzy and a
// generative fallback). The first stage whose candidate clears its threshold wins.
package matching

import (
	"context"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/types"
)

// Activation thresholds. A stage's candidate is accepted only when its
// confidence is strictly greater than the stage threshold.
const (
	ExactThreshold   = 0.99
	KeywordThreshold = 0.85
	AliasThreshold   = 0.80
	FuzzyThreshold   = 0.75
	LLMThreshold     = 0.65
)

// Fixed confidences for stages that do not compute one.
const (
	ExactConfidence = 1.0
	AliasConfidence = 0.90
	LLMConfidence   = 0.70
)

// Input is what every stage sees for one question.
type Input struct {
	Raw        string             // text as supplied by the caller
	Cleaned    string             // Raw after normalize.CleanTitle
	Normalized string             // normalize.Text of Cleaned
	Type       types.QuestionType // optional hint
	Index      *catalog.Index     // snapshot captured for this call
}

// Candidate is a stage's proposal before threshold gating.
type Candidate struct {
	Entry      *types.CatalogEntry
	Confidence float64
}

// Matcher is one strategy in the cascade. Match returns false to abstain.
type Matcher interface {
	Method() types.MatchMethod
	Match(ctx context.Context, in Input) (Candidate, bool)
}

// Stage pairs a matcher with its activation threshold.
type Stage struct {
	Matcher   Matcher
	Threshold float64
}

// accepts reports whether c clears the stage threshold.
func (s Stage) accepts(c Candidate) bool {
	return c.Entry != nil && c.Confidence > s.Threshold
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
