package matching

import (
	"context"
	"strings"

	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

// ExactMatcher looks the normalized text up as a title, then as a slug.
type ExactMatcher struct{}

// Method implements Matcher.
func (ExactMatcher) Method() types.MatchMethod { return types.MethodExact }

// Match implements Matcher.
func (ExactMatcher) Match(_ context.Context, in Input) (Candidate, bool) {
	if in.Index.Len() == 0 || in.Normalized == "" {
		return Candidate{}, false
	}

	if e, ok := in.Index.FindByNormalizedTitle(in.Normalized); ok {
		return Candidate{Entry: e, Confidence: ExactConfidence}, true
	}

	// "design-hashmap" pasted from a problem url keeps its framing word
	slugs := []string{strings.ReplaceAll(in.Normalized, " ", "-"), normalize.Slug(in.Cleaned)}
	for _, slug := range slugs {
		if e, ok := in.Index.FindBySlug(slug); ok {
			return Candidate{Entry: e, Confidence: ExactConfidence}, true
		}
	}
	return Candidate{}, false
}
