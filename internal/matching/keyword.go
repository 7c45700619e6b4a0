package matching

import (
	"context"

	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

// minKeywordLen is the shortest token that counts as a required keyword.
const minKeywordLen = 3

// minKeywords is how many keywords a question needs before the keyword stage
// will score it. Single keyword hits are too unreliable.
const minKeywords = 2

// keywordStopWords is broader than the normalizer's filler list: it also
// drops pronouns, conjunctions, modal verbs and generic interview vocabulary.
var keywordStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true,
	"is": true, "was": true, "are": true, "were": true, "be": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "can": true,
	"may": true, "might": true, "must": true,
	"that": true, "this": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true, "they": true,
	"what": true, "which": true, "who": true, "where": true, "when": true, "why": true, "how": true,
	"implement": true, "design": true, "write": true, "create": true,
	"given": true, "return": true, "find": true,
	"question": true, "asked": true, "interview": true, "problem": true,
}

// KeywordMatcher scores catalog titles that contain every keyword of the question.
type KeywordMatcher struct{}

// Method implements Matcher.
func (KeywordMatcher) Method() types.MatchMethod { return types.MethodKeyword }

// Match implements Matcher. Below-threshold candidates are returned so the
// engine can log them; the engine decides acceptance.
func (KeywordMatcher) Match(_ context.Context, in Input) (Candidate, bool) {
	if in.Index.Len() == 0 {
		return Candidate{}, false
	}

	keywords := ExtractKeywords(in.Normalized)
	if len(keywords) < minKeywords {
		return Candidate{}, false
	}

	var best Candidate
	for _, c := range in.Index.CandidatesContaining(keywords, keywords) {
		// short tokens such as "ii" or "k" are not keywords and do not dilute the score
		confidence := float64(c.MatchCount) / float64(len(keywords))
		// candidates arrive in ID order, so strict > keeps the lowest ID on ties
		if best.Entry == nil || confidence > best.Confidence {
			best = Candidate{Entry: c.Entry, Confidence: confidence}
		}
	}

	if best.Entry == nil {
		return Candidate{}, false
	}
	best.Confidence = clamp(best.Confidence)
	return best, true
}

// ExtractKeywords returns the keywords of normalized text: tokens of length
// >= 3 that are not stop words, deduplicated in order.
func ExtractKeywords(normalized string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, tok := range normalize.Tokens(normalized) {
		if keywordStopWords[tok] || seen[tok] || len([]rune(tok)) < minKeywordLen {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}
