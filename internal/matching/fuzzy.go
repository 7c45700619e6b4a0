package matching

import (
	"context"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/types"
)

// FuzzyFloor is the similarity below which the fuzzy stage abstains outright.
const FuzzyFloor = 0.50

// FuzzyMatcher picks the catalog title with the smallest normalized edit distance.
type FuzzyMatcher struct {
	// PoolSize caps the candidate pool; zero means catalog.DefaultPoolLimit.
	PoolSize int
}

// Method implements Matcher.
func (FuzzyMatcher) Method() types.MatchMethod { return types.MethodFuzzy }

// Match implements Matcher.
func (m FuzzyMatcher) Match(_ context.Context, in Input) (Candidate, bool) {
	if in.Index.Len() == 0 || in.Normalized == "" {
		return Candidate{}, false
	}

	query := []rune(in.Normalized)
	var best Candidate
	for _, e := range in.Index.CandidatesByType(in.Type, m.poolSize()) {
		title := []rune(in.Index.NormalizedTitle(e))

		bound := similarityBound(len(query), len(title))
		if bound < FuzzyFloor || (best.Entry != nil && bound <= best.Confidence) {
			continue
		}

		score := runeSimilarity(query, title)
		if score < FuzzyFloor {
			continue
		}
		// pool is in ID order; strict > keeps the lowest ID on ties
		if best.Entry == nil || score > best.Confidence {
			best = Candidate{Entry: e, Confidence: score}
		}
	}

	if best.Entry == nil {
		return Candidate{}, false
	}
	return best, true
}

func (m FuzzyMatcher) poolSize() int {
	if m.PoolSize <= 0 {
		return catalog.DefaultPoolLimit
	}
	return m.PoolSize
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) measured in
// runes. It is symmetric, lies in [0, 1] and is 1 for two empty strings.
func Similarity(a, b string) float64 {
	return runeSimilarity([]rune(a), []rune(b))
}

func runeSimilarity(a, b []rune) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	return clamp(1 - float64(levenshtein(a, b))/float64(longest))
}

// similarityBound is the best similarity two strings of these lengths can reach:
// the edit distance is at least their length difference.
func similarityBound(la, lb int) float64 {
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(longest)
}

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	return levenshtein([]rune(a), []rune(b))
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
