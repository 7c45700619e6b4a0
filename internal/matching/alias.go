package matching

import (
	"context"

	"github.com/jonathan/question-matcher/internal/aliases"
	"github.com/jonathan/question-matcher/internal/types"
)

// AliasMatcher expands curated colloquial phrases into canonical title variants.
type AliasMatcher struct {
	Table *aliases.Table
}

// Method implements Matcher.
func (AliasMatcher) Method() types.MatchMethod { return types.MethodAlias }

// Match implements Matcher. Phrases are tried in declaration order; the first
// phrase with a target that resolves in the catalog wins.
func (m AliasMatcher) Match(_ context.Context, in Input) (Candidate, bool) {
	if in.Index.Len() == 0 || m.Table.Len() == 0 {
		return Candidate{}, false
	}

	for _, alias := range m.Table.Matching(in.Normalized) {
		for _, target := range alias.Targets {
			if e, ok := in.Index.FindVariant(target); ok {
				return Candidate{Entry: e, Confidence: AliasConfidence}, true
			}
		}
	}
	return Candidate{}, false
}
