package llm

import (
	"context"

	"github.com/jonathan/question-matcher/internal/matching"
	"github.com/jonathan/question-matcher/internal/ratelimit"
	"github.com/jonathan/question-matcher/internal/types"
)

// BudgetedSuggester bounds how often the wrapped suggester is called.
type BudgetedSuggester struct {
	Next   matching.TitleSuggester
	Bucket *ratelimit.TokenBucket
}

// NewBudgetedSuggester spends one token from bucket per forwarded call.
func NewBudgetedSuggester(next matching.TitleSuggester, bucket *ratelimit.TokenBucket) *BudgetedSuggester {
	return &BudgetedSuggester{Next: next, Bucket: bucket}
}

// SuggestTitle forwards to Next while tokens remain and returns
// ErrBudgetExhausted otherwise.
func (s *BudgetedSuggester) SuggestTitle(ctx context.Context, text string, hint types.QuestionType) (string, error) {
	if s.Bucket != nil && !s.Bucket.Allow() {
		return "", ErrBudgetExhausted
	}
	return s.Next.SuggestTitle(ctx, text, hint)
}
