package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/question-matcher/internal/ratelimit"
	"github.com/jonathan/question-matcher/internal/types"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	readErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return "", false, c.readErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

type countingSuggester struct {
	mu    sync.Mutex
	calls int
	title string
	err   error
}

func (s *countingSuggester) SuggestTitle(_ context.Context, _ string, _ types.QuestionType) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.title, s.err
}

func TestCachedSuggester_CachesTitle(t *testing.T) {
	next := &countingSuggester{title: "Word Ladder"}
	cache := newMemCache()
	s := &CachedSuggester{Next: next, Cache: cache}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		title, err := s.SuggestTitle(ctx, "Word transformation puzzle", types.QuestionTypeCoding)
		require.NoError(t, err)
		assert.Equal(t, "Word Ladder", title)
	}
	assert.Equal(t, 1, next.calls)

	key := SuggestionKey("Word transformation puzzle", types.QuestionTypeCoding)
	assert.Equal(t, DefaultSuggestionTTL, cache.ttls[key])
}

func TestCachedSuggester_CachesUnknown(t *testing.T) {
	next := &countingSuggester{err: ErrUnknownTitle}
	s := &CachedSuggester{Next: next, Cache: newMemCache(), TTL: time.Minute}

	for i := 0; i < 2; i++ {
		_, err := s.SuggestTitle(context.Background(), "design a rate limiter", types.QuestionTypeSystemDesign)
		assert.ErrorIs(t, err, ErrUnknownTitle)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedSuggester_DoesNotCacheFailures(t *testing.T) {
	next := &countingSuggester{err: &APICallError{Message: "boom"}}
	s := &CachedSuggester{Next: next, Cache: newMemCache()}

	for i := 0; i < 2; i++ {
		_, err := s.SuggestTitle(context.Background(), "word ladder puzzle", types.QuestionTypeCoding)
		assert.Error(t, err)
	}
	assert.Equal(t, 2, next.calls)
}

func TestCachedSuggester_ReadErrorFallsThrough(t *testing.T) {
	next := &countingSuggester{title: "Two Sum"}
	cache := newMemCache()
	cache.readErr = errors.New("connection refused")
	s := &CachedSuggester{Next: next, Cache: cache}

	title, err := s.SuggestTitle(context.Background(), "pair sum", types.QuestionTypeCoding)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", title)
	assert.Equal(t, 1, next.calls)
}

func TestSuggestionKey(t *testing.T) {
	a := SuggestionKey("  Reverse a Linked-List! ", types.QuestionTypeCoding)
	b := SuggestionKey("reverse a linked list", types.QuestionTypeCoding)
	c := SuggestionKey("reverse a linked list", types.QuestionTypeNone)

	assert.Equal(t, a, b)
	assert.NotEqual(t, b, c)
	assert.Regexp(t, `^qm:suggest:[0-9a-f]{64}$`, a)
}

func TestBudgetedSuggester(t *testing.T) {
	next := &countingSuggester{title: "Two Sum"}
	s := NewBudgetedSuggester(next, ratelimit.NewTokenBucket(2, 0))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		title, err := s.SuggestTitle(ctx, "pair sum", types.QuestionTypeCoding)
		require.NoError(t, err)
		assert.Equal(t, "Two Sum", title)
	}

	_, err := s.SuggestTitle(ctx, "pair sum", types.QuestionTypeCoding)
	assert.ErrorIs(t, err, ErrBudgetExhausted)
	assert.Equal(t, 2, next.calls)
}

func TestBudgetedSuggester_NilBucket(t *testing.T) {
	next := &countingSuggester{title: "Two Sum"}
	s := &BudgetedSuggester{Next: next}

	for i := 0; i < 5; i++ {
		_, err := s.SuggestTitle(context.Background(), "pair sum", types.QuestionTypeCoding)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, next.calls)
}

func TestCachedBudget_HitsDoNotSpend(t *testing.T) {
	next := &countingSuggester{title: "Two Sum"}
	s := &CachedSuggester{
		Next:  NewBudgetedSuggester(next, ratelimit.NewTokenBucket(1, 0)),
		Cache: newMemCache(),
	}

	for i := 0; i < 3; i++ {
		_, err := s.SuggestTitle(context.Background(), "pair sum", types.QuestionTypeCoding)
		require.NoError(t, err)
	}

	_, err := s.SuggestTitle(context.Background(), "another question", types.QuestionTypeCoding)
	assert.ErrorIs(t, err, ErrBudgetExhausted)
}
