//go:build integration

package llm

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/question-matcher/internal/types"
)

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	cache, err := NewRedisCache(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	key := SuggestionKey("integration word ladder "+time.Now().String(), types.QuestionTypeCoding)

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, "Word Ladder", time.Minute))
	val, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Word Ladder", val)

	next := &countingSuggester{title: "Word Ladder"}
	s := &CachedSuggester{Next: next, Cache: cache, TTL: time.Minute}
	for i := 0; i < 2; i++ {
		title, err := s.SuggestTitle(ctx, "integration transformation "+key, types.QuestionTypeCoding)
		require.NoError(t, err)
		assert.Equal(t, "Word Ladder", title)
	}
	assert.Equal(t, 1, next.calls)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "127.0.0.1:1", "", 0)
	assert.ErrorContains(t, err, "failed to connect to redis")
}
