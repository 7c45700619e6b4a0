package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/question-matcher/internal/matching"
	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

// DefaultSuggestionTTL is how long a suggestion stays cached.
const DefaultSuggestionTTL = 24 * time.Hour

const (
	suggestKeyPrefix = "qm:suggest:"
	unknownMarker    = "\x00unknown"
)

// Cache is the key/value store behind CachedSuggester.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache implements Cache on a Redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("connected to redis", "addr", addr, "db", db)
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached value. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedSuggester memoizes another suggester's answers, including "unknown"
// answers. Cache failures are logged and the wrapped suggester is used.
type CachedSuggester struct {
	Next   matching.TitleSuggester
	Cache  Cache
	TTL    time.Duration
	Logger *slog.Logger
}

// SuggestTitle returns a cached answer when present, otherwise asks Next and
// stores the outcome. Errors other than ErrUnknownTitle are never cached.
func (s *CachedSuggester) SuggestTitle(ctx context.Context, text string, hint types.QuestionType) (string, error) {
	key := SuggestionKey(text, hint)
	log := s.logger()

	if val, ok, err := s.Cache.Get(ctx, key); err != nil {
		log.Warn("suggestion cache read failed", "error", err)
	} else if ok {
		if val == unknownMarker {
			return "", ErrUnknownTitle
		}
		return val, nil
	}

	title, err := s.Next.SuggestTitle(ctx, text, hint)
	switch {
	case errors.Is(err, ErrUnknownTitle):
		s.store(ctx, key, unknownMarker)
		return "", err
	case err != nil:
		return "", err
	}

	s.store(ctx, key, title)
	return title, nil
}

func (s *CachedSuggester) store(ctx context.Context, key, value string) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	if err := s.Cache.Set(ctx, key, value, ttl); err != nil {
		s.logger().Warn("suggestion cache write failed", "error", err)
	}
}

func (s *CachedSuggester) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// SuggestionKey derives the cache key for a question. Texts that normalize
// to the same string share a key.
func SuggestionKey(text string, hint types.QuestionType) string {
	sum := sha256.Sum256([]byte(string(hint) + "|" + normalize.Text(text)))
	return suggestKeyPrefix + hex.EncodeToString(sum[:])
}
