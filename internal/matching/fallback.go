package matching

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/question-matcher/internal/types"
)

// DefaultFallbackTimeout bounds a single SuggestTitle call.
const DefaultFallbackTimeout = 8 * time.Second

// TitleSuggester proposes the canonical problem title a question refers to.
// Implementations return an error when they do not know; the fallback stage
// treats every error as an abstention.
type TitleSuggester interface {
	SuggestTitle(ctx context.Context, text string, hint types.QuestionType) (string, error)
}

type suggestion struct {
	title string
	err   error
}

// FallbackMatcher asks a TitleSuggester for a title and accepts it only when
// the title exists in the catalog. It never retries, and an answer that arrives
// after Timeout is discarded. The suggester receives the caller's original text.
type FallbackMatcher struct {
	Suggester TitleSuggester
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Method implements Matcher.
func (FallbackMatcher) Method() types.MatchMethod { return types.MethodLLM }

// Match implements Matcher.
func (m FallbackMatcher) Match(ctx context.Context, in Input) (Candidate, bool) {
	if m.Suggester == nil || in.Index.Len() == 0 {
		return Candidate{}, false
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultFallbackTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The call runs on its own goroutine so a suggester that ignores callCtx
	// cannot hold the cascade past the timeout. done is buffered so the
	// goroutine exits once the late answer arrives.
	done := make(chan suggestion, 1)
	go func() {
		title, err := m.Suggester.SuggestTitle(callCtx, in.Raw, in.Type)
		done <- suggestion{title: title, err: err}
	}()

	var title string
	select {
	case <-callCtx.Done():
		m.logger().Warn("fallback abstained", "error", callCtx.Err())
		return Candidate{}, false
	case s := <-done:
		if s.err == nil && callCtx.Err() != nil {
			s.err = callCtx.Err()
		}
		if s.err != nil {
			level := slog.LevelDebug
			if errors.Is(s.err, context.DeadlineExceeded) {
				level = slog.LevelWarn
			}
			m.logger().Log(ctx, level, "fallback abstained", "error", s.err)
			return Candidate{}, false
		}
		title = s.title
	}

	title = strings.TrimSpace(title)
	e, ok := in.Index.FindByTitleFold(title)
	if !ok {
		m.logger().Debug("fallback suggestion not in catalog", "title", title)
		return Candidate{}, false
	}
	return Candidate{Entry: e, Confidence: LLMConfidence}, true
}

func (m FallbackMatcher) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
