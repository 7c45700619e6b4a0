package matching

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/question-matcher/internal/aliases"
	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

// Config configures the default cascade.
type Config struct {
	Aliases         *aliases.Table // nil disables the alias stage
	Suggester       TitleSuggester // nil disables the fallback stage
	FallbackTimeout time.Duration
	FuzzyPoolSize   int
	Guard           *Guard // nil means DefaultGuard
	Workers         int    // MatchMany parallelism; zero means GOMAXPROCS
	Logger          *slog.Logger
}

// Engine runs the matching cascade against the store's current snapshot.
// It is safe for concurrent use.
type Engine struct {
	store   *catalog.Store
	stages  []Stage
	guard   *Guard
	workers int
	logger  *slog.Logger

	// last empty snapshot we warned about, so the warning fires once per refresh
	warnedEmpty atomic.Pointer[catalog.Index]
}

// NewEngine builds an engine with the default five-stage cascade.
func NewEngine(store *catalog.Store, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	guard := cfg.Guard
	if guard == nil {
		guard = DefaultGuard()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Engine{
		store:   store,
		stages:  DefaultStages(cfg, logger),
		guard:   guard,
		workers: workers,
		logger:  logger,
	}
}

// DefaultStages returns Exact, Keyword, Alias, Fuzzy and Fallback in order
// with their activation thresholds.
func DefaultStages(cfg Config, logger *slog.Logger) []Stage {
	return []Stage{
		{Matcher: ExactMatcher{}, Threshold: ExactThreshold},
		{Matcher: KeywordMatcher{}, Threshold: KeywordThreshold},
		{Matcher: AliasMatcher{Table: cfg.Aliases}, Threshold: AliasThreshold},
		{Matcher: FuzzyMatcher{PoolSize: cfg.FuzzyPoolSize}, Threshold: FuzzyThreshold},
		{Matcher: FallbackMatcher{Suggester: cfg.Suggester, Timeout: cfg.FallbackTimeout, Logger: logger}, Threshold: LLMThreshold},
	}
}

// WithStages returns a copy of the engine running stages instead of its current cascade.
func (e *Engine) WithStages(stages ...Stage) *Engine {
	return &Engine{
		store:   e.store,
		stages:  append([]Stage(nil), stages...),
		guard:   e.guard,
		workers: e.workers,
		logger:  e.logger,
	}
}

// Stages returns the cascade in order.
func (e *Engine) Stages() []Stage {
	return append([]Stage(nil), e.stages...)
}

// Snapshot returns the catalog snapshot the next match will run against.
func (e *Engine) Snapshot() *catalog.Index {
	return e.store.Snapshot()
}

// MatchQuestion resolves one question. It never returns an error: invalid
// input, abstaining stages and fallback failures all end in a NoMatch result.
func (e *Engine) MatchQuestion(ctx context.Context, text string, hint types.QuestionType) types.MatchResult {
	if err := e.guard.Check(text); err != nil {
		e.logger.Debug("question rejected", "reason", err)
		return types.NoMatch(text)
	}

	idx := e.store.Snapshot()
	if idx.Len() == 0 {
		e.warnEmpty(idx)
	}

	cleaned := normalize.CleanTitle(text)
	in := Input{
		Raw:        text,
		Cleaned:    cleaned,
		Normalized: normalize.Text(cleaned),
		Type:       hint,
		Index:      idx,
	}
	hints := catalog.CategoryHints(cleaned)

	if in.Normalized == "" {
		res := types.NoMatch(text)
		res.CategoryHints = hints
		return res
	}

	for _, stage := range e.stages {
		if stage.Matcher == nil {
			continue
		}
		method := stage.Matcher.Method()

		candidate, ok := stage.Matcher.Match(ctx, in)
		if !ok {
			continue
		}
		if !stage.accepts(candidate) {
			e.logger.Debug("candidate below threshold",
				"method", method,
				"confidence", candidate.Confidence,
				"threshold", stage.Threshold,
			)
			continue
		}

		e.logger.Debug("question matched",
			"method", method,
			"id", candidate.Entry.ID,
			"title", candidate.Entry.Title,
			"confidence", candidate.Confidence,
		)
		return types.MatchResult{
			Matched:       true,
			Entry:         candidate.Entry,
			Confidence:    clamp(candidate.Confidence),
			Method:        method,
			OriginalText:  text,
			CategoryHints: hints,
		}
	}

	res := types.NoMatch(text)
	res.CategoryHints = hints
	return res
}

// MatchMany resolves every query using a bounded worker pool. Results are in
// input order.
func (e *Engine) MatchMany(ctx context.Context, queries []types.MatchQuery) []types.MatchResult {
	results := make([]types.MatchResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = e.MatchQuestion(ctx, q.Text, q.Type)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(results)
	e.logger.Info("batch matched",
		"total", summary.Total,
		"matched", summary.Matched,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results
}

// Summarize tallies results by outcome and method.
func Summarize(results []types.MatchResult) types.BatchSummary {
	summary := types.BatchSummary{
		Total:    len(results),
		ByMethod: make(map[types.MatchMethod]int),
	}
	for _, r := range results {
		summary.ByMethod[r.Method]++
		if r.Matched {
			summary.Matched++
		}
	}
	summary.Unmatched = summary.Total - summary.Matched
	if summary.Total > 0 {
		summary.MatchRate = float64(summary.Matched) / float64(summary.Total)
	}
	return summary
}

func (e *Engine) warnEmpty(idx *catalog.Index) {
	if e.warnedEmpty.Swap(idx) != idx {
		e.logger.Warn("catalog is empty; lexical stages will abstain")
	}
}

// ParseHint is types.ParseQuestionType that treats unknown hints as no hint.
func ParseHint(s string) types.QuestionType {
	hint, err := types.ParseQuestionType(strings.TrimSpace(s))
	if err != nil {
		return types.QuestionTypeNone
	}
	return hint
}
