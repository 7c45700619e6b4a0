package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/question-matcher/internal/prompts"
	"github.com/jonathan/question-matcher/internal/types"
)

// UnknownTitle is the answer the model gives when it cannot name the problem.
const UnknownTitle = "UNKNOWN"

// MinSuggestConfidence is the self-reported confidence below which a
// suggested title is discarded.
const MinSuggestConfidence = 0.7

// ClientSuggester asks a model for the title of the problem a question describes.
// It implements matching.TitleSuggester; suggestions are unconfirmed and the
// fallback stage looks them up in its catalog.
type ClientSuggester struct {
	Client Client
	Tier   ModelTier
	// Plain requests a bare title instead of a JSON object.
	Plain bool
}

// NewClientSuggester returns a suggester using the lite tier and JSON output.
func NewClientSuggester(client Client) *ClientSuggester {
	return &ClientSuggester{Client: client, Tier: TierLite}
}

type suggestResponse struct {
	Title      string   `json:"title"`
	Confidence *float64 `json:"confidence"`
}

// SuggestTitle returns the model's best title, or ErrUnknownTitle when the
// model declines or is not confident enough.
func (s *ClientSuggester) SuggestTitle(ctx context.Context, text string, hint types.QuestionType) (string, error) {
	if s.Plain {
		return s.suggestPlain(ctx, text)
	}

	prompt, err := prompts.Render(prompts.MatchingFile, "suggest-title", map[string]string{
		"Question": text,
		"TypeHint": hintLabel(hint),
	})
	if err != nil {
		return "", err
	}

	raw, err := s.Client.GenerateJSON(ctx, prompt, s.tier())
	if err != nil {
		return "", wrapCallError(err)
	}

	raw = CleanJSONBlock(raw)
	var resp suggestResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", &ParseError{Message: fmt.Sprintf("invalid suggestion %q", raw), Cause: err}
	}

	title := cleanSuggestedTitle(resp.Title)
	if isUnknown(title) {
		return "", ErrUnknownTitle
	}
	if resp.Confidence != nil && *resp.Confidence < MinSuggestConfidence {
		return "", ErrUnknownTitle
	}
	return title, nil
}

func (s *ClientSuggester) suggestPlain(ctx context.Context, text string) (string, error) {
	prompt, err := prompts.Render(prompts.MatchingFile, "suggest-title-plain", map[string]string{
		"Question": text,
	})
	if err != nil {
		return "", err
	}

	raw, err := s.Client.GenerateContent(ctx, prompt, s.tier())
	if err != nil {
		return "", wrapCallError(err)
	}

	// models sometimes append an explanation after the title
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
		raw = raw[:idx]
	}
	title := cleanSuggestedTitle(raw)
	if isUnknown(title) {
		return "", ErrUnknownTitle
	}
	return title, nil
}

func (s *ClientSuggester) tier() ModelTier {
	if s.Tier == "" {
		return TierLite
	}
	return s.Tier
}

func wrapCallError(err error) error {
	var apiErr *APICallError
	if errors.As(err, &apiErr) {
		return err
	}
	return &APICallError{Message: "suggest title", Cause: err}
}

func hintLabel(hint types.QuestionType) string {
	if hint == types.QuestionTypeNone {
		return "none"
	}
	return string(hint)
}

func cleanSuggestedTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`*")
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

func isUnknown(title string) bool {
	return title == "" || strings.EqualFold(title, UnknownTitle)
}
