package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuestionType is the optional hint describing what kind of interview question the text is
type QuestionType string

// Question type hints. QuestionTypeNone means no hint was given.
const (
	QuestionTypeNone         QuestionType = ""
	QuestionTypeCoding       QuestionType = "coding"
	QuestionTypeSystemDesign QuestionType = "system_design"
	QuestionTypeBehavioral   QuestionType = "behavioral"
	QuestionTypeTechnical    QuestionType = "technical"
)

// ParseQuestionType parses a question type hint. An empty string yields QuestionTypeNone.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(strings.ToLower(strings.TrimSpace(s))) {
	case QuestionTypeNone:
		return QuestionTypeNone, nil
	case QuestionTypeCoding:
		return QuestionTypeCoding, nil
	case QuestionTypeSystemDesign, "system-design", "systemdesign":
		return QuestionTypeSystemDesign, nil
	case QuestionTypeBehavioral:
		return QuestionTypeBehavioral, nil
	case QuestionTypeTechnical:
		return QuestionTypeTechnical, nil
	default:
		return "", fmt.Errorf("unknown question type %q", s)
	}
}

// MatchMethod names the strategy that produced a match
type MatchMethod string

// Match methods in cascade order
const (
	MethodExact   MatchMethod = "exact"
	MethodKeyword MatchMethod = "keyword"
	MethodAlias   MatchMethod = "alias"
	MethodFuzzy   MatchMethod = "fuzzy"
	MethodLLM     MatchMethod = "llm"
	MethodNone    MatchMethod = "none"
)

// MatchQuery is a single question to resolve
type MatchQuery struct {
	Text string       `json:"text" validate:"max=10000"`
	Type QuestionType `json:"type,omitempty" validate:"omitempty,oneof=coding system_design behavioral technical"`
}

// Validate validates the MatchQuery using the validator.
func (q *MatchQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}

// MatchResult is the outcome of matching one question.
// Entry points into the catalog snapshot the match ran against and must not be modified.
type MatchResult struct {
	Matched       bool          `json:"matched"`
	Entry         *CatalogEntry `json:"entry,omitempty"`
	Confidence    float64       `json:"confidence"`
	Method        MatchMethod   `json:"method"`
	OriginalText  string        `json:"original_text"`
	CategoryHints []string      `json:"category_hints,omitempty"`
}

// NoMatch returns the terminal result for text that resolved to nothing.
func NoMatch(text string) MatchResult {
	return MatchResult{
		Matched:      false,
		Confidence:   0,
		Method:       MethodNone,
		OriginalText: text,
	}
}

// Title returns the matched entry title or an empty string.
func (r MatchResult) Title() string {
	if r.Entry == nil {
		return ""
	}
	return r.Entry.Title
}

// BatchSummary tallies the outcome of a batch of matches
type BatchSummary struct {
	Total     int                 `json:"total"`
	Matched   int                 `json:"matched"`
	Unmatched int                 `json:"unmatched"`
	MatchRate float64             `json:"match_rate"`
	ByMethod  map[MatchMethod]int `json:"by_method"`
}
