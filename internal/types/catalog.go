// Package types provides type definitions for structured data shared across the question matcher.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Difficulty is the coarse difficulty label of a catalog problem
type Difficulty string

// Difficulty labels
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties Easy < Medium < Hard. Unknown labels rank last.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 4
	}
}

// ParseDifficulty parses a difficulty label case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// DifficultyFromNumeric maps the 1-5 ordinal scale onto a difficulty label.
// 1-2 are Easy, 3-4 Medium and 5 Hard.
func DifficultyFromNumeric(n int) (Difficulty, error) {
	switch {
	case n == 1 || n == 2:
		return DifficultyEasy, nil
	case n == 3 || n == 4:
		return DifficultyMedium, nil
	case n == 5:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("difficulty_numeric %d out of range 1-5", n)
	}
}

// CatalogEntry is a canonical problem record. Entries are immutable once indexed.
type CatalogEntry struct {
	ID                int        `json:"id" yaml:"id" validate:"gt=0"`
	Title             string     `json:"title" yaml:"title" validate:"required"`
	Slug              string     `json:"title_slug" yaml:"title_slug" validate:"required"`
	Difficulty        Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	DifficultyNumeric int        `json:"difficulty_numeric" yaml:"difficulty_numeric" validate:"min=1,max=5"`
	Category          string     `json:"category,omitempty" yaml:"category,omitempty"`
	Topics            []string   `json:"topics,omitempty" yaml:"topics,omitempty"`
	URL               string     `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
}

// Validate checks field constraints and that DifficultyNumeric agrees with Difficulty.
func (e *CatalogEntry) Validate() error {
	validate := validator.New()
	if err := validate.Struct(e); err != nil {
		return err
	}

	expected, err := DifficultyFromNumeric(e.DifficultyNumeric)
	if err != nil {
		return err
	}
	if expected != e.Difficulty {
		return fmt.Errorf("entry %d: difficulty_numeric %d does not agree with difficulty %s", e.ID, e.DifficultyNumeric, e.Difficulty)
	}
	return nil
}

// HasTopic reports whether the entry is tagged with topic (case-insensitive).
func (e *CatalogEntry) HasTopic(topic string) bool {
	for _, t := range e.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// CategoryCount is the number of catalog entries in a category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"problem_count"`
}

// CatalogStats summarises a catalog snapshot by difficulty
type CatalogStats struct {
	Total  int `json:"total_questions"`
	Easy   int `json:"easy_count"`
	Medium int `json:"medium_count"`
	Hard   int `json:"hard_count"`
}
