package normalize

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "  \t\n ", expected: ""},
		{name: "simple title", input: "Two Sum", expected: "two sum"},
		{name: "filler removed", input: "Reverse a linked list", expected: "reverse linked list"},
		{name: "framing verbs removed", input: "Implement an LRU cache", expected: "lru cache"},
		{name: "punctuation to space", input: "Implement Trie (Prefix Tree)", expected: "trie prefix tree"},
		{name: "collapse whitespace", input: "  valid    parentheses  ", expected: "valid parentheses"},
		{name: "hyphen splits", input: "Encode-and-Decode TinyURL", expected: "encode and decode tinyurl"},
		{name: "apostrophe dropped", input: "Pascal's Triangle", expected: "pascals triangle"},
		{name: "accents folded", input: "Café Résumé Problem", expected: "cafe resume problem"},
		{name: "digits kept", input: "3Sum Closest", expected: "3sum closest"},
		{name: "only filler", input: "the a an of", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"Two Sum",
		"Given an array, return the Two Sum!!",
		"  Design   Twitter -- the FEED  ",
		"Ünïcödé Ünîon-Find",
		"İstanbul trip question",
		"LRU cache (implement it)",
		"a", "", "   ",
		"Pow(x, n)",
		"Sqrt(x) — Newton's method",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}

	property := func(s string) bool {
		once := Text(s)
		return Text(once) == once
	}
	assert.NoError(t, quick.Check(property, nil))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "design twitter", Fold("Design Twitter"))
	assert.Equal(t, "implement trie prefix tree", Fold("Implement Trie (Prefix Tree)"))
	assert.Equal(t, "", Fold(""))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "two-sum", Slug("Two Sum"))
	assert.Equal(t, "pow-x-n", Slug("Pow(x, n)"))
	assert.Equal(t, "", Slug("   "))
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Two Sum (Easy)", expected: "Two Sum"},
		{input: "Merge Intervals [Medium]", expected: "Merge Intervals"},
		{input: "Word Ladder - Hard", expected: "Word Ladder"},
		{input: "LC #146 - LRU Cache", expected: "LRU Cache"},
		{input: "LC 1: Two Sum", expected: "Two Sum"},
		{input: "#20. Valid Parentheses", expected: "Valid Parentheses"},
		{input: "206. Reverse Linked List", expected: "Reverse Linked List"},
		{input: "3Sum", expected: "3Sum"},
		{input: "Top K Frequent Elements", expected: "Top K Frequent Elements"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTitle(tt.input))
		})
	}
}

func TestIsFiller(t *testing.T) {
	assert.True(t, IsFiller("implement"))
	assert.True(t, IsFiller("the"))
	assert.False(t, IsFiller("cache"))
}
