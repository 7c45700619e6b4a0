package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"title\": \"Two Sum\"}\n```",
			expected: `{"title": "Two Sum"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"title\": \"Two Sum\"}\n```",
			expected: `{"title": "Two Sum"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"title\": \"Two Sum\"}\n```",
			expected: `{"title": "Two Sum"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"title": "Two Sum"}`,
			expected: `{"title": "Two Sum"}`,
		},
		{
			name:     "no JSON at all",
			input:    "  UNKNOWN \n",
			expected: "UNKNOWN",
		},
		{
			name:     "unbalanced JSON is left alone",
			input:    `{"title": "Two Sum"`,
			expected: `{"title": "Two Sum"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the JSON:\n{\"title\": \"LRU Cache\"}",
			expected: `{"title": "LRU Cache"}`,
		},
		{
			name:     "conversational preamble",
			input:    "This sounds like a classic graph traversal. Here's my answer:\n\n{\"title\": \"Word Ladder\", \"confidence\": 0.8}",
			expected: `{"title": "Word Ladder", "confidence": 0.8}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the candidates:\n[\"Two Sum\", \"3Sum\"]",
			expected: `["Two Sum", "3Sum"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"title\": \"Two Sum\"}\n\nLet me know if you need anything else!",
			expected: `{"title": "Two Sum"}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"match\": {\"title\": \"Two Sum\"}}",
			expected: `{"match": {"title": "Two Sum"}}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"title\": \"He said \\\"hello\\\"\"}",
			expected: `{"title": "He said \"hello\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple object", input: `{"key": "value"}`, expected: `{"key": "value"}`},
		{name: "object with array", input: `{"items": [1, 2, 3]}`, expected: `{"items": [1, 2, 3]}`},
		{name: "object with trailing text", input: `{"key": "value"} and more`, expected: `{"key": "value"}`},
		{name: "string with braces inside", input: `{"template": "Hello {name}!"}`, expected: `{"template": "Hello {name}!"}`},
		{name: "empty input", input: "", expected: ""},
		{name: "not starting with brace", input: "not json", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "nested arrays", input: `[[1, 2], [3, 4]]`, expected: `[[1, 2], [3, 4]]`},
		{name: "array of objects", input: `[{"id": 1}, {"id": 2}]`, expected: `[{"id": 1}, {"id": 2}]`},
		{name: "array with trailing text", input: `[1, 2, 3] extra`, expected: `[1, 2, 3]`},
		{name: "bracket inside string", input: `["a]", "b"]`, expected: `["a]", "b"]`},
		{name: "not starting with bracket", input: "not array", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONArray(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONArray() = %q, want %q", result, tt.expected)
			}
		})
	}
}
