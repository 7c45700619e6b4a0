package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		in      string
		want    QuestionType
		wantErr bool
	}{
		{in: "", want: QuestionTypeNone},
		{in: "coding", want: QuestionTypeCoding},
		{in: "CODING", want: QuestionTypeCoding},
		{in: "system_design", want: QuestionTypeSystemDesign},
		{in: "system-design", want: QuestionTypeSystemDesign},
		{in: "behavioral", want: QuestionTypeBehavioral},
		{in: "technical", want: QuestionTypeTechnical},
		{in: "trivia", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuestionType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoMatch(t *testing.T) {
	r := NoMatch("Design a rate limiter")

	assert.False(t, r.Matched)
	assert.Nil(t, r.Entry)
	assert.Equal(t, 0.0, r.Confidence)
	assert.Equal(t, MethodNone, r.Method)
	assert.Equal(t, "Design a rate limiter", r.OriginalText)
	assert.Equal(t, "", r.Title())
}

func TestMatchQuery_Validate(t *testing.T) {
	q := MatchQuery{Text: "Two Sum", Type: QuestionTypeCoding}
	assert.NoError(t, q.Validate())

	q.Type = "poetry"
	assert.Error(t, q.Validate())

	q = MatchQuery{Text: ""}
	assert.NoError(t, q.Validate(), "empty text is handled by the input guard, not validation")
}
