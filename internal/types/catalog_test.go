package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() CatalogEntry {
	return CatalogEntry{
		ID:                1,
		Title:             "Two Sum",
		Slug:              "two-sum",
		Difficulty:        DifficultyEasy,
		DifficultyNumeric: 1,
		Category:          "Arrays & Hashing",
		Topics:            []string{"Array", "Hash Table"},
		URL:               "https://leetcode.com/problems/two-sum/",
	}
}

func TestCatalogEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *CatalogEntry)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *CatalogEntry) {}},
		{name: "missing title", mutate: func(e *CatalogEntry) { e.Title = "" }, wantErr: true},
		{name: "zero id", mutate: func(e *CatalogEntry) { e.ID = 0 }, wantErr: true},
		{name: "bad difficulty", mutate: func(e *CatalogEntry) { e.Difficulty = "Trivial" }, wantErr: true},
		{name: "numeric out of range", mutate: func(e *CatalogEntry) { e.DifficultyNumeric = 6 }, wantErr: true},
		{name: "numeric disagrees", mutate: func(e *CatalogEntry) { e.DifficultyNumeric = 5 }, wantErr: true},
		{name: "bad url", mutate: func(e *CatalogEntry) { e.URL = "not a url" }, wantErr: true},
		{name: "empty url allowed", mutate: func(e *CatalogEntry) { e.URL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDifficultyFromNumeric(t *testing.T) {
	cases := map[int]Difficulty{
		1: DifficultyEasy,
		2: DifficultyEasy,
		3: DifficultyMedium,
		4: DifficultyMedium,
		5: DifficultyHard,
	}
	for n, want := range cases {
		got, err := DifficultyFromNumeric(n)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DifficultyFromNumeric(0)
	assert.Error(t, err)
}

func TestDifficultyRank_Monotonic(t *testing.T) {
	assert.Less(t, DifficultyEasy.Rank(), DifficultyMedium.Rank())
	assert.Less(t, DifficultyMedium.Rank(), DifficultyHard.Rank())
	assert.Greater(t, Difficulty("other").Rank(), DifficultyHard.Rank())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" medium ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}

func TestHasTopic(t *testing.T) {
	e := validEntry()
	assert.True(t, e.HasTopic("hash table"))
	assert.False(t, e.HasTopic("Graph"))
}
