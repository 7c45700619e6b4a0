package catalog

import (
	"testing"

	"github.com/jonathan/question-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestIndex_ByDifficulty(t *testing.T) {
	idx := fixtureIndex(t)

	tests := []struct {
		name       string
		difficulty types.Difficulty
		category   string
		limit      int
		want       []int
	}{
		{name: "all hard", difficulty: types.DifficultyHard, want: []int{4, 127, 295}},
		{name: "easy linked list", difficulty: types.DifficultyEasy, category: "linked list", want: []int{21, 141, 206}},
		{name: "limited", difficulty: types.DifficultyEasy, category: "Linked List", limit: 2, want: []int{21, 141}},
		{name: "no hits", difficulty: types.DifficultyHard, category: "Stack", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(idx.ByDifficulty(tt.difficulty, tt.category, tt.limit)))
		})
	}
}

func TestIndex_ByCategory_OrdersEasyFirst(t *testing.T) {
	idx := fixtureIndex(t)

	assert.Equal(t, []int{133, 200, 127}, ids(idx.ByCategory("graph", 0)))
	assert.Equal(t, []int{705, 706}, ids(idx.ByCategory("Design", 2)))
	assert.Empty(t, idx.ByCategory("Math", 0))
}

func TestIndex_Categories(t *testing.T) {
	idx := fixtureIndex(t)

	got := idx.Categories()
	assert.Len(t, got, 12)
	assert.Equal(t, types.CategoryCount{Category: "Linked List", Count: 5}, got[0])
	assert.Equal(t, types.CategoryCount{Category: "Design", Count: 4}, got[1])

	// ties at three resolve alphabetically
	assert.Equal(t, "Dynamic Programming", got[2].Category)
	assert.Equal(t, "Graph", got[3].Category)
	assert.Equal(t, "Heap", got[4].Category)
	assert.Equal(t, "Trees", got[5].Category)
}

func TestIndex_Stats(t *testing.T) {
	idx := fixtureIndex(t)

	assert.Equal(t, types.CatalogStats{Total: 28, Easy: 11, Medium: 14, Hard: 3}, idx.Stats())
	assert.Equal(t, types.CatalogStats{}, EmptyIndex().Stats())
}
