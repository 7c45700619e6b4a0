package catalog

import (
	"sort"
	"strings"

	"github.com/jonathan/question-matcher/internal/types"
)

// ByDifficulty returns up to limit entries of the given difficulty in ID order,
// optionally restricted to a category (case-insensitive). A non-positive limit
// returns every match.
func (idx *Index) ByDifficulty(difficulty types.Difficulty, category string, limit int) []*types.CatalogEntry {
	var out []*types.CatalogEntry
	for i := range idx.Len() {
		e := &idx.entries[i]
		if e.Difficulty != difficulty {
			continue
		}
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// ByCategory returns up to limit entries of a category ordered Easy to Hard, then by ID.
func (idx *Index) ByCategory(category string, limit int) []*types.CatalogEntry {
	var out []*types.CatalogEntry
	for i := range idx.Len() {
		e := &idx.entries[i]
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories returns every category with its entry count, largest first, then by name.
// Entries without a category are not counted.
func (idx *Index) Categories() []types.CategoryCount {
	counts := make(map[string]int)
	for i := range idx.Len() {
		if c := idx.entries[i].Category; c != "" {
			counts[c]++
		}
	}

	out := make([]types.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, types.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Stats counts entries per difficulty.
func (idx *Index) Stats() types.CatalogStats {
	stats := types.CatalogStats{Total: idx.Len()}
	for i := range idx.Len() {
		switch idx.entries[i].Difficulty {
		case types.DifficultyEasy:
			stats.Easy++
		case types.DifficultyMedium:
			stats.Medium++
		case types.DifficultyHard:
			stats.Hard++
		}
	}
	return stats
}
