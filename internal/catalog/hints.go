package catalog

import (
	"strings"

	"github.com/jonathan/question-matcher/internal/normalize"
)

type categoryKeywords struct {
	category string
	keywords []string
}

// categoryHintTable maps a problem category to phrases that suggest it.
// Order matters: hints are reported in this order.
var categoryHintTable = []categoryKeywords{
	{"Arrays & Hashing", []string{"array", "hash", "hashing", "hash table", "hashmap", "set"}},
	{"Two Pointers", []string{"two pointer", "pointers", "left right"}},
	{"Sliding Window", []string{"sliding window", "window", "substring"}},
	{"Linked List", []string{"linked list", "node", "reverse list"}},
	{"Trees", []string{"tree", "binary tree", "bst", "trie", "prefix tree"}},
	{"Graph", []string{"graph", "dfs", "bfs", "island", "clone graph"}},
	{"Dynamic Programming", []string{"dynamic programming", "dp", "memoization", "fibonacci", "knapsack"}},
	{"Heap", []string{"heap", "priority queue", "top k", "median"}},
	{"Intervals", []string{"interval", "merge interval", "meeting room"}},
	{"Bit Manipulation", []string{"bit", "xor", "binary"}},
}

// CategoryHints returns the categories whose hint phrases occur in text.
// Short hints ("dp", "bit", "set") must appear as whole words.
func CategoryHints(text string) []string {
	folded := normalize.Fold(text)
	if folded == "" {
		return nil
	}
	lower := " " + folded + " "

	var hints []string
	for _, ck := range categoryHintTable {
		for _, kw := range ck.keywords {
			if containsHint(lower, kw) {
				hints = append(hints, ck.category)
				break
			}
		}
	}
	return hints
}

func containsHint(padded, keyword string) bool {
	if len(keyword) <= 3 {
		return strings.Contains(padded, " "+keyword+" ")
	}
	return strings.Contains(padded, keyword)
}
