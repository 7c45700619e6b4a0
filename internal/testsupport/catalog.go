// Package testsupport provides shared fixtures for matcher tests.
package testsupport

import (
	"fmt"

	"github.com/jonathan/question-matcher/internal/types"
)

func entry(id int, title, slug string, d types.Difficulty, numeric int, category string, topics ...string) types.CatalogEntry {
	return types.CatalogEntry{
		ID:                id,
		Title:             title,
		Slug:              slug,
		Difficulty:        d,
		DifficultyNumeric: numeric,
		Category:          category,
		Topics:            topics,
		URL:               fmt.Sprintf("https://leetcode.com/problems/%s/", slug),
	}
}

// Entries returns a small, realistic problem catalog. It deliberately has no
// rate limiter problem so rate limiter questions resolve to nothing.
func Entries() []types.CatalogEntry {
	const (
		easy   = types.DifficultyEasy
		medium = types.DifficultyMedium
		hard   = types.DifficultyHard
	)
	return []types.CatalogEntry{
		entry(1, "Two Sum", "two-sum", easy, 1, "Arrays & Hashing", "Array", "Hash Table"),
		entry(3, "Longest Substring Without Repeating Characters", "longest-substring-without-repeating-characters", medium, 3, "Sliding Window", "String"),
		entry(4, "Median of Two Sorted Arrays", "median-of-two-sorted-arrays", hard, 5, "Binary Search", "Array"),
		entry(15, "3Sum", "3sum", medium, 3, "Two Pointers", "Array"),
		entry(18, "4Sum", "4sum", medium, 4, "Two Pointers", "Array"),
		entry(20, "Valid Parentheses", "valid-parentheses", easy, 1, "Stack", "String"),
		entry(21, "Merge Two Sorted Lists", "merge-two-sorted-lists", easy, 1, "Linked List"),
		entry(56, "Merge Intervals", "merge-intervals", medium, 3, "Intervals", "Array", "Sorting"),
		entry(70, "Climbing Stairs", "climbing-stairs", easy, 1, "Dynamic Programming"),
		entry(92, "Reverse Linked List II", "reverse-linked-list-ii", medium, 4, "Linked List"),
		entry(104, "Maximum Depth of Binary Tree", "maximum-depth-of-binary-tree", easy, 1, "Trees"),
		entry(127, "Word Ladder", "word-ladder", hard, 5, "Graph", "BFS"),
		entry(133, "Clone Graph", "clone-graph", medium, 3, "Graph"),
		entry(141, "Linked List Cycle", "linked-list-cycle", easy, 2, "Linked List"),
		entry(146, "LRU Cache", "lru-cache", medium, 4, "Linked List", "Hash Table", "Design"),
		entry(198, "House Robber", "house-robber", medium, 3, "Dynamic Programming"),
		entry(200, "Number of Islands", "number-of-islands", medium, 3, "Graph"),
		entry(206, "Reverse Linked List", "reverse-linked-list", easy, 1, "Linked List"),
		entry(208, "Implement Trie (Prefix Tree)", "implement-trie-prefix-tree", medium, 3, "Trees", "Trie"),
		entry(226, "Invert Binary Tree", "invert-binary-tree", easy, 1, "Trees"),
		entry(295, "Find Median from Data Stream", "find-median-from-data-stream", hard, 5, "Heap"),
		entry(322, "Coin Change", "coin-change", medium, 3, "Dynamic Programming"),
		entry(347, "Top K Frequent Elements", "top-k-frequent-elements", medium, 3, "Heap"),
		entry(355, "Design Twitter", "design-twitter", medium, 4, "Heap", "Design"),
		entry(535, "Encode and Decode TinyURL", "encode-and-decode-tinyurl", medium, 3, "Design"),
		entry(705, "Design HashSet", "design-hashset", easy, 2, "Design"),
		entry(706, "Design HashMap", "design-hashmap", easy, 2, "Design"),
		entry(1603, "Design Parking System", "design-parking-system", easy, 1, "Design"),
	}
}
