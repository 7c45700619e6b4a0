// Package catalog provides the read-only problem catalog index the matchers query,
// and the Store that swaps whole index snapshots on refresh.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

// DefaultPoolLimit caps the fuzzy candidate pool.
const DefaultPoolLimit = 1000

// shortKeywordLen is the length below which a keyword only counts on whole-token equality.
const shortKeywordLen = 3

// Index is an immutable view over a full catalog with precomputed lookup keys.
// Entries are held in ascending ID order; every tie-break in this package
// therefore resolves to the lowest ID by iterating in order.
type Index struct {
	entries    []types.CatalogEntry
	normalized []string
	folded     []string
	tokens     []map[string]bool

	byNormalized map[string]int
	bySlug       map[string]int
	byTitle      map[string]int
}

// KeywordCandidate is an entry containing every required keyword, with the
// number of scored keywords it satisfies.
type KeywordCandidate struct {
	Entry      *types.CatalogEntry
	MatchCount int
}

// NewIndex validates and indexes entries. The input slice is copied.
func NewIndex(entries []types.CatalogEntry) (*Index, error) {
	sorted := make([]types.CatalogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idx := &Index{
		entries:      sorted,
		normalized:   make([]string, len(sorted)),
		folded:       make([]string, len(sorted)),
		tokens:       make([]map[string]bool, len(sorted)),
		byNormalized: make(map[string]int, len(sorted)),
		bySlug:       make(map[string]int, len(sorted)),
		byTitle:      make(map[string]int, len(sorted)),
	}

	for i := range sorted {
		e := &sorted[i]
		if err := e.Validate(); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid entry %d (%q)", e.ID, e.Title), Cause: err}
		}
		if i > 0 && sorted[i-1].ID == e.ID {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}

		e.Topics = append([]string(nil), e.Topics...)

		idx.normalized[i] = normalize.Text(e.Title)
		idx.folded[i] = normalize.Fold(e.Title)
		idx.tokens[i] = make(map[string]bool)
		for _, tok := range normalize.Tokens(idx.normalized[i]) {
			idx.tokens[i][tok] = true
		}

		// First writer wins: entries are in ID order, so collisions keep the lowest ID.
		if key := idx.normalized[i]; key != "" {
			if _, exists := idx.byNormalized[key]; !exists {
				idx.byNormalized[key] = i
			}
		}
		if slug := strings.ToLower(strings.TrimSpace(e.Slug)); slug != "" {
			if _, exists := idx.bySlug[slug]; !exists {
				idx.bySlug[slug] = i
			}
		}
		if title := titleKey(e.Title); title != "" {
			if _, exists := idx.byTitle[title]; !exists {
				idx.byTitle[title] = i
			}
		}
	}

	return idx, nil
}

// MustIndex is NewIndex that panics on invalid input. Intended for tests and fixtures.
func MustIndex(entries []types.CatalogEntry) *Index {
	idx, err := NewIndex(entries)
	if err != nil {
		panic(err)
	}
	return idx
}

// EmptyIndex returns an index with no entries.
func EmptyIndex() *Index {
	return MustIndex(nil)
}

func titleKey(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entry returns the entry with the given ID.
func (idx *Index) Entry(id int) (*types.CatalogEntry, bool) {
	if idx.Len() == 0 {
		return nil, false
	}
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].ID >= id })
	if i < len(idx.entries) && idx.entries[i].ID == id {
		return &idx.entries[i], true
	}
	return nil, false
}

// Entries returns pointers to every entry in ID order.
func (idx *Index) Entries() []*types.CatalogEntry {
	out := make([]*types.CatalogEntry, idx.Len())
	for i := range out {
		out[i] = &idx.entries[i]
	}
	return out
}

// FindByNormalizedTitle looks up an entry by the normalized form of its title.
func (idx *Index) FindByNormalizedTitle(key string) (*types.CatalogEntry, bool) {
	if idx.Len() == 0 || key == "" {
		return nil, false
	}
	if i, ok := idx.byNormalized[key]; ok {
		return &idx.entries[i], true
	}
	return nil, false
}

// FindBySlug looks up an entry by its url slug.
func (idx *Index) FindBySlug(slug string) (*types.CatalogEntry, bool) {
	if idx.Len() == 0 || slug == "" {
		return nil, false
	}
	if i, ok := idx.bySlug[strings.ToLower(slug)]; ok {
		return &idx.entries[i], true
	}
	return nil, false
}

// FindByTitleFold looks up an entry whose title equals title case-insensitively.
func (idx *Index) FindByTitleFold(title string) (*types.CatalogEntry, bool) {
	if idx.Len() == 0 {
		return nil, false
	}
	key := titleKey(title)
	if key == "" {
		return nil, false
	}
	if i, ok := idx.byTitle[key]; ok {
		return &idx.entries[i], true
	}
	return nil, false
}

// CandidatesContaining returns, in ID order, the entries whose normalized title
// contains every required keyword as a substring. MatchCount is the number of
// scored keywords the title satisfies; keywords shorter than three characters
// only count when they equal a whole title token.
func (idx *Index) CandidatesContaining(required, scored []string) []KeywordCandidate {
	if idx.Len() == 0 || len(required) == 0 {
		return nil
	}

	var out []KeywordCandidate
	for i := range idx.entries {
		title := idx.normalized[i]
		all := true
		for _, kw := range required {
			if !strings.Contains(title, kw) {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		count := 0
		for _, kw := range scored {
			if idx.satisfies(i, kw) {
				count++
			}
		}
		out = append(out, KeywordCandidate{Entry: &idx.entries[i], MatchCount: count})
	}
	return out
}

func (idx *Index) satisfies(i int, keyword string) bool {
	if len(keyword) < shortKeywordLen {
		return idx.tokens[i][keyword]
	}
	return strings.Contains(idx.normalized[i], keyword)
}

// CandidatesByType returns up to limit entries, in ID order, whose title or
// category fits the question type. Coding excludes design-flavored problems,
// system design keeps only them, and every other hint is unrestricted.
// A non-positive limit means DefaultPoolLimit.
func (idx *Index) CandidatesByType(hint types.QuestionType, limit int) []*types.CatalogEntry {
	if idx.Len() == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultPoolLimit
	}

	out := make([]*types.CatalogEntry, 0, min(limit, len(idx.entries)))
	for i := range idx.entries {
		if len(out) >= limit {
			break
		}
		switch hint {
		case types.QuestionTypeCoding:
			if idx.isSystemFlavored(i) {
				continue
			}
		case types.QuestionTypeSystemDesign:
			if !idx.isDesignFlavored(i) {
				continue
			}
		}
		out = append(out, &idx.entries[i])
	}
	return out
}

// NormalizedTitle returns the precomputed normalized title of an entry in this index.
func (idx *Index) NormalizedTitle(e *types.CatalogEntry) string {
	if i, ok := idx.position(e); ok {
		return idx.normalized[i]
	}
	return normalize.Text(e.Title)
}

func (idx *Index) position(e *types.CatalogEntry) (int, bool) {
	if e == nil || idx.Len() == 0 {
		return 0, false
	}
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].ID >= e.ID })
	if i < len(idx.entries) && idx.entries[i].ID == e.ID {
		return i, true
	}
	return 0, false
}

// isSystemFlavored: "design ..." titles or "implement ... system" titles.
func (idx *Index) isSystemFlavored(i int) bool {
	title := idx.folded[i]
	if strings.Contains(title, "design") {
		return true
	}
	if j := strings.Index(title, "implement"); j >= 0 && strings.Contains(title[j:], "system") {
		return true
	}
	return strings.Contains(strings.ToLower(idx.entries[i].Category), "system design")
}

// isDesignFlavored: anything mentioning design or implement.
func (idx *Index) isDesignFlavored(i int) bool {
	title := idx.folded[i]
	if strings.Contains(title, "design") || strings.Contains(title, "implement") {
		return true
	}
	return strings.Contains(strings.ToLower(idx.entries[i].Category), "design")
}

// FindVariant finds the entry whose folded title best matches variant, preferring
// an exact title over a prefix match over plain containment, then the lowest ID.
func (idx *Index) FindVariant(variant string) (*types.CatalogEntry, bool) {
	v := normalize.Fold(variant)
	if idx.Len() == 0 || v == "" {
		return nil, false
	}

	const (
		tierExact = iota + 1
		tierPrefix
		tierContains
		tierNone
	)

	best, bestTier := -1, tierNone
	for i, title := range idx.folded {
		tier := tierNone
		switch {
		case title == v:
			tier = tierExact
		case strings.HasPrefix(title, v):
			tier = tierPrefix
		case strings.Contains(title, v):
			tier = tierContains
		}
		if tier < bestTier {
			best, bestTier = i, tier
			if tier == tierExact {
				break
			}
		}
	}

	if best < 0 {
		return nil, false
	}
	return &idx.entries[best], true
}
