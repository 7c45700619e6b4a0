// Package normalize canonicalizes free-text question descriptions and catalog titles
// into a comparable token form.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fillerWords are dropped by Text. Articles, auxiliaries, prepositions and
// interview-framing verbs carry no signal about which problem is meant.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "was": true, "are": true, "were": true, "be": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "about": true,
	"that": true, "this": true, "it": true,
	"you": true, "they": true, "me": true,
	"implement": true, "design": true, "create": true, "write": true,
	"find": true, "return": true, "given": true,
	"question": true, "asked": true,
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text lowercases s, folds accents, turns punctuation into spaces, drops filler
// words and collapses whitespace. It is pure and idempotent.
func Text(s string) string {
	tokens := tokenize(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if fillerWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Fold is Text without filler removal: lowercase, accent-folded, punctuation
// replaced by single spaces.
func Fold(s string) string {
	return strings.Join(tokenize(s), " ")
}

// Slug returns the url-safe hyphenated form of s ("Two Sum!" -> "two-sum").
func Slug(s string) string {
	return strings.Join(tokenize(s), "-")
}

// Tokens splits already-normalized text into its space separated tokens.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// IsFiller reports whether word is removed by Text.
func IsFiller(word string) bool {
	return fillerWords[word]
}

func tokenize(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’':
			// "Pascal's" -> "pascals"
		default:
			sb.WriteRune(' ')
		}
	}
	return strings.Fields(sb.String())
}

var decorationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*\((easy|medium|hard)\)\s*`),
	regexp.MustCompile(`(?i)\s*\[(easy|medium|hard)\]\s*`),
	regexp.MustCompile(`(?i)\s+-\s*(easy|medium|hard)\s*$`),
	regexp.MustCompile(`(?i)^lc\s*#?\d+\s*[-:.]?\s*`),
	regexp.MustCompile(`^(?:#\d+\s*[-:.]?|\d+\s*[-:.])\s*`),
}

// CleanTitle strips difficulty decorations such as "(Easy)" or "- Hard" and
// problem-number prefixes such as "LC #1 -" or "146." from raw question text.
// Leading numbers that are part of the title ("3Sum") are preserved.
func CleanTitle(s string) string {
	cleaned := strings.TrimSpace(s)
	for _, re := range decorationPatterns {
		cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, " "))
	}
	return cleaned
}
