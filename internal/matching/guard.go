package matching

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default input length bounds, in runes of the trimmed text.
const (
	DefaultMinLength = 3
	DefaultMaxLength = 100
)

// ErrImplausibleInput is returned by Guard.Check for text that cannot be a problem title.
var ErrImplausibleInput = errors.New("implausible question text")

// narrativePatterns flag biographical or anecdotal text about the interview itself.
var narrativePatterns = compileAll(
	`location:`,
	`minutes.*min`,
	`internship.*fortune`,
	`recruiter`,
	`\d+\s*(years?|months?|weeks?)\s*(experience|exp)`,
	`graduated`,
	`bachelor|master|phd|degree`,
	`contacted`,
	`waiting for`,
	`got rejected`,
	`offer letter`,
	`interview.*round`,
	`i\s+(was|am|have|got|received)`,
	`my\s+(interview|experience|story)`,
)

// technicalPatterns rescue narrative-looking text that still names a technical topic.
var technicalPatterns = compileAll(
	`array|list|string|tree|graph|heap|stack|queue`,
	`sort|search|traverse|find|reverse|merge|clone`,
	`sum|product|max|min|longest|shortest`,
	`binary|depth|breadth|level|order`,
	`dynamic|programming|recursion|iteration`,
	`valid|palindrome|anagram|substring`,
	`interval|sliding|window|pointer`,
	`path|cycle|island|connected`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// Guard rejects text that is structurally implausible as a problem title
// before any matcher runs.
type Guard struct {
	MinLength int
	MaxLength int
	Deny      []*regexp.Regexp
	Allow     []*regexp.Regexp
}

// DefaultGuard returns the guard the engine uses when none is configured.
func DefaultGuard() *Guard {
	return &Guard{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Deny:      narrativePatterns,
		Allow:     technicalPatterns,
	}
}

// Check returns nil when text may be matched, or an error wrapping
// ErrImplausibleInput describing why it was rejected.
func (g *Guard) Check(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: empty", ErrImplausibleInput)
	}

	n := utf8.RuneCountInString(trimmed)
	if g.MinLength > 0 && n < g.MinLength {
		return fmt.Errorf("%w: %d characters is shorter than %d", ErrImplausibleInput, n, g.MinLength)
	}
	if g.MaxLength > 0 && n > g.MaxLength {
		return fmt.Errorf("%w: %d characters is longer than %d", ErrImplausibleInput, n, g.MaxLength)
	}

	deny := firstMatch(g.Deny, trimmed)
	if deny == nil {
		return nil
	}
	if firstMatch(g.Allow, trimmed) != nil {
		return nil
	}
	return fmt.Errorf("%w: narrative text matching %q", ErrImplausibleInput, deny.String())
}

func firstMatch(patterns []*regexp.Regexp, text string) *regexp.Regexp {
	for _, re := range patterns {
		if re.MatchString(text) {
			return re
		}
	}
	return nil
}
