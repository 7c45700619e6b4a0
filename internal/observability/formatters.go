// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/question-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs one match outcome.
func (p *Printer) PrintMatchResult(result types.MatchResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Question:   %s\n", result.OriginalText))
	if result.Matched && result.Entry != nil {
		e := result.Entry
		sb.WriteString(fmt.Sprintf("Problem:    #%d %s\n", e.ID, e.Title))
		sb.WriteString(fmt.Sprintf("Difficulty: %s\n", e.Difficulty))
		if e.Category != "" {
			sb.WriteString(fmt.Sprintf("Category:   %s\n", e.Category))
		}
		sb.WriteString(fmt.Sprintf("Method:     %s\n", result.Method))
		sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
		if e.URL != "" {
			sb.WriteString(fmt.Sprintf("URL:        %s\n", e.URL))
		}
	} else {
		sb.WriteString("Problem:    (no match)\n")
	}

	if len(result.CategoryHints) > 0 {
		sb.WriteString(fmt.Sprintf("Hints:      %s\n", strings.Join(result.CategoryHints, ", ")))
	}

	p.printBox("MATCH RESULT", sb.String())
}

// PrintBatchSummary outputs batch totals and the per-method breakdown.
func (p *Printer) PrintBatchSummary(summary types.BatchSummary) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total:      %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Matched:    %d (%.1f%%)\n", summary.Matched, summary.MatchRate*100))
	sb.WriteString(fmt.Sprintf("Unmatched:  %d\n", summary.Unmatched))

	if len(summary.ByMethod) > 0 {
		sb.WriteString("\nBy method:\n")
		for _, method := range []types.MatchMethod{
			types.MethodExact, types.MethodKeyword, types.MethodAlias,
			types.MethodFuzzy, types.MethodLLM, types.MethodNone,
		} {
			if n := summary.ByMethod[method]; n > 0 {
				sb.WriteString(fmt.Sprintf("  • %-8s %d\n", method, n))
			}
		}
	}

	p.printBox("BATCH SUMMARY", sb.String())
}

// PrintCatalogStats outputs difficulty totals and the largest categories.
func (p *Printer) PrintCatalogStats(stats types.CatalogStats, categories []types.CategoryCount) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Problems: %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("  Easy:   %d\n", stats.Easy))
	sb.WriteString(fmt.Sprintf("  Medium: %d\n", stats.Medium))
	sb.WriteString(fmt.Sprintf("  Hard:   %d\n", stats.Hard))

	if len(categories) > 0 {
		sb.WriteString("\nTop categories:\n")
		count := min(len(categories), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", categories[i].Category, categories[i].Count))
		}
		if len(categories) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(categories)-maxItemsToShow))
		}
	}

	p.printBox("CATALOG", sb.String())
}

// PrintCategories outputs every category with its count.
func (p *Printer) PrintCategories(categories []types.CategoryCount) {
	if len(categories) == 0 {
		p.printBox("CATEGORIES", "(none)")
		return
	}

	var sb strings.Builder
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("%-40s %5d\n", c.Category, c.Count))
	}
	p.printBox("CATEGORIES", sb.String())
}

// PrintProblems outputs one line per entry.
func (p *Printer) PrintProblems(title string, entries []*types.CatalogEntry) {
	if len(entries) == 0 {
		p.printBox(title, "(none)")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%5d  %-6s  %s\n", e.ID, e.Difficulty, e.Title))
	}
	p.printBox(title, sb.String())
}

// PrintUnmatched lists the questions in a batch that resolved to nothing.
func (p *Printer) PrintUnmatched(results []types.MatchResult) {
	var texts []string
	for _, r := range results {
		if !r.Matched {
			texts = append(texts, r.OriginalText)
		}
	}
	if len(texts) == 0 {
		return
	}
	sort.Strings(texts)

	var sb strings.Builder
	count := min(len(texts), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", texts[i]))
	}
	if len(texts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(texts)-maxItemsToShow))
	}
	p.printBox("UNMATCHED", sb.String())
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
