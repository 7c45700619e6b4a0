// Package aliases holds the curated table of colloquial question phrasings
// and the canonical-title variants they expand to.
// The default table is embedded at compile time; a YAML file can replace it.
package aliases

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/question-matcher/internal/normalize"
	"github.com/jonathan/question-matcher/internal/types"
)

//go:embed aliases.yaml
var defaultTable []byte

// Table is an immutable, ordered alias table. Phrases are stored in
// normalized form so they compare directly against normalized question text.
type Table struct {
	entries []types.AliasEntry
}

type tableFile struct {
	Aliases []types.AliasEntry `yaml:"aliases"`
}

// Default parses the embedded alias table.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// MustDefault parses the embedded alias table, panicking if it is malformed.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded alias table: %v", err))
	}
	return t
}

// Load reads an alias table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("alias file %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a Table from YAML. Phrases are normalized; a phrase that
// normalizes to nothing is rejected, and a phrase that duplicates an earlier
// one after normalization is dropped (the earlier declaration wins).
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse alias YAML: %w", err)
	}

	seen := make(map[string]bool, len(file.Aliases))
	entries := make([]types.AliasEntry, 0, len(file.Aliases))
	for i, raw := range file.Aliases {
		phrase := normalize.Text(raw.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("alias %d (%q): phrase is empty after normalization", i, raw.Phrase)
		}

		targets := make([]string, 0, len(raw.Targets))
		for _, target := range raw.Targets {
			if folded := normalize.Fold(target); folded != "" {
				targets = append(targets, folded)
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("alias %d (%q): no targets", i, raw.Phrase)
		}

		if seen[phrase] {
			continue
		}
		seen[phrase] = true
		entries = append(entries, types.AliasEntry{Phrase: phrase, Targets: targets})
	}

	return &Table{entries: entries}, nil
}

// Len returns the number of aliases.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the aliases in declaration order.
func (t *Table) Entries() []types.AliasEntry {
	if t == nil {
		return nil
	}
	out := make([]types.AliasEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = types.AliasEntry{Phrase: e.Phrase, Targets: append([]string(nil), e.Targets...)}
	}
	return out
}

// Matching returns, in declaration order, every alias whose phrase occurs in
// the normalized text.
func (t *Table) Matching(normalized string) []types.AliasEntry {
	if t == nil || normalized == "" {
		return nil
	}
	var hits []types.AliasEntry
	for _, e := range t.entries {
		if strings.Contains(normalized, e.Phrase) {
			hits = append(hits, e)
		}
	}
	return hits
}
