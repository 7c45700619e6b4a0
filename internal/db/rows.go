package db

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jonathan/question-matcher/internal/types"
)

//go:embed migrations
var migrationFS embed.FS

type migration struct {
	version string
	sql     string
}

// loadMigrations returns the dialect's migrations in file name order.
func loadMigrations(dialect string) ([]migration, error) {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		data, err := migrationFS.ReadFile(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{
			version: strings.TrimSuffix(name, ".sql"),
			sql:     string(data),
		})
	}
	return migrations, nil
}

// catalogRow is a leetcode_questions row as stored. Scraped rows use a 2/3/4
// numeric scale that entryFromRow reconciles with the label.
type catalogRow struct {
	ID                int
	Title             string
	Slug              string
	Difficulty        string
	DifficultyNumeric int
	Category          string
	TopicTags         []byte
	URL               string
}

// canonicalNumeric is the numeric difficulty stored for a label when the
// row's own value disagrees with it.
var canonicalNumeric = map[types.Difficulty]int{
	types.DifficultyEasy:   1,
	types.DifficultyMedium: 3,
	types.DifficultyHard:   5,
}

func entryFromRow(r catalogRow) (types.CatalogEntry, error) {
	difficulty, err := types.ParseDifficulty(r.Difficulty)
	if err != nil {
		return types.CatalogEntry{}, fmt.Errorf("row %d: %w", r.ID, err)
	}

	numeric := r.DifficultyNumeric
	if d, err := types.DifficultyFromNumeric(numeric); err != nil || d != difficulty {
		numeric = canonicalNumeric[difficulty]
	}

	topics, err := parseTopicTags(r.TopicTags)
	if err != nil {
		return types.CatalogEntry{}, fmt.Errorf("row %d: %w", r.ID, err)
	}

	url := r.URL
	if url == "" && r.Slug != "" {
		url = fmt.Sprintf("https://leetcode.com/problems/%s/", r.Slug)
	}

	return types.CatalogEntry{
		ID:                r.ID,
		Title:             strings.TrimSpace(r.Title),
		Slug:              strings.TrimSpace(r.Slug),
		Difficulty:        difficulty,
		DifficultyNumeric: numeric,
		Category:          strings.TrimSpace(r.Category),
		Topics:            topics,
		URL:               url,
	}, nil
}

// parseTopicTags accepts a JSON array of tag names or of {"name": ...} objects.
func parseTopicTags(data []byte) ([]string, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		return names, nil
	}

	var tags []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("invalid topic_tags: %w", err)
	}
	names = make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

func topicTagsJSON(topics []string) string {
	if len(topics) == 0 {
		return "[]"
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func rowsToEntries(rows []catalogRow) ([]types.CatalogEntry, error) {
	entries := make([]types.CatalogEntry, 0, len(rows))
	for _, r := range rows {
		e, err := entryFromRow(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
