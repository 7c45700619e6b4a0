package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/question-matcher/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalogJSON = `{
  "problems": [
    {"id": 146, "title": "LRU Cache", "title_slug": "lru-cache", "difficulty": "Medium", "difficulty_numeric": 4, "category": "Linked List", "topics": ["Design"]},
    {"id": 1, "title": "Two Sum", "title_slug": "two-sum", "difficulty": "Easy", "difficulty_numeric": 1}
  ]
}`

func TestParseCatalogJSON(t *testing.T) {
	entries, err := ParseCatalogJSON([]byte(validCatalogJSON))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "LRU Cache", entries[0].Title)
	assert.Equal(t, "lru-cache", entries[0].Slug)
	assert.Equal(t, []string{"Design"}, entries[0].Topics)
}

func TestParseCatalogJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"problems": [`},
		{name: "missing problems", data: `{}`},
		{name: "bad slug", data: `{"problems": [{"id": 1, "title": "Two Sum", "title_slug": "Two Sum", "difficulty": "Easy", "difficulty_numeric": 1}]}`},
		{name: "bad difficulty", data: `{"problems": [{"id": 1, "title": "Two Sum", "title_slug": "two-sum", "difficulty": "easy", "difficulty_numeric": 1}]}`},
		{name: "missing id", data: `{"problems": [{"title": "Two Sum", "title_slug": "two-sum", "difficulty": "Easy", "difficulty_numeric": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogJSON([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(validCatalogJSON), 0o600))

	s := NewStore(FileSource{Path: path}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	e, ok := s.Snapshot().FindBySlug("lru-cache")
	require.True(t, ok)
	assert.Equal(t, 146, e.ID)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.LoadCatalog(context.Background())
	assert.Error(t, err)
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	src := StaticSource(testsupport.Entries())
	got, err := src.LoadCatalog(context.Background())
	require.NoError(t, err)

	got[0].Title = "Mutated"
	assert.Equal(t, "Two Sum", src[0].Title)
}
