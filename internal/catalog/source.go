package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/question-matcher/internal/schemas"
	"github.com/jonathan/question-matcher/internal/types"
)

// Source supplies the full catalog. LoadCatalog must be idempotent and safe
// to call repeatedly; every call returns the complete entry list.
type Source interface {
	LoadCatalog(ctx context.Context) ([]types.CatalogEntry, error)
}

// StaticSource serves a fixed entry list.
type StaticSource []types.CatalogEntry

// LoadCatalog returns a copy of the entries.
func (s StaticSource) LoadCatalog(_ context.Context) ([]types.CatalogEntry, error) {
	out := make([]types.CatalogEntry, len(s))
	copy(out, s)
	return out, nil
}

// FileSource loads the catalog from a JSON file of the form {"problems": [...]},
// validated against the embedded catalog schema on every load.
type FileSource struct {
	Path string
}

type catalogFile struct {
	Problems []types.CatalogEntry `json:"problems"`
}

// LoadCatalog reads, validates and decodes the catalog file.
func (f FileSource) LoadCatalog(_ context.Context) ([]types.CatalogEntry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", f.Path, err)
	}
	return ParseCatalogJSON(data)
}

// ParseCatalogJSON validates data against the catalog schema and decodes it.
func ParseCatalogJSON(data []byte) ([]types.CatalogEntry, error) {
	if err := schemas.Validate(schemas.Catalog, data); err != nil {
		return nil, fmt.Errorf("catalog file failed schema validation: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return file.Problems, nil
}
