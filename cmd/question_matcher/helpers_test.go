package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/testsupport"
	"github.com/jonathan/question-matcher/internal/types"
)

// clearEnv unsets every variable the CLI reads so tests only see their flags.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CATALOG_FILE", "CATALOG_SQLITE", "DATABASE_URL", "ALIAS_FILE",
		"GEMINI_API_KEY", "GEMINI_MODEL", "REDIS_ADDR", "REDIS_PASSWORD", "ADDR",
		"FALLBACK_BUDGET_LIMIT", "FALLBACK_BUDGET_WINDOW",
	} {
		t.Setenv(key, "")
	}
}

// writeCatalog writes the shared fixture catalog as a catalog JSON file.
func writeCatalog(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(struct {
		Problems []types.CatalogEntry `json:"problems"`
	}{testsupport.Entries()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores every flag to its default so commands can run more
// than once in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// execute runs the root command in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func fixtureIndex() *catalog.Index {
	return catalog.MustIndex(testsupport.Entries())
}
