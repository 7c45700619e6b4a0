package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/config"
	"github.com/jonathan/question-matcher/internal/db"
	"github.com/jonathan/question-matcher/internal/observability"
	"github.com/jonathan/question-matcher/internal/types"
)

var (
	listDifficulty string
	listCategory   string
	listLimit      int
	importInput    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or populate the problem catalog",
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show problem counts per difficulty and the largest categories",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStats,
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List every category with its problem count",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCategories,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List problems, optionally filtered by difficulty and category",
	Long: `List problems in curriculum order.

With --difficulty, problems of that difficulty are listed by ID (optionally restricted to --category).
With only --category, problems are ordered Easy to Hard, then by ID.`,
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a catalog JSON file into SQLite or PostgreSQL",
	Long: `Validate a catalog JSON file and upsert its problems into the database named by --sqlite or --db-url.

The schema is created when missing. Existing problems with the same ID are updated.`,
	Args: cobra.NoArgs,
	RunE: runCatalogImport,
}

func init() {
	catalogListCmd.Flags().StringVarP(&listDifficulty, "difficulty", "d", "", "Only list problems of this difficulty (easy, medium, hard)")
	catalogListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list problems in this category")
	catalogListCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of problems to list")

	catalogImportCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to the catalog JSON file")
	if err := catalogImportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	catalogCmd.AddCommand(catalogStatsCmd, catalogCategoriesCmd, catalogListCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*app, error) {
	return newApp(cmd, appOptions{level: slog.LevelWarn})
}

func runCatalogStats(cmd *cobra.Command, _ []string) error {
	a, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	idx := a.store.Snapshot()
	stats, categories := idx.Stats(), idx.Categories()

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, struct {
			types.CatalogStats
			Categories []types.CategoryCount `json:"categories"`
		}{stats, categories})
	}
	observability.NewPrinter(out).PrintCatalogStats(stats, categories)
	return nil
}

func runCatalogCategories(cmd *cobra.Command, _ []string) error {
	a, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	categories := a.store.Snapshot().Categories()
	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, categories)
	}
	observability.NewPrinter(out).PrintCategories(categories)
	return nil
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if listLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	var difficulty types.Difficulty
	if listDifficulty != "" {
		d, err := types.ParseDifficulty(listDifficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}

	a, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, title := listEntries(a.store.Snapshot(), difficulty, listCategory, listLimit)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, entries)
	}
	observability.NewPrinter(out).PrintProblems(title, entries)
	return nil
}

// listEntries applies the list filters and returns the entries with a title
// for the printed box.
func listEntries(idx *catalog.Index, difficulty types.Difficulty, category string, limit int) ([]*types.CatalogEntry, string) {
	switch {
	case difficulty != "":
		title := fmt.Sprintf("%s PROBLEMS", difficulty)
		if category != "" {
			title = fmt.Sprintf("%s %s PROBLEMS", difficulty, category)
		}
		return idx.ByDifficulty(difficulty, category, limit), title
	case category != "":
		return idx.ByCategory(category, limit), category + " PROBLEMS"
	default:
		entries := idx.Entries()
		if len(entries) > limit {
			entries = entries[:limit]
		}
		return entries, "PROBLEMS"
	}
}

// catalogWriter is a database the import command can populate.
type catalogWriter interface {
	UpsertEntries(ctx context.Context, entries []types.CatalogEntry) error
	DifficultyCounts(ctx context.Context) (types.CatalogStats, error)
}

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// The target database may not exist yet, so the usual settings
	// validation does not apply here.
	target := flagSettings(cmd)
	if target.CatalogSQLite == "" && target.DatabaseURL == "" {
		env := config.FromEnv()
		target.CatalogSQLite, target.DatabaseURL = env.CatalogSQLite, env.DatabaseURL
	}
	if target.CatalogSQLite != "" && target.DatabaseURL != "" {
		return fmt.Errorf("--sqlite and --db-url are mutually exclusive; provide only one")
	}
	logger := newLogger(os.Stderr, verbose, slog.LevelInfo)

	entries, err := catalog.FileSource{Path: importInput}.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	// reject duplicate IDs before touching the database
	if _, err := catalog.NewIndex(entries); err != nil {
		return err
	}

	writer, closeWriter, err := openWriter(ctx, target.CatalogSQLite, target.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeWriter()

	if err := writer.UpsertEntries(ctx, entries); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	logger.Info("catalog imported", "file", importInput, "problems", len(entries))

	stats, err := writer.DifficultyCounts(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, stats)
	}
	observability.NewPrinter(out).PrintCatalogStats(stats, nil)
	return nil
}

func openWriter(ctx context.Context, sqlitePath, databaseURL string) (catalogWriter, func(), error) {
	switch {
	case sqlitePath != "":
		store, err := db.OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case databaseURL != "":
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("catalog import needs --sqlite or --db-url")
	}
}
