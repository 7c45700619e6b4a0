// Package main provides the question_matcher command line: matching interview
// questions against a problem catalog, serving the HTTP API, and inspecting
// or importing the catalog.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "question_matcher",
	Short: "Match interview questions to catalog problems",
	Long: `question_matcher resolves free-form interview question text to a canonical problem in a catalog.

Matching runs exact, keyword, alias and fuzzy stages against the catalog, and falls back to a generative model when GEMINI_API_KEY is set.
The catalog is read from a JSON file (--catalog), a SQLite database (--sqlite) or PostgreSQL (--db-url / DATABASE_URL).

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values, which override the environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Flags shared by every subcommand.
var (
	configPath    string
	catalogFile   string
	catalogSQLite string
	databaseURL   string
	aliasFile     string
	apiKey        string
	jsonOutput    bool
	verbose       bool
)

func init() {
	flags := rootCmd.PersistentFlags()

	// Config file flag (processed first)
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	flags.StringVar(&catalogFile, "catalog", "", "Path to a catalog JSON file (optional, defaults to CATALOG_FILE env var)")
	flags.StringVar(&catalogSQLite, "sqlite", "", "Path to a SQLite catalog database (optional, defaults to CATALOG_SQLITE env var)")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	flags.StringVar(&aliasFile, "aliases", "", "YAML alias table replacing the built-in one")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	flags.StringVar(&apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	flags.BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted text")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
