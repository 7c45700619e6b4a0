package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/question-matcher/internal/aliases"
	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/config"
	"github.com/jonathan/question-matcher/internal/db"
	"github.com/jonathan/question-matcher/internal/llm"
	"github.com/jonathan/question-matcher/internal/matching"
	"github.com/jonathan/question-matcher/internal/ratelimit"
)

var errNoCatalog = errors.New("no catalog configured: set --catalog, --sqlite or --db-url (or CATALOG_FILE, CATALOG_SQLITE, DATABASE_URL)")

// app is the wiring shared by the subcommands.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *catalog.Store
	engine  *matching.Engine
	closers []func()
}

type appOptions struct {
	// fallback wires the generative stage when an API key is configured
	fallback bool
	// level is the log level used without --verbose
	level slog.Level
}

// flagSettings collects the persistent flags that were set explicitly.
func flagSettings(cmd *cobra.Command) config.Config {
	var cfg config.Config
	flags := cmd.Flags()

	if flags.Changed("catalog") {
		cfg.CatalogFile = catalogFile
	}
	if flags.Changed("sqlite") {
		cfg.CatalogSQLite = catalogSQLite
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("aliases") {
		cfg.AliasFile = aliasFile
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	return cfg
}

// verboseOverride reports --verbose only when it was set explicitly, so that
// --verbose=false can turn off a config file's verbose setting.
func verboseOverride(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("verbose") {
		return nil
	}
	v := verbose
	return &v
}

// loadSettings reads the config file named by --config, if any, and merges
// flags over it and the environment.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}
	return mergeSettings(flagSettings(cmd), fileCfg, config.FromEnv(), verboseOverride(cmd))
}

// mergeSettings layers flags over the config file over the environment, then
// fills package defaults. A nil verboseFlag leaves the config file's value.
func mergeSettings(flagCfg, fileCfg, envCfg config.Config, verboseFlag *bool) (config.Config, error) {
	base := fileCfg.MergeWithDefaults(envCfg)
	cfg := flagCfg.MergeWithDefaults(base)
	cfg.Verbose = fileCfg.Verbose
	if verboseFlag != nil {
		cfg.Verbose = *verboseFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool, level slog.Level) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newApp loads settings, opens the catalog source and performs the first
// catalog load. Callers must Close the returned app.
func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	ctx := cmd.Context()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:    cfg,
		logger: newLogger(os.Stderr, cfg.Verbose, opts.level),
	}

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeSource)

	a.store = catalog.NewStore(source, a.logger)
	if err := a.store.Refresh(ctx); err != nil {
		a.Close()
		return nil, err
	}

	table, err := loadAliases(cfg.AliasFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	var suggester matching.TitleSuggester
	if opts.fallback {
		s, closeSuggester, err := buildSuggester(ctx, cfg, a.logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, closeSuggester)
		if s != nil {
			suggester = s
		}
	}

	a.engine = matching.NewEngine(a.store, matching.Config{
		Aliases:         table,
		Suggester:       suggester,
		FallbackTimeout: cfg.FallbackTimeout.Std(),
		FuzzyPoolSize:   cfg.FuzzyPoolSize,
		Workers:         cfg.Workers,
		Logger:          a.logger,
	})
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// openSource picks the single configured catalog source.
func openSource(ctx context.Context, cfg config.Config) (catalog.Source, func(), error) {
	switch {
	case cfg.CatalogFile != "":
		return catalog.FileSource{Path: cfg.CatalogFile}, func() {}, nil

	case cfg.CatalogSQLite != "":
		store, err := db.OpenSQLite(ctx, cfg.CatalogSQLite)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case cfg.DatabaseURL != "":
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database, database.Close, nil

	default:
		return nil, nil, errNoCatalog
	}
}

func loadAliases(path string) (*aliases.Table, error) {
	if path == "" {
		return aliases.Default()
	}
	return aliases.Load(path)
}

// buildSuggester assembles cache -> budget -> model so that cached answers
// do not spend budget. It returns a nil suggester when no API key is set.
func buildSuggester(ctx context.Context, cfg config.Config, logger *slog.Logger) (matching.TitleSuggester, func(), error) {
	if cfg.APIKey == "" {
		logger.Debug("GEMINI_API_KEY not set; generative fallback disabled")
		return nil, func() {}, nil
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closers := []func(){func() { _ = client.Close() }}

	bucket := ratelimit.NewWindowBucket(cfg.FallbackBudget, cfg.FallbackBudgetWindow.Std(), 0)
	var suggester matching.TitleSuggester = llm.NewBudgetedSuggester(llm.NewClientSuggester(client), bucket)

	if cfg.RedisAddr != "" {
		cache, err := llm.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("suggestion cache unavailable; continuing without it", "addr", cfg.RedisAddr, "error", err)
		} else {
			suggester = &llm.CachedSuggester{
				Next:   suggester,
				Cache:  cache,
				TTL:    cfg.SuggestionTTL.Std(),
				Logger: logger,
			}
			closers = append(closers, func() { _ = cache.Close() })
		}
	}

	logger.Debug("generative fallback enabled",
		"model", llmCfg.GetModel(llm.TierLite),
		"budget", cfg.FallbackBudget,
		"window", cfg.FallbackBudgetWindow.Std(),
		"cache", cfg.RedisAddr != "")

	return suggester, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}
