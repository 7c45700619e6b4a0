// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/question-matcher/internal/ratelimit"
)

// Defaults applied by MergeWithDefaults when neither the file nor a flag sets a value.
const (
	DefaultWorkers              = 8
	DefaultFuzzyPoolSize        = 500
	DefaultFallbackTimeout      = 8 * time.Second
	DefaultRefreshInterval      = time.Hour
	DefaultFallbackBudget       = 100
	DefaultFallbackBudgetWindow = time.Minute
	DefaultSuggestionTTL        = 24 * time.Hour
	DefaultAddr                 = ":8080"
)

// Duration is a time.Duration that reads from JSON as a Go duration string
// ("8s", "1h30m") or as a number of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Catalog sources; at most one may be set
	CatalogFile   string `json:"catalog_file,omitempty"`   // Path to a catalog JSON file
	CatalogSQLite string `json:"catalog_sqlite,omitempty"` // Path to a SQLite catalog database
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	AliasFile string `json:"alias_file,omitempty"` // YAML alias table replacing the built-in one

	// Matching
	Workers         int      `json:"workers,omitempty" validate:"omitempty,min=1,max=256"`
	FuzzyPoolSize   int      `json:"fuzzy_pool_size,omitempty" validate:"omitempty,min=1"`
	FallbackTimeout Duration `json:"fallback_timeout,omitempty" validate:"omitempty,min=0"`
	RefreshInterval Duration `json:"refresh_interval,omitempty" validate:"omitempty,min=0"`

	// LLM fallback
	APIKey               string   `json:"api_key,omitempty"` // Gemini API key
	Model                string   `json:"model,omitempty"`   // Overrides the lite-tier model
	FallbackBudget       int      `json:"fallback_budget,omitempty" validate:"omitempty,min=1"`
	FallbackBudgetWindow Duration `json:"fallback_budget_window,omitempty" validate:"omitempty,min=0"`

	// Suggestion cache
	RedisAddr     string   `json:"redis_addr,omitempty" validate:"omitempty,hostname_port"`
	RedisPassword string   `json:"redis_password,omitempty"`
	RedisDB       int      `json:"redis_db,omitempty" validate:"omitempty,min=0,max=15"`
	SuggestionTTL Duration `json:"suggestion_ttl,omitempty" validate:"omitempty,min=0"`

	// Server
	Addr string `json:"addr,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	sources := 0
	for _, s := range []string{c.CatalogFile, c.CatalogSQLite, c.DatabaseURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'catalog_file', 'catalog_sqlite' and 'database_url' are mutually exclusive")
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for name, path := range map[string]string{
		"catalog file":   c.CatalogFile,
		"catalog sqlite": c.CatalogSQLite,
		"alias file":     c.AliasFile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CatalogFile == "" && result.CatalogSQLite == "" && result.DatabaseURL == "" {
		result.CatalogFile = defaults.CatalogFile
		result.CatalogSQLite = defaults.CatalogSQLite
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.AliasFile == "" {
		result.AliasFile = defaults.AliasFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.Addr == "" {
		result.Addr = firstNonEmpty(defaults.Addr, DefaultAddr)
	}

	// Numeric fields: use default if zero, then the package default
	if result.Workers == 0 {
		result.Workers = firstPositive(defaults.Workers, DefaultWorkers)
	}
	if result.FuzzyPoolSize == 0 {
		result.FuzzyPoolSize = firstPositive(defaults.FuzzyPoolSize, DefaultFuzzyPoolSize)
	}
	if result.FallbackBudget == 0 {
		result.FallbackBudget = firstPositive(defaults.FallbackBudget, DefaultFallbackBudget)
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.FallbackTimeout == 0 {
		result.FallbackTimeout = firstDuration(defaults.FallbackTimeout, DefaultFallbackTimeout)
	}
	if result.RefreshInterval == 0 {
		result.RefreshInterval = firstDuration(defaults.RefreshInterval, DefaultRefreshInterval)
	}
	if result.FallbackBudgetWindow == 0 {
		result.FallbackBudgetWindow = firstDuration(defaults.FallbackBudgetWindow, DefaultFallbackBudgetWindow)
	}
	if result.SuggestionTTL == 0 {
		result.SuggestionTTL = firstDuration(defaults.SuggestionTTL, DefaultSuggestionTTL)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv returns a Config populated from the process environment. It is
// meant as the lowest-priority layer passed to MergeWithDefaults.
func FromEnv() Config {
	budget, window := ratelimit.FallbackBudgetFromEnv()
	return Config{
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		CatalogSQLite: os.Getenv("CATALOG_SQLITE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AliasFile:     os.Getenv("ALIAS_FILE"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		Model:         os.Getenv("GEMINI_MODEL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Addr:          os.Getenv("ADDR"),

		FallbackBudget:       budget,
		FallbackBudgetWindow: Duration(window),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstDuration(d Duration, fallback time.Duration) Duration {
	if d > 0 {
		return d
	}
	return Duration(fallback)
}
