package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity; Limit when zero
}

// LoadConfig reads rate limiting settings from the environment.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allowlist:       parseIPList(getEnvString("RATE_LIMIT_ALLOWLIST", "")),
		Denylist:        parseIPList(getEnvString("RATE_LIMIT_DENYLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits of the matcher API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// catalog reloads hit the database
		{Path: "/api/v1/catalog/refresh", Method: "POST", Limit: 6, Window: time.Hour, Burst: 1},

		// batches can fan out to the generative fallback
		{Path: "/api/v1/match/batch", Method: "POST", Limit: 60, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/match", Method: "POST", Limit: 600, Window: time.Minute, Burst: 50},

		// catalog reads use the default limit; /health is unlimited
	}
}

// FallbackBudgetFromEnv returns the generative fallback budget: calls per window.
func FallbackBudgetFromEnv() (limit int, window time.Duration) {
	return getEnvInt("FALLBACK_BUDGET_LIMIT", 100), getEnvDuration("FALLBACK_BUDGET_WINDOW", time.Minute)
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated address list into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
