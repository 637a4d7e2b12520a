package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Portfolio backend
	BackendAPIURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience. Record mutations are never retried automatically, so
	// MaxRetries defaults to 0; the knob exists for read-only probes.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Wallet display-name cache
	WalletCacheTTL time.Duration

	// Table views
	DefaultPageSize int

	// UI settings persistence
	SettingsDBPath string

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BackendAPIURL: getEnv("BACKEND_API_URL", "http://localhost:8000"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 0),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		WalletCacheTTL: getEnvDuration("WALLET_CACHE_TTL", 5*time.Minute),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 15),

		SettingsDBPath: getEnv("SETTINGS_DB_PATH", "settings.db"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
