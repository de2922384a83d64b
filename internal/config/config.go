package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port     string
	LogLevel string

	// Rate provider
	ProviderBaseURL string
	BaseCurrency    string
	TargetCurrency  string
	FetchTimeout    time.Duration

	// Retry policy for the network fetcher
	FetchMaxAttempts       int
	FetchBackoffBase       time.Duration
	FetchBackoffMax        time.Duration
	FetchBackoffMultiplier float64

	// Result cache
	CacheCapacity int
	CacheTTL      time.Duration

	// Fallback dataset
	FallbackDataPath string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBurst    int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8081"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ProviderBaseURL: getEnv("FRANKFURTER_BASE_URL", "https://api.frankfurter.dev/v1"),
		BaseCurrency:    getEnv("BASE_CURRENCY", "EUR"),
		TargetCurrency:  getEnv("TARGET_CURRENCY", "USD"),
		FetchTimeout:    time.Duration(mustAtoi(getEnv("FETCH_TIMEOUT_SECONDS", "10"))) * time.Second,

		FetchMaxAttempts:       mustAtoi(getEnv("FETCH_MAX_ATTEMPTS", "3")),
		FetchBackoffBase:       time.Duration(mustAtoi(getEnv("FETCH_BACKOFF_BASE_MS", "500"))) * time.Millisecond,
		FetchBackoffMax:        time.Duration(mustAtoi(getEnv("FETCH_BACKOFF_MAX_MS", "4000"))) * time.Millisecond,
		FetchBackoffMultiplier: mustParseFloat(getEnv("FETCH_BACKOFF_MULTIPLIER", "2"), 2),

		CacheCapacity: mustAtoi(getEnv("RATES_CACHE_CAPACITY", "256")),
		CacheTTL:      time.Duration(mustAtoi(getEnv("RATES_CACHE_TTL_SECONDS", "900"))) * time.Second,

		FallbackDataPath: getEnv("FALLBACK_DATA_PATH", "data/sample_fx.json"),

		RateLimitEnabled:  getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimitRequests: mustAtoi(getEnv("RATE_LIMIT_REQUESTS", "30")),
		RateLimitWindow:   time.Duration(mustAtoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))) * time.Second,
		RateLimitBurst:    mustAtoi(getEnv("RATE_LIMIT_BURST", "10")),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 60
	}
	return i
}

func mustParseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
