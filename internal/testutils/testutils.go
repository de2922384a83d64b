package testutils

import (
	"time"

	"github.com/dalfonso89/fx-summary-service/internal/config"
	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// MockLogger creates a quiet logger for testing
func MockLogger() *logger.Logger {
	return logger.New("error")
}

// MockConfig creates a mock configuration for testing. Backoff delays are
// kept tiny so retry paths run fast.
func MockConfig() *config.Config {
	return &config.Config{
		Port:     "8081",
		LogLevel: "error",

		ProviderBaseURL: "https://api.frankfurter.dev/v1",
		BaseCurrency:    "EUR",
		TargetCurrency:  "USD",
		FetchTimeout:    5 * time.Second,

		FetchMaxAttempts:       3,
		FetchBackoffBase:       time.Millisecond,
		FetchBackoffMax:        4 * time.Millisecond,
		FetchBackoffMultiplier: 2,

		CacheCapacity: 256,
		CacheTTL:      900 * time.Second,

		FallbackDataPath: "testdata/sample_fx.json",

		RateLimitEnabled:  false,
		RateLimitRequests: 30,
		RateLimitWindow:   60 * time.Second,
		RateLimitBurst:    10,
	}
}

// MockRateDocument creates a small time-series document for testing
func MockRateDocument() models.RateDocument {
	return models.RateDocument{
		Base:      "EUR",
		StartDate: "2025-01-02",
		EndDate:   "2025-01-03",
		Rates: map[string]map[string]float64{
			"2025-01-02": {"USD": 1.03},
			"2025-01-03": {"USD": 1.05},
		},
	}
}
