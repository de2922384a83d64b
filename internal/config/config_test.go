package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Port = %v, want 8081", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.ProviderBaseURL != "https://api.frankfurter.dev/v1" {
		t.Errorf("ProviderBaseURL = %v, want https://api.frankfurter.dev/v1", cfg.ProviderBaseURL)
	}
	if cfg.BaseCurrency != "EUR" || cfg.TargetCurrency != "USD" {
		t.Errorf("currency pair = %s/%s, want EUR/USD", cfg.BaseCurrency, cfg.TargetCurrency)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.FetchMaxAttempts != 3 {
		t.Errorf("FetchMaxAttempts = %v, want 3", cfg.FetchMaxAttempts)
	}
	if cfg.FetchBackoffBase != 500*time.Millisecond {
		t.Errorf("FetchBackoffBase = %v, want 500ms", cfg.FetchBackoffBase)
	}
	if cfg.FetchBackoffMax != 4*time.Second {
		t.Errorf("FetchBackoffMax = %v, want 4s", cfg.FetchBackoffMax)
	}
	if cfg.FetchBackoffMultiplier != 2 {
		t.Errorf("FetchBackoffMultiplier = %v, want 2", cfg.FetchBackoffMultiplier)
	}
	if cfg.CacheCapacity != 256 {
		t.Errorf("CacheCapacity = %v, want 256", cfg.CacheCapacity)
	}
	if cfg.CacheTTL != 900*time.Second {
		t.Errorf("CacheTTL = %v, want 900s", cfg.CacheTTL)
	}
	if cfg.FallbackDataPath != "data/sample_fx.json" {
		t.Errorf("FallbackDataPath = %v, want data/sample_fx.json", cfg.FallbackDataPath)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TARGET_CURRENCY", "GBP")
	t.Setenv("FETCH_MAX_ATTEMPTS", "5")
	t.Setenv("RATES_CACHE_TTL_SECONDS", "120")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %v, want 9090", cfg.Port)
	}
	if cfg.TargetCurrency != "GBP" {
		t.Errorf("TargetCurrency = %v, want GBP", cfg.TargetCurrency)
	}
	if cfg.FetchMaxAttempts != 5 {
		t.Errorf("FetchMaxAttempts = %v, want 5", cfg.FetchMaxAttempts)
	}
	if cfg.CacheTTL != 120*time.Second {
		t.Errorf("CacheTTL = %v, want 120s", cfg.CacheTTL)
	}
	if cfg.RateLimitEnabled {
		t.Errorf("RateLimitEnabled = true, want false")
	}
}

func TestMustAtoi_Invalid(t *testing.T) {
	if got := mustAtoi("not-a-number"); got != 60 {
		t.Errorf("mustAtoi() = %v, want fallback 60", got)
	}
}

func TestMustParseFloat_Invalid(t *testing.T) {
	if got := mustParseFloat("nope", 2); got != 2 {
		t.Errorf("mustParseFloat() = %v, want fallback 2", got)
	}
}
