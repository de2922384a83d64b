package ratelimit

import (
	"testing"
	"time"

	"github.com/dalfonso89/fx-summary-service/internal/testutils"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitBurst = 3
	cfg.RateLimitRequests = 3
	cfg.RateLimitWindow = time.Minute

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Errorf("Allow() request %d = false, want true within burst", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("Allow() = true, want false after burst exhausted")
	}
}

func TestLimiter_PerIPBuckets(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitBurst = 1
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Errorf("Allow(first IP) = false, want true")
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("Allow(first IP) second request = true, want false")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("Allow(second IP) = false, want true (buckets are per IP)")
	}
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	cfg := testutils.MockConfig()
	cfg.RateLimitEnabled = false
	cfg.RateLimitBurst = 1

	limiter := NewLimiter(cfg, testutils.MockLogger())
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Errorf("Allow() = false, want true when limiting disabled")
		}
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := &tokenBucket{
		capacity:     2,
		tokens:       0,
		lastRefill:   time.Now().Add(-2 * time.Second),
		refillRate:   60,
		refillPeriod: time.Minute,
	}

	// 2 seconds at 60/minute refills 2 tokens
	if !bucket.take() {
		t.Errorf("take() = false, want true after refill")
	}
	if !bucket.take() {
		t.Errorf("take() second = false, want true")
	}
	if bucket.take() {
		t.Errorf("take() third = true, want false (capacity 2)")
	}
}
