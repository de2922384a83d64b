package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dalfonso89/fx-summary-service/internal/config"
	"github.com/dalfonso89/fx-summary-service/internal/logger"
)

// Limiter implements a token bucket rate limiter per client IP.
type Limiter struct {
	configuration *config.Config
	logger        *logger.Logger

	clientBuckets map[string]*tokenBucket
	bucketsMutex  sync.Mutex

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// tokenBucket refills at refillRate tokens per refillPeriod up to capacity.
type tokenBucket struct {
	mu           sync.Mutex
	capacity     int
	tokens       int
	lastRefill   time.Time
	refillRate   int
	refillPeriod time.Duration
}

// NewLimiter creates a rate limiter and starts its bucket cleanup goroutine.
func NewLimiter(configuration *config.Config, logger *logger.Logger) *Limiter {
	limiter := &Limiter{
		configuration: configuration,
		logger:        logger,
		clientBuckets: make(map[string]*tokenBucket),
		cleanupTicker: time.NewTicker(5 * time.Minute),
		stopCleanup:   make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

// Allow reports whether a request from clientIP may proceed.
func (limiter *Limiter) Allow(clientIP string) bool {
	if !limiter.configuration.RateLimitEnabled {
		return true
	}

	limiter.bucketsMutex.Lock()
	bucket, ok := limiter.clientBuckets[clientIP]
	if !ok {
		bucket = &tokenBucket{
			capacity:     limiter.configuration.RateLimitBurst,
			tokens:       limiter.configuration.RateLimitBurst,
			lastRefill:   time.Now(),
			refillRate:   limiter.configuration.RateLimitRequests,
			refillPeriod: limiter.configuration.RateLimitWindow,
		}
		limiter.clientBuckets[clientIP] = bucket
	}
	limiter.bucketsMutex.Unlock()

	return bucket.take()
}

// Middleware returns a Gin middleware that rejects over-limit requests with
// 429 and the usual X-RateLimit headers.
func (limiter *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			limiter.logger.Warnf("Rate limit exceeded for IP: %s", clientIP)
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.configuration.RateLimitRequests))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(limiter.configuration.RateLimitWindow).Unix()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// cleanup drops buckets idle for more than a day so the map cannot grow
// without bound.
func (limiter *Limiter) cleanup() {
	for {
		select {
		case <-limiter.cleanupTicker.C:
			currentTime := time.Now()
			limiter.bucketsMutex.Lock()
			for clientIP, bucket := range limiter.clientBuckets {
				bucket.mu.Lock()
				idle := currentTime.Sub(bucket.lastRefill) > 24*time.Hour
				bucket.mu.Unlock()
				if idle {
					delete(limiter.clientBuckets, clientIP)
				}
			}
			limiter.bucketsMutex.Unlock()
		case <-limiter.stopCleanup:
			limiter.cleanupTicker.Stop()
			return
		}
	}
}

// Stop terminates the cleanup goroutine.
func (limiter *Limiter) Stop() {
	close(limiter.stopCleanup)
}

// take consumes a token, refilling first based on elapsed time.
func (bucket *tokenBucket) take() bool {
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	currentTime := time.Now()
	if elapsed := currentTime.Sub(bucket.lastRefill); elapsed > 0 {
		tokensToAdd := int(elapsed.Seconds() / bucket.refillPeriod.Seconds() * float64(bucket.refillRate))
		if tokensToAdd > 0 {
			bucket.tokens += tokensToAdd
			if bucket.tokens > bucket.capacity {
				bucket.tokens = bucket.capacity
			}
			bucket.lastRefill = currentTime
		}
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}
