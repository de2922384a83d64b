package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/dalfonso89/fx-summary-service/internal/config"
	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// RetryPolicy describes how transient fetch failures are retried. It is a
// plain value so the backoff schedule can be tested apart from any call
// site.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// Delay returns the backoff before the attempt following failed attempt
// number attempt (1-based): BaseDelay * Multiplier^(attempt-1), clamped to
// [BaseDelay, MaxDelay].
func (policy RetryPolicy) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(policy.BaseDelay) * math.Pow(policy.Multiplier, float64(attempt-1)))
	if delay < policy.BaseDelay {
		delay = policy.BaseDelay
	}
	if delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	return delay
}

// Fetcher performs time-series GETs against the rate provider with a bounded
// per-attempt timeout, retrying transient failures per its RetryPolicy. It
// touches neither the cache nor the fallback dataset.
type Fetcher struct {
	baseURL        string
	baseCurrency   string
	targetCurrency string
	policy         RetryPolicy
	httpClient     *http.Client
	logger         *logger.Logger

	// sleep is overridable so retry tests don't wait out real backoff.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(configuration *config.Config, logger *logger.Logger) *Fetcher {
	return &Fetcher{
		baseURL:        configuration.ProviderBaseURL,
		baseCurrency:   configuration.BaseCurrency,
		targetCurrency: configuration.TargetCurrency,
		policy: RetryPolicy{
			MaxAttempts: configuration.FetchMaxAttempts,
			BaseDelay:   configuration.FetchBackoffBase,
			Multiplier:  configuration.FetchBackoffMultiplier,
			MaxDelay:    configuration.FetchBackoffMax,
		},
		httpClient: &http.Client{
			Timeout: configuration.FetchTimeout,
		},
		logger: logger,
		sleep:  sleepContext,
	}
}

// FetchTimeSeries fetches the daily rate series for [startDate, endDate].
// Transient failures are retried with exponential backoff; once the attempt
// budget is exhausted the last transient error is returned unchanged. Fatal
// failures return immediately.
func (fetcher *Fetcher) FetchTimeSeries(ctx context.Context, startDate, endDate string) (models.RateDocument, error) {
	url := fmt.Sprintf("%s/%s..%s?base=%s&symbols=%s",
		fetcher.baseURL, startDate, endDate, fetcher.baseCurrency, fetcher.targetCurrency)

	var lastError error
	for attempt := 1; attempt <= fetcher.policy.MaxAttempts; attempt++ {
		document, err := fetcher.fetchOnce(ctx, url)
		if err == nil {
			return document, nil
		}

		var fetchError *FetchError
		if errors.As(err, &fetchError) && !fetchError.Retryable() {
			return models.RateDocument{}, err
		}
		lastError = err

		if attempt < fetcher.policy.MaxAttempts {
			delay := fetcher.policy.Delay(attempt)
			fetcher.logger.Warnf("Fetch attempt %d/%d failed, retrying in %v: %v",
				attempt, fetcher.policy.MaxAttempts, delay, err)
			if sleepErr := fetcher.sleep(ctx, delay); sleepErr != nil {
				return models.RateDocument{}, lastError
			}
		}
	}

	fetcher.logger.Errorf("All %d fetch attempts failed: %v", fetcher.policy.MaxAttempts, lastError)
	return models.RateDocument{}, lastError
}

// fetchOnce performs a single GET and classifies any failure.
func (fetcher *Fetcher) fetchOnce(ctx context.Context, url string) (models.RateDocument, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.RateDocument{}, &FetchError{
			Kind:    ErrorKindFatal,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		// Transport failures and client timeouts are all worth retrying.
		return models.RateDocument{}, &FetchError{
			Kind:    ErrorKindTransient,
			Message: "request failed",
			Cause:   err,
		}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return models.RateDocument{}, &FetchError{
			Kind:    classifyStatus(response.StatusCode),
			Message: fmt.Sprintf("provider returned status %d: %s", response.StatusCode, string(body)),
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return models.RateDocument{}, &FetchError{
			Kind:    ErrorKindTransient,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	var document models.RateDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return models.RateDocument{}, &FetchError{
			Kind:    ErrorKindFatal,
			Message: "failed to parse provider response",
			Cause:   err,
		}
	}

	return document, nil
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
