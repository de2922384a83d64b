package service

import (
	"context"

	"github.com/dalfonso89/fx-summary-service/internal/cache"
	"github.com/dalfonso89/fx-summary-service/internal/fallback"
	"github.com/dalfonso89/fx-summary-service/internal/logger"
	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// Pipeline produces a raw rate document for a date range: cache first, then
// the network fetcher, then the fallback dataset. Only a fallback failure
// propagates to the caller.
//
// Concurrent misses on the same key are not coalesced; each caller fetches
// independently and the last write to the cache wins.
type Pipeline struct {
	cache    *cache.Cache
	fetcher  *Fetcher
	fallback *fallback.Loader
	logger   *logger.Logger
}

// NewPipeline wires an explicitly constructed cache, fetcher and fallback
// loader together.
func NewPipeline(cache *cache.Cache, fetcher *Fetcher, fallback *fallback.Loader, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		cache:    cache,
		fetcher:  fetcher,
		fallback: fallback,
		logger:   logger,
	}
}

// cacheKey builds the cache key for a date range. The dates are used
// verbatim; validation belongs to the collaborator that constructed them.
func cacheKey(startDate, endDate string) string {
	return startDate + ".." + endDate
}

// FetchRates returns the rate document for [startDate, endDate]. A document
// obtained from the fallback is cached exactly like a live one, so within
// the TTL window a transient outage keeps serving fallback data without
// re-attempting the network.
func (pipeline *Pipeline) FetchRates(ctx context.Context, startDate, endDate string) (models.RateDocument, error) {
	key := cacheKey(startDate, endDate)

	if document, ok := pipeline.cache.Get(key); ok {
		pipeline.logger.Debugf("Cache hit for %s", key)
		return document, nil
	}

	document, err := pipeline.fetcher.FetchTimeSeries(ctx, startDate, endDate)
	if err != nil {
		pipeline.logger.Warnf("Live fetch failed for %s: %v", key, err)
		document, err = pipeline.fallback.Load()
		if err != nil {
			return models.RateDocument{}, err
		}
	}

	pipeline.cache.Set(key, document)
	return document, nil
}
