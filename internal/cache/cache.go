package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// entry is a cached rate document with its insertion timestamp. Expiry is
// judged against the insertion time at read time; there is no background
// sweep.
type entry struct {
	key        string
	document   models.RateDocument
	insertedAt time.Time
}

// Cache is a bounded-capacity, per-entry-TTL store for rate documents keyed
// by date range. It is safe for concurrent use. Eviction prefers expired
// entries, then the least recently used one.
//
// The cache is deliberately not a request deduplicator: concurrent misses on
// the same key each fetch independently and last write wins.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	now func() time.Time
}

// New creates a cache holding at most capacity entries, each readable for
// ttl after insertion.
func New(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// NewWithClock is New with an injected clock, for tests that need to advance
// time without sleeping.
func NewWithClock(capacity int, ttl time.Duration, now func() time.Time) *Cache {
	c := New(capacity, ttl)
	c.now = now
	return c
}

// Get returns the document cached under key. A key that is absent or whose
// entry has outlived the TTL is a miss; expired entries are dropped on read.
func (c *Cache) Get(key string) (models.RateDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		return models.RateDocument{}, false
	}

	cached := element.Value.(*entry)
	if c.now().Sub(cached.insertedAt) > c.ttl {
		c.order.Remove(element)
		delete(c.entries, key)
		return models.RateDocument{}, false
	}

	c.order.MoveToFront(element)
	return cached.document, true
}

// Set stores document under key, resetting its TTL. When the cache is full,
// one victim is evicted: any expired entry first, otherwise the least
// recently used one.
func (c *Cache) Set(key string, document models.RateDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		cached := element.Value.(*entry)
		cached.document = document
		cached.insertedAt = c.now()
		c.order.MoveToFront(element)
		return
	}

	if c.capacity > 0 && len(c.entries) >= c.capacity {
		c.evictLocked()
	}

	element := c.order.PushFront(&entry{
		key:        key,
		document:   document,
		insertedAt: c.now(),
	})
	c.entries[key] = element
}

// Len returns the number of entries currently held, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked removes one entry. Callers must hold c.mu.
func (c *Cache) evictLocked() {
	currentTime := c.now()

	// Expired entries go first, scanning from the cold end of the list.
	for element := c.order.Back(); element != nil; element = element.Prev() {
		cached := element.Value.(*entry)
		if currentTime.Sub(cached.insertedAt) > c.ttl {
			c.order.Remove(element)
			delete(c.entries, cached.key)
			return
		}
	}

	// Nothing expired: evict the least recently used entry.
	if element := c.order.Back(); element != nil {
		cached := element.Value.(*entry)
		c.order.Remove(element)
		delete(c.entries, cached.key)
	}
}
