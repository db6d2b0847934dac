// Package distcache memoizes pairwise distance matrices per commodity set.
//
// A single store enforces two eviction triggers on every access: entries idle for
// longer than the retention window are swept before the lookup, and the least
// recently used entry is dropped when an insert exceeds capacity.
package distcache

import (
	"sync"
	"time"

	"minmod/internal/domain/entity"
	"minmod/internal/domain/service"
	"minmod/internal/errors"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

const (
	// EvictExpired labels entries removed by the retention sweep
	EvictExpired = "expired"
	// EvictCapacity labels entries removed to stay within capacity
	EvictCapacity = "capacity"
)

// MatrixComputer computes the complete distance matrix of a site table.
type MatrixComputer interface {
	Matrix(sites []entity.SiteRecord) *entity.DistanceMatrix
}

// Observer receives cache events. Implementations must be safe for concurrent use.
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheEvicted(reason string)
	CacheSize(entries int)
	MatrixComputed(sites int, elapsed time.Duration)
}

type entry struct {
	matrix     *entity.DistanceMatrix
	createdAt  time.Time
	lastAccess time.Time
}

// Cache maps a commodity-set key to its distance matrix.
// The cache cannot detect a changed site table: the key must encode the exact query that produced it.
type Cache struct {
	computer  MatrixComputer
	capacity  int
	retention time.Duration
	now       func() time.Time
	observer  Observer

	mu      sync.Mutex
	entries *simplelru.LRU[string, *entry]
	flight  singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithObserver reports cache events to o.
func WithObserver(o Observer) Option {
	return func(c *Cache) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a cache holding at most capacity matrices, each kept while accessed within retention.
func New(computer MatrixComputer, capacity int, retention time.Duration, opts ...Option) (*Cache, error) {
	if computer == nil {
		return nil, errors.New("distance cache requires a matrix computer")
	}
	if capacity <= 0 {
		return nil, errors.Errorf("distance cache capacity must be positive, got %d", capacity)
	}
	if retention <= 0 {
		return nil, errors.Errorf("distance cache retention must be positive, got %s", retention)
	}

	entries, err := simplelru.NewLRU[string, *entry](capacity, nil)
	if err != nil {
		return nil, errors.Wrap(err, "simplelru.NewLRU")
	}

	c := &Cache{
		computer:  computer,
		capacity:  capacity,
		retention: retention,
		now:       time.Now,
		observer:  nopObserver{},
		entries:   entries,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetOrCompute returns the matrix stored under key, computing it from sites on a miss or after expiry.
// An empty site table yields an empty matrix. Concurrent misses for one key compute it once.
// Only the caller that computes the matrix counts as a miss; callers served by it count as hits.
func (c *Cache) GetOrCompute(key string, sites []entity.SiteRecord) (*entity.DistanceMatrix, error) {
	if m, ok := c.lookup(key); ok {
		c.observer.CacheHit()

		return m, nil
	}

	computed := false
	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A concurrent caller may have stored the key after our lookup.
		if m, ok := c.lookup(key); ok {
			return m, nil
		}

		start := time.Now()
		m := c.computer.Matrix(sites)
		c.observer.MatrixComputed(len(sites), time.Since(start))

		c.store(key, m)
		computed = true

		return m, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if computed {
		c.observer.CacheMiss()
	} else {
		c.observer.CacheHit()
	}

	m, ok := v.(*entity.DistanceMatrix)
	if !ok {
		return nil, errors.Errorf("distance cache: unexpected value %T for key %q", v, key)
	}

	return m, nil
}

// Len returns the number of live entries after sweeping expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.now())

	return c.entries.Len()
}

// Keys returns live keys from least to most recently used.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.now())

	return c.entries.Keys()
}

// Entries describes live entries from least to most recently used.
func (c *Cache) Entries() []service.CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.now())

	out := make([]service.CacheEntry, 0, c.entries.Len())
	for _, key := range c.entries.Keys() {
		e, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		out = append(out, service.CacheEntry{
			Key:        key,
			Sites:      e.matrix.Len(),
			CreatedAt:  e.createdAt,
			LastAccess: e.lastAccess,
		})
	}

	return out
}

// Invalidate drops key and reports whether it was present.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.entries.Remove(key)
	if removed {
		c.observer.CacheSize(c.entries.Len())
	}

	return removed
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Retention returns the idle window after which an entry expires.
func (c *Cache) Retention() time.Duration {
	return c.retention
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	c.observer.CacheSize(0)
}

func (c *Cache) lookup(key string) (*entity.DistanceMatrix, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	e.lastAccess = now

	return e.matrix, true
}

func (c *Cache) store(key string, m *entity.DistanceMatrix) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.entries.Add(key, &entry{matrix: m, createdAt: now, lastAccess: now}) {
		c.observer.CacheEvicted(EvictCapacity)
	}
	c.observer.CacheSize(c.entries.Len())
}

// sweepLocked removes entries idle for longer than the retention window. Callers hold mu.
func (c *Cache) sweepLocked(now time.Time) {
	removed := false
	for _, key := range c.entries.Keys() {
		e, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		if now.Sub(e.lastAccess) > c.retention {
			c.entries.Remove(key)
			c.observer.CacheEvicted(EvictExpired)
			removed = true
		}
	}

	if removed {
		c.observer.CacheSize(c.entries.Len())
	}
}

type nopObserver struct{}

func (nopObserver) CacheHit() {}

func (nopObserver) CacheMiss() {}

func (nopObserver) CacheEvicted(string) {}

func (nopObserver) CacheSize(int) {}

func (nopObserver) MatrixComputed(int, time.Duration) {}
