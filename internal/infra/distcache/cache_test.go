package distcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"minmod/internal/domain/entity"
	"minmod/internal/infra/geodesic"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type recordingObserver struct {
	mu        sync.Mutex
	hits      int
	misses    int
	evictions map[string]int
	computed  int
	size      int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{evictions: make(map[string]int)}
}

func (o *recordingObserver) CacheHit() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hits++
}

func (o *recordingObserver) CacheMiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.misses++
}

func (o *recordingObserver) CacheEvicted(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.evictions[reason]++
}

func (o *recordingObserver) CacheSize(entries int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.size = entries
}

func (o *recordingObserver) MatrixComputed(int, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.computed++
}

func testSites(n int) []entity.SiteRecord {
	sites := make([]entity.SiteRecord, n)
	for i := range sites {
		sites[i] = entity.SiteRecord{
			ID:  fmt.Sprintf("ms:%d", i),
			Lat: float64(i),
			Lon: float64(i) * 2,
		}
	}

	return sites
}

func pairs(n int) int64 {
	return int64(n * (n - 1) / 2)
}

func TestNew_Validation(t *testing.T) {
	engine := geodesic.NewEngine(geodesic.Kilometers)

	_, err := New(nil, 10, time.Hour)
	assert.Error(t, err)

	_, err = New(engine, 0, time.Hour)
	assert.Error(t, err)

	_, err = New(engine, 10, 0)
	assert.Error(t, err)

	c, err := New(engine, 10, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCache_HitReturnsIdenticalMatrixWithoutRecomputation(t *testing.T) {
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, 72*time.Hour)
	require.NoError(t, err)

	sites := testSites(6)

	first, err := c.GetOrCompute("nickel", sites)
	require.NoError(t, err)
	assert.Equal(t, pairs(6), engine.Evaluations())

	second, err := c.GetOrCompute("nickel", sites)
	require.NoError(t, err)

	assert.Equal(t, pairs(6), engine.Evaluations(), "second call must not evaluate any distance")
	assert.Same(t, first, second)
	assert.Empty(t, cmp.Diff(first, second, cmp.AllowUnexported(entity.DistanceMatrix{})))
}

func TestCache_EmptySiteTable(t *testing.T) {
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour)
	require.NoError(t, err)

	m, err := c.GetOrCompute("nothing", nil)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, int64(0), engine.Evaluations())
}

func TestCache_ExpiredEntryIsRecomputed(t *testing.T) {
	clock := newFakeClock()
	obs := newRecordingObserver()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	retention := 72 * time.Hour

	c, err := New(engine, 10, retention, WithClock(clock.Now), WithObserver(obs))
	require.NoError(t, err)

	sites := testSites(4)
	first, err := c.GetOrCompute("zinc", sites)
	require.NoError(t, err)

	clock.Advance(retention + time.Nanosecond)

	second, err := c.GetOrCompute("zinc", sites)
	require.NoError(t, err)

	assert.Equal(t, 2*pairs(4), engine.Evaluations())
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, obs.evictions[EvictExpired])
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, 0, obs.hits)
}

func TestCache_EntryAtExactlyRetentionIsReused(t *testing.T) {
	clock := newFakeClock()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	_, err = c.GetOrCompute("zinc", testSites(3))
	require.NoError(t, err)

	clock.Advance(time.Hour)

	_, err = c.GetOrCompute("zinc", testSites(3))
	require.NoError(t, err)
	assert.Equal(t, pairs(3), engine.Evaluations())
}

func TestCache_HitRefreshesLastAccess(t *testing.T) {
	clock := newFakeClock()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	sites := testSites(3)
	_, err = c.GetOrCompute("lithium", sites)
	require.NoError(t, err)

	clock.Advance(50 * time.Minute)
	_, err = c.GetOrCompute("lithium", sites)
	require.NoError(t, err)

	clock.Advance(50 * time.Minute)
	_, err = c.GetOrCompute("lithium", sites)
	require.NoError(t, err)

	assert.Equal(t, pairs(3), engine.Evaluations())
}

func TestCache_SweepRunsBeforeEveryLookup(t *testing.T) {
	clock := newFakeClock()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	_, err = c.GetOrCompute("cobalt", testSites(2))
	require.NoError(t, err)
	_, err = c.GetOrCompute("copper", testSites(2))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	clock.Advance(2 * time.Hour)

	// Looking up an unrelated key still purges both stale entries.
	_, err = c.GetOrCompute("gold", testSites(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"gold"}, c.Keys())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	obs := newRecordingObserver()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 2, time.Hour, WithObserver(obs))
	require.NoError(t, err)

	sites := testSites(3)
	for _, key := range []string{"a", "b"} {
		_, err = c.GetOrCompute(key, sites)
		require.NoError(t, err)
	}

	// Touch "a" so "b" becomes the least recently used entry.
	_, err = c.GetOrCompute("a", sites)
	require.NoError(t, err)

	_, err = c.GetOrCompute("c", sites)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, c.Keys())
	assert.Equal(t, 1, obs.evictions[EvictCapacity])
	assert.Equal(t, 2, obs.size)

	before := engine.Evaluations()
	_, err = c.GetOrCompute("b", sites)
	require.NoError(t, err)
	assert.Equal(t, before+pairs(3), engine.Evaluations(), "evicted key must be recomputed")
}

func TestCache_ConcurrentMissesComputeOnce(t *testing.T) {
	obs := newRecordingObserver()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour, WithObserver(obs))
	require.NoError(t, err)

	sites := testSites(200)
	results := make([]*entity.DistanceMatrix, 16)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := c.GetOrCompute("nickel|zinc", sites)
			assert.NoError(t, err)
			results[i] = m
		}()
	}
	wg.Wait()

	assert.Equal(t, pairs(200), engine.Evaluations())
	assert.Equal(t, 1, obs.computed)
	assert.Equal(t, 1, obs.misses, "only the computing caller is a miss")
	assert.Equal(t, len(results)-1, obs.hits)
	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}

func TestCache_Purge(t *testing.T) {
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour)
	require.NoError(t, err)

	_, err = c.GetOrCompute("nickel", testSites(2))
	require.NoError(t, err)
	c.Purge()

	assert.Equal(t, 0, c.Len())
}

func TestCache_Invalidate(t *testing.T) {
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 4, time.Hour)
	require.NoError(t, err)

	_, err = c.GetOrCompute("nickel", testSites(3))
	require.NoError(t, err)

	assert.True(t, c.Invalidate("nickel"))
	assert.False(t, c.Invalidate("nickel"))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 4, c.Capacity())
	assert.Equal(t, time.Hour, c.Retention())
}

func TestCache_Entries(t *testing.T) {
	clock := newFakeClock()
	engine := geodesic.NewEngine(geodesic.Kilometers)
	c, err := New(engine, 10, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)

	created := clock.Now()
	_, err = c.GetOrCompute("nickel", testSites(3))
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	_, err = c.GetOrCompute("zinc", testSites(2))
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	_, err = c.GetOrCompute("nickel", testSites(3))
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "zinc", entries[0].Key)
	assert.Equal(t, 2, entries[0].Sites)

	nickel := entries[1]
	assert.Equal(t, "nickel", nickel.Key)
	assert.Equal(t, 3, nickel.Sites)
	assert.Equal(t, created, nickel.CreatedAt)
	assert.Equal(t, created.Add(20*time.Minute), nickel.LastAccess)
}
