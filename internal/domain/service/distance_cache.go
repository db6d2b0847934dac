package service

import (
	"time"

	"minmod/internal/domain/entity"
)

// CacheEntry describes one cached matrix.
type CacheEntry struct {
	Key        string    `json:"key"`
	Sites      int       `json:"sites"`
	CreatedAt  time.Time `json:"created_at"`
	LastAccess time.Time `json:"last_access"`
}

// DistanceCache memoizes the distance matrix of a site table under a commodity-set key.
type DistanceCache interface {
	// GetOrCompute returns the matrix stored under key or computes it from sites.
	GetOrCompute(key string, sites []entity.SiteRecord) (*entity.DistanceMatrix, error)

	// Invalidate drops key and reports whether it was present.
	Invalidate(key string) bool

	// Keys returns live keys from least to most recently used.
	Keys() []string

	// Entries describes live entries in the same order as Keys.
	Entries() []CacheEntry

	Capacity() int
	Retention() time.Duration
}

// AggregationRecorder receives aggregation outcomes for instrumentation.
type AggregationRecorder interface {
	AggregationCompleted(outcome string, sites, flagged int)
	RowsRejected(reason string, n int)
}
