// Package metrics exposes Prometheus instrumentation for the distance cache,
// the aggregation pipeline and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"minmod/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service metrics. It implements distcache.Observer.
type Collector struct {
	gatherer prometheus.Gatherer

	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheEvictions *prometheus.CounterVec
	CacheEntries   prometheus.Gauge
	MatrixSeconds  prometheus.Histogram
	MatrixSites    prometheus.Histogram

	Aggregations     *prometheus.CounterVec
	AggregationSites prometheus.Histogram
	GroupsFlagged    prometheus.Counter
	RowsDropped      *prometheus.CounterVec

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewCollector registers the metrics under namespace against reg,
// defaulting to the global registry when reg is nil.
// Registering twice against one registry returns the existing collectors.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}

	var err error
	if c.CacheHits, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "hits_total",
		Help:      "Distance matrix lookups served from the cache.",
	})); err != nil {
		return nil, err
	}
	if c.CacheMisses, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "misses_total",
		Help:      "Distance matrix lookups that required a computation.",
	})); err != nil {
		return nil, err
	}
	if c.CacheEvictions, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "evictions_total",
		Help:      "Cache entries removed, labeled by reason (expired or capacity).",
	}, []string{"reason"})); err != nil {
		return nil, err
	}
	if c.CacheEntries, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "entries",
		Help:      "Distance matrices currently held in the cache.",
	})); err != nil {
		return nil, err
	}
	if c.MatrixSeconds, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "matrix_compute_seconds",
		Help:      "Time spent computing a full pairwise distance matrix.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	})); err != nil {
		return nil, err
	}
	if c.MatrixSites, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "distance_cache",
		Name:      "matrix_sites",
		Help:      "Number of sites per computed distance matrix.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})); err != nil {
		return nil, err
	}
	if c.Aggregations, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "aggregation",
		Name:      "runs_total",
		Help:      "Proximity aggregation runs, labeled by outcome.",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if c.AggregationSites, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "aggregation",
		Name:      "input_sites",
		Help:      "Number of sites entering one aggregation run.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})); err != nil {
		return nil, err
	}
	if c.GroupsFlagged, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "aggregation",
		Name:      "groups_flagged_total",
		Help:      "Groups emitted without a defined weighted grade.",
	})); err != nil {
		return nil, err
	}
	if c.RowsDropped, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sitetable",
		Name:      "rows_dropped_total",
		Help:      "Backend rows rejected during normalization, labeled by reason.",
	}, []string{"reason"})); err != nil {
		return nil, err
	}
	if c.HTTPRequests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Handled HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"})); err != nil {
		return nil, err
	}
	if c.HTTPDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}

	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) CacheHit() {
	if c == nil {
		return
	}
	c.CacheHits.Inc()
}

func (c *Collector) CacheMiss() {
	if c == nil {
		return
	}
	c.CacheMisses.Inc()
}

func (c *Collector) CacheEvicted(reason string) {
	if c == nil {
		return
	}
	c.CacheEvictions.WithLabelValues(reason).Inc()
}

func (c *Collector) CacheSize(entries int) {
	if c == nil {
		return
	}
	c.CacheEntries.Set(float64(entries))
}

func (c *Collector) MatrixComputed(sites int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.MatrixSeconds.Observe(elapsed.Seconds())
	c.MatrixSites.Observe(float64(sites))
}

// AggregationCompleted records one aggregation run. outcome is "ok" or an error code.
func (c *Collector) AggregationCompleted(outcome string, sites, flagged int) {
	if c == nil {
		return
	}
	c.Aggregations.WithLabelValues(outcome).Inc()
	c.AggregationSites.Observe(float64(sites))
	c.GroupsFlagged.Add(float64(flagged))
}

// RowsRejected adds n rejected rows under reason.
func (c *Collector) RowsRejected(reason string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.RowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RequestHandled records a served HTTP request.
func (c *Collector) RequestHandled(method, route string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	c.HTTPDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}

			var zero T

			return zero, errors.Errorf("collector %T already registered with incompatible type", collector)
		}

		var zero T

		return zero, errors.Wrap(err, "prometheus register")
	}

	return collector, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter) (prometheus.Counter, error) {
	return register(reg, counter)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	return register(reg, vec)
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge) (prometheus.Gauge, error) {
	return register(reg, gauge)
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram) (prometheus.Histogram, error) {
	return register(reg, histogram)
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	return register(reg, vec)
}
