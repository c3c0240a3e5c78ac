package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Count of query API requests.",
	}, []string{"route", "method", "code"})
	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of query API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	apiCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "cache_lookups_total",
		Help:      "Count of response cache lookups by result.",
	}, []string{"key", "result"})
)

// API tracks metrics for the query API.
type API struct{}

// NewAPI creates an API collector.
func NewAPI() *API {
	return &API{}
}

// ObserveRequest records a served request.
func (m API) ObserveRequest(route, method string, code int, started time.Time) {
	if route == "" {
		route = "unmatched"
	}
	apiRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	apiRequestDuration.WithLabelValues(route, method).Observe(time.Since(started).Seconds())
}

// ObserveCacheLookup records a cache lookup; result is hit, miss or error.
func (m API) ObserveCacheLookup(key, result string) {
	apiCacheLookupsTotal.WithLabelValues(key, result).Inc()
}
