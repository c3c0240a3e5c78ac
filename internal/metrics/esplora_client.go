package metrics

import (
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	esploraRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "esplora_client",
		Name:      "operations_total",
		Help:      "Count of Esplora API operations.",
	}, []string{"operation", "network", "status"})
	esploraRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "esplora_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Esplora API operations, pacing delay included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// EsploraClient tracks metrics for upstream Esplora calls.
type EsploraClient struct {
	network model.Network
}

// NewEsploraClient constructs a metrics collector for Esplora calls.
func NewEsploraClient(network model.Network) *EsploraClient {
	if network == "" {
		network = "unknown"
	}
	return &EsploraClient{network: network}
}

// Observe records a single call outcome and duration.
func (m EsploraClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	esploraRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	esploraRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
