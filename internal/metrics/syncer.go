// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "opreturn_explorer"

var (
	syncerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "runs_total",
		Help:      "Count of completed sync runs.",
	}, []string{"network", "status"})

	syncerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "run_duration_seconds",
		Help:      "Duration of sync runs.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s..~2h
	}, []string{"network", "status"})

	syncerRunHeights = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "run_heights",
		Help:      "Number of heights covered by a sync run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	}, []string{"network"})

	syncerSkippedRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "skipped_runs_total",
		Help:      "Count of sync triggers ignored because a run was already active.",
	}, []string{"network"})

	syncerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "blocks_total",
		Help:      "Count of processed block heights.",
	}, []string{"network", "status"})

	syncerBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "block_duration_seconds",
		Help:      "Duration of processing a single block height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	syncerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "transactions_total",
		Help:      "Count of processed transactions.",
	}, []string{"network", "status", "op_return"})

	syncerProgress = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "progress_percent",
		Help:      "Progress of the current sync run.",
	}, []string{"network"})

	syncerLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "syncer",
		Name:      "last_processed_height",
		Help:      "Last block height handled by the syncer.",
	}, []string{"network"})
)

// Syncer tracks metrics for the sync orchestrator.
type Syncer struct {
	network model.Network
}

// NewSyncer constructs a Syncer collector.
func NewSyncer(network model.Network) *Syncer {
	if network == "" {
		network = "unknown"
	}
	return &Syncer{network: network}
}

// ObserveRun records the outcome of a sync run covering heights block heights.
func (m Syncer) ObserveRun(err error, heights uint64, started time.Time) {
	status := statusOf(err)
	syncerRunsTotal.WithLabelValues(string(m.network), status).Inc()
	syncerRunDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	syncerRunHeights.WithLabelValues(string(m.network)).Observe(float64(heights))
}

// ObserveSkippedRun records a trigger that found a run in progress.
func (m Syncer) ObserveSkippedRun() {
	syncerSkippedRunsTotal.WithLabelValues(string(m.network)).Inc()
}

// ObserveProcessHeight records processing of a single block height.
func (m Syncer) ObserveProcessHeight(err error, height uint64, started time.Time) {
	status := statusOf(err)
	syncerBlocksTotal.WithLabelValues(string(m.network), status).Inc()
	syncerBlockDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	if err == nil {
		syncerLastHeight.WithLabelValues(string(m.network)).Set(float64(height))
	}
}

// ObserveProcessTransaction records processing of a single transaction.
func (m Syncer) ObserveProcessTransaction(err error, hasOpReturn bool, _ time.Time) {
	opReturn := "false"
	if hasOpReturn {
		opReturn = "true"
	}
	syncerTransactionsTotal.WithLabelValues(string(m.network), statusOf(err), opReturn).Inc()
}

// SetProgress exports the progress of the active run.
func (m Syncer) SetProgress(percent float64) {
	syncerProgress.WithLabelValues(string(m.network)).Set(percent)
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
