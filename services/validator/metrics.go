/*
Package validator implements transaction validation against a utxo pool.

This file implements Prometheus metrics collection for the batch handler and the
signature oracle.
*/
package validator

import (
	"sync"

	"github.com/bsv-blockchain/txhandler/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics collectors
var (
	// prometheusHandleTxsBatches counts processed batches
	prometheusHandleTxsBatches prometheus.Counter

	// prometheusHandleTxsTransactions counts candidate transactions processed
	prometheusHandleTxsTransactions prometheus.Counter

	// prometheusHandleTxsAccepted counts accepted transactions
	prometheusHandleTxsAccepted prometheus.Counter

	// prometheusHandleTxsRejected counts rejected transactions by rule
	prometheusHandleTxsRejected *prometheus.CounterVec

	// prometheusHandleTxsBatchSize tracks the number of transactions per batch
	prometheusHandleTxsBatchSize prometheus.Histogram

	// prometheusHandleTxs measures the total time to process a batch
	prometheusHandleTxs prometheus.Histogram

	// prometheusHandleTxsPreVerify measures parallel signature pre-verification
	prometheusHandleTxsPreVerify prometheus.Histogram

	// prometheusValidateTransaction measures single transaction validation
	prometheusValidateTransaction prometheus.Histogram

	// prometheusPoolSize tracks the size of the handler pool after each batch
	prometheusPoolSize prometheus.Gauge

	// prometheusSignatureCacheHits counts verdicts served from the signature cache
	prometheusSignatureCacheHits prometheus.Counter

	// prometheusSignatureCacheMisses counts verdicts computed by the wrapped verifier
	prometheusSignatureCacheMisses prometheus.Counter
)

var (
	// prometheusMetricsInitOnce ensures metrics are initialized only once
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHandleTxsBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "batches",
			Help:      "Number of batches processed by the tx handler",
		},
	)

	prometheusHandleTxsTransactions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "transactions",
			Help:      "Number of candidate transactions processed by the tx handler",
		},
	)

	prometheusHandleTxsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "accepted_transactions",
			Help:      "Number of transactions accepted into the utxo pool",
		},
	)

	prometheusHandleTxsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "rejected_transactions",
			Help:      "Number of transactions rejected by the tx handler, by rule",
		},
		[]string{"reason"},
	)

	prometheusHandleTxsBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "batch_size",
			Help:      "Number of transactions in a batch",
			Buckets:   util.MetricsBucketsCount,
		},
	)

	prometheusHandleTxs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "handle_txs",
			Help:      "Histogram of batch processing by the tx handler",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusHandleTxsPreVerify = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "handle_txs_pre_verify",
			Help:      "Histogram of parallel signature pre-verification",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusValidateTransaction = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "validate_transaction",
			Help:      "Histogram of single transaction validation",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "pool_size",
			Help:      "Number of unspent outputs in the tx handler pool",
		},
	)

	prometheusSignatureCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "signature_cache_hits",
			Help:      "Number of signature verdicts served from the cache",
		},
	)

	prometheusSignatureCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txhandler",
			Subsystem: "validator",
			Name:      "signature_cache_misses",
			Help:      "Number of signature verdicts computed by the wrapped verifier",
		},
	)
}
