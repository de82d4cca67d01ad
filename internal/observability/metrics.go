// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "daybook"

var (
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Query cache lookups by kind and result (hit, miss).",
	}, []string{"kind", "result"})
	cacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "invalidated_entries_total",
		Help:      "Query cache entries dropped by invalidation.",
	}, []string{"kind"})
	mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "mutations_total",
		Help:      "Record mutations by entity, operation and outcome.",
	}, []string{"entity", "op", "outcome"})
	vaultSyncGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "journal_vault",
		Name:      "last_sync_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed journal vault sync.",
	})
)

func init() {
	prometheus.MustRegister(cacheLookups, cacheInvalidations, mutations, vaultSyncGauge)
}

// RecordCacheLookup counts one cache lookup.
func RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(kind, result).Inc()
}

// RecordInvalidation counts dropped cache entries.
func RecordInvalidation(kind string, n int) {
	if n <= 0 {
		return
	}
	cacheInvalidations.WithLabelValues(kind).Add(float64(n))
}

// RecordMutation counts one mutation attempt.
func RecordMutation(entity, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	mutations.WithLabelValues(entity, op, outcome).Inc()
}

// RecordVaultSync updates the vault sync watermark.
func RecordVaultSync(ts time.Time) {
	if ts.IsZero() {
		return
	}
	vaultSyncGauge.Set(float64(ts.Unix()))
}
