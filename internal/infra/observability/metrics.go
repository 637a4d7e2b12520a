package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	viewDuration     *prometheus.HistogramVec
	cacheLoads       *prometheus.CounterVec
	mutations        *prometheus.CounterVec
	unmatchedUpdates *prometheus.CounterVec
	backendErrors    *prometheus.CounterVec
	walletCacheHits  *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		viewDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bff_view_duration_seconds",
				Help:    "Duration of view computations (filter+sort+paginate) by table.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"table"},
		),
		cacheLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_cache_loads_total",
				Help: "Total full cache reloads by table and outcome.",
			},
			[]string{"table", "outcome"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_record_mutations_total",
				Help: "Total record mutations by table, kind, and outcome.",
			},
			[]string{"table", "kind", "outcome"},
		),
		unmatchedUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_unmatched_updates_total",
				Help: "Cache updates whose record id was no longer present.",
			},
			[]string{"table"},
		),
		backendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_backend_errors_total",
				Help: "Total errors from the portfolio backend.",
			},
			[]string{"resource"},
		),
		walletCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bff_wallet_cache_lookups_total",
				Help: "Wallet name cache lookups by result.",
			},
			[]string{"result"},
		),
	}
}

// RecordViewDuration records one view computation.
func (m *Metrics) RecordViewDuration(table string, d time.Duration) {
	m.viewDuration.WithLabelValues(table).Observe(d.Seconds())
}

// IncrCacheLoad increments the reload counter for a table.
func (m *Metrics) IncrCacheLoad(table, outcome string) {
	m.cacheLoads.WithLabelValues(table, outcome).Inc()
}

// IncrMutation increments the mutation counter. kind is save,
// duplicate, or delete; outcome is success or error.
func (m *Metrics) IncrMutation(table, kind, outcome string) {
	m.mutations.WithLabelValues(table, kind, outcome).Inc()
}

// IncrUnmatchedUpdate counts a cache update that found no record.
func (m *Metrics) IncrUnmatchedUpdate(table string) {
	m.unmatchedUpdates.WithLabelValues(table).Inc()
}

// IncrBackendError increments the backend error counter.
func (m *Metrics) IncrBackendError(resource string) {
	m.backendErrors.WithLabelValues(resource).Inc()
}

// IncrWalletCacheLookup records a wallet name lookup (hit or miss).
func (m *Metrics) IncrWalletCacheLookup(result string) {
	m.walletCacheHits.WithLabelValues(result).Inc()
}

// GetTableSnapshot returns a snapshot of table metrics suitable for the
// GET /v1/metrics/table endpoint.
func (m *Metrics) GetTableSnapshot(tables []string) *domain.TableMetrics {
	// Prometheus counters expose cumulative values; read them back
	// per label instead of keeping shadow counters.
	snap := &domain.TableMetrics{
		CacheLoads: make(map[string]float64),
		Mutations:  make(map[string]float64),
	}

	var unmatched, backend float64
	for _, table := range tables {
		snap.CacheLoads[table] = getCounterValue(m.cacheLoads, table, "success") +
			getCounterValue(m.cacheLoads, table, "error")
		for _, kind := range []string{"save", "duplicate", "delete"} {
			key := table + "." + kind
			snap.Mutations[key] = getCounterValue(m.mutations, table, kind, "success") +
				getCounterValue(m.mutations, table, kind, "error")
		}
		unmatched += getCounterValue(m.unmatchedUpdates, table)
	}
	for _, resource := range []string{"operations", "assets", "wallets", "preview"} {
		backend += getCounterValue(m.backendErrors, resource)
	}

	snap.UnmatchedUpdates = unmatched
	snap.BackendErrors = backend
	return snap
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
