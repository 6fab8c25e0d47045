package crawler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for the crawl pipeline.
type Metrics struct {
	Registry          *prometheus.Registry
	PagesFetchedTotal *prometheus.CounterVec
	RequestDuration   prometheus.Histogram
	LotsDiscovered    prometheus.Counter
	DuplicatesTotal   prometheus.Counter
	DiscardedTotal    prometheus.Counter
	PastAuctionsTotal prometheus.Counter
	RetriesTotal      prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawler_pages_fetched_total",
			Help: "Total pages/requests fetched by the crawler.",
		},
		[]string{"strategy"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawler_request_duration_seconds",
			Help:    "Latency of page navigations and query requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	discovered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_lots_discovered_total",
			Help: "Total lots accepted into crawl result sets.",
		},
	)
	duplicates := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_lots_duplicate_total",
			Help: "Total lots skipped by the per-run dedup set.",
		},
	)
	discarded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_lots_discarded_total",
			Help: "Total raw payloads discarded for missing id/title.",
		},
	)
	past := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_lots_past_auction_total",
			Help: "Total lots excluded by the future-only date cutoff.",
		},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crawler_retries_total",
			Help: "Total retry attempts scheduled for failed fetches.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crawler_errors_total",
			Help: "Total crawl errors by stage.",
		},
		[]string{"stage"},
	)

	registry.MustRegister(pages, requestDuration, discovered, duplicates, discarded, past, retries, errorsTotal)

	return &Metrics{
		Registry:          registry,
		PagesFetchedTotal: pages,
		RequestDuration:   requestDuration,
		LotsDiscovered:    discovered,
		DuplicatesTotal:   duplicates,
		DiscardedTotal:    discarded,
		PastAuctionsTotal: past,
		RetriesTotal:      retries,
		ErrorsTotal:       errorsTotal,
	}
}

// IncPage increments the pages counter for a strategy label.
func (m *Metrics) IncPage(strategy string) {
	if m == nil {
		return
	}
	m.PagesFetchedTotal.WithLabelValues(strategy).Inc()
}

// ObserveRequest records one fetch duration.
func (m *Metrics) ObserveRequest(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// RecordOutcome maps a collector outcome onto the counters.
func (m *Metrics) RecordOutcome(outcome AddOutcome) {
	if m == nil {
		return
	}
	switch outcome {
	case Added:
		m.LotsDiscovered.Inc()
	case Duplicate:
		m.DuplicatesTotal.Inc()
	case Discarded:
		m.DiscardedTotal.Inc()
	case PastAuction:
		m.PastAuctionsTotal.Inc()
	}
}

// IncRetry increments the retry counter.
func (m *Metrics) IncRetry() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError increments the errors counter for a stage label.
func (m *Metrics) IncError(stage string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(stage).Inc()
}
