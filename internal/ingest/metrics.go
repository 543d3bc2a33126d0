package ingest

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters tracked by the subscriber.
type Metrics struct {
	MessagesReceived prometheus.Counter
	DecodeErrors     prometheus.Counter
	ParseErrors      prometheus.Counter
	InvalidGroups    prometheus.Counter
	ReportsStored    *prometheus.CounterVec // labels: report_type={metar,taf}
	ProcessDuration  prometheus.Histogram
}

// NewMetrics creates and registers the ingestion metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesReceived,
		m.DecodeErrors,
		m.ParseErrors,
		m.InvalidGroups,
		m.ReportsStored,
		m.ProcessDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics with fresh, unregistered
// collectors so repeated test runs don't panic on double registration.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metartaf_ingest",
			Name:      "messages_received_total",
			Help:      "Total messages received from the feed subject.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metartaf_ingest",
			Name:      "decode_errors_total",
			Help:      "Total messages that could not be decoded into a raw report.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metartaf_ingest",
			Name:      "parse_errors_total",
			Help:      "Total reports that failed to parse.",
		}),
		InvalidGroups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metartaf_ingest",
			Name:      "invalid_groups_total",
			Help:      "Total reports parsed with at least one invalid group.",
		}),
		ReportsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metartaf_ingest",
			Name:      "reports_stored_total",
			Help:      "Total reports persisted, by report type.",
		}, []string{"report_type"}),
		ProcessDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metartaf_ingest",
			Name:      "process_duration_seconds",
			Help:      "Time to decode, parse, track, and persist one message.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}
