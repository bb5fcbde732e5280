package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleansing pipeline.
type Metrics struct {
	TicketsRead     prometheus.Counter
	TicketsExported prometheus.Counter
	PipelineRunning prometheus.Gauge

	// ParseFailures counts per-field degradations by field:
	// coords, timestamp, last_activity, reference_row.
	ParseFailures *prometheus.CounterVec

	// ImputedAxes counts coordinate axes filled from the geography
	// reference, by axis: latitude, longitude.
	ImputedAxes *prometheus.CounterVec

	NullCoordinateRows prometheus.Counter
	CommentsFiltered   prometheus.Counter
	ReferenceDistricts prometheus.Gauge

	RunDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		TicketsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "tickets_read_total",
			Help:      "Total ticket rows read from the source file.",
		}),
		TicketsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "tickets_exported_total",
			Help:      "Total clean rows written to the output.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "traffy_etl",
			Name:      "pipeline_running",
			Help:      "1 while a run is active, 0 otherwise.",
		}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "parse_failures_total",
			Help:      "Per-field parse degradations by field name.",
		}, []string{"field"}),
		ImputedAxes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "imputed_axes_total",
			Help:      "Coordinate axes filled from the geography reference.",
		}, []string{"axis"}),
		NullCoordinateRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "null_coordinate_rows_total",
			Help:      "Rows retained with at least one unresolvable coordinate axis.",
		}),
		CommentsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "traffy_etl",
			Name:      "comments_filtered_total",
			Help:      "Rows excluded by the comment-length filter.",
		}),
		ReferenceDistricts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "traffy_etl",
			Name:      "reference_districts",
			Help:      "Districts loaded into the geography index.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "traffy_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-transform-export run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	prometheus.MustRegister(
		m.TicketsRead,
		m.TicketsExported,
		m.PipelineRunning,
		m.ParseFailures,
		m.ImputedAxes,
		m.NullCoordinateRows,
		m.CommentsFiltered,
		m.ReferenceDistricts,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TicketsRead:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "tickets_read_total"}),
		TicketsExported:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "tickets_exported_total"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "traffy_etl", Name: "pipeline_running"}),
		ParseFailures:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "parse_failures_total"}, []string{"field"}),
		ImputedAxes:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "imputed_axes_total"}, []string{"axis"}),
		NullCoordinateRows: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "null_coordinate_rows_total"}),
		CommentsFiltered:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "traffy_etl", Name: "comments_filtered_total"}),
		ReferenceDistricts: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "traffy_etl", Name: "reference_districts"}),
		RunDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "traffy_etl", Name: "run_duration_seconds"}),
	}
}
