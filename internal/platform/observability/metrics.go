package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activityLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_dashboard",
		Subsystem: "loader",
		Name:      "loads_total",
		Help:      "Activity table loads by source and result.",
	}, []string{"source", "result"})
	activityLoadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activity_dashboard",
		Subsystem: "loader",
		Name:      "load_duration_seconds",
		Help:      "Time spent reading the activity table from its source.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	activityRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_dashboard",
		Subsystem: "loader",
		Name:      "rows",
		Help:      "Number of rows in the most recently loaded activity table.",
	})
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_dashboard",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Activity cache lookups by outcome.",
	}, []string{"outcome"})
	exportsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_dashboard",
		Subsystem: "reports",
		Name:      "exports_total",
		Help:      "Generated export documents by format.",
	}, []string{"format"})
)

func init() {
	prometheus.MustRegister(activityLoads, activityLoadDuration, activityRows, cacheLookups, exportsGenerated)
}

// RecordLoad tracks one read of the activity source.
func RecordLoad(source string, rows int, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	activityLoads.WithLabelValues(source, result).Inc()
	activityLoadDuration.WithLabelValues(source).Observe(took.Seconds())
	if err == nil {
		activityRows.Set(float64(rows))
	}
}

func RecordCacheHit() { cacheLookups.WithLabelValues("hit").Inc() }

func RecordCacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

// RecordExport counts a generated export, format being "xlsx" or "pdf".
func RecordExport(format string) {
	exportsGenerated.WithLabelValues(format).Inc()
}
