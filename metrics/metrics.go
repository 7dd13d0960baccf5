package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "langstat_pages_fetched_total",
		Help: "Number of repository pages fetched from github",
	})
	RepositoriesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "langstat_repositories_processed_total",
		Help: "Number of repositories aggregated",
	})
	ReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "langstat_reports_total",
		Help: "Pipeline runs by outcome",
	}, []string{"status"})
	ReportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "langstat_report_duration_seconds",
		Help:    "Duration of a full fetch, rank and render run",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	})
)

func init() {
	prometheus.MustRegister(
		PagesFetched,
		RepositoriesProcessed,
		ReportsTotal,
		ReportDuration,
	)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
