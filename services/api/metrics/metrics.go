package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
)

const namespace = "water_quality"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, partitioned by route and status code.",
		},
		[]string{"route", "status"},
	)

	requestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route"},
	)

	datasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Row counts of the last dataset build, partitioned by stage.",
		},
		[]string{"stage"},
	)

	datasetFiles = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_sources",
			Help:      "Sources read by the last dataset build, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	datasetBuildSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_build_seconds",
			Help:      "Duration of the last dataset build in seconds.",
		},
	)
)

// Register attaches the service collectors to reg. Collectors that are
// already registered are skipped.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		requestsTotal,
		requestDurationSeconds,
		datasetRows,
		datasetFiles,
		datasetBuildSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records one HTTP request.
func ObserveRequest(route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	if duration < 0 {
		duration = 0
	}
	requestDurationSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordBuild publishes the counters of a finished dataset build.
func RecordBuild(r ingest.Report, elapsed time.Duration) {
	datasetRows.WithLabelValues("loaded").Set(float64(r.RowsLoaded))
	datasetRows.WithLabelValues("incomplete_dropped").Set(float64(r.IncompleteDropped))
	datasetRows.WithLabelValues("before_clean").Set(float64(r.RowsBeforeClean))
	datasetRows.WithLabelValues("outliers_removed").Set(float64(r.OutliersRemoved))
	datasetRows.WithLabelValues("remaining").Set(float64(r.RowsRemaining))
	datasetFiles.WithLabelValues("loaded").Set(float64(r.FilesLoaded))
	datasetFiles.WithLabelValues("skipped").Set(float64(r.FilesSkipped))
	datasetBuildSeconds.Set(elapsed.Seconds())
}
