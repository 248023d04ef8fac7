// Package metrics provides Prometheus collectors for dataset and ranking
// operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricDatasetUploadsTotal  = "dataset_uploads_total"
	MetricDatasetRows          = "dataset_rows"
	MetricRankingRequestsTotal = "ranking_requests_total"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics is safe for concurrent use.
type Metrics struct {
	uploadsTotal    *prometheus.CounterVec
	datasetRows     prometheus.Histogram
	rankingRequests *prometheus.CounterVec
}

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		uploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricDatasetUploadsTotal,
				Help: "Total number of dataset uploads by format and status",
			},
			[]string{"format", "status"},
		),
		datasetRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricDatasetRows,
				Help:    "Histogram of rows per accepted dataset",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
		rankingRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRankingRequestsTotal,
				Help: "Total number of ranking requests by status",
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncUploads records an upload attempt. format is "csv", "cbor", "postgres"
// or "unknown".
func (m *Metrics) IncUploads(format, status string) {
	m.uploadsTotal.WithLabelValues(format, status).Inc()
}

func (m *Metrics) ObserveDatasetRows(rows int) {
	m.datasetRows.Observe(float64(rows))
}

func (m *Metrics) IncRankingRequests(status string) {
	m.rankingRequests.WithLabelValues(status).Inc()
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.uploadsTotal,
		m.datasetRows,
		m.rankingRequests,
	}
}
