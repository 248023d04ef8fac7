package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.IncUploads("csv", StatusSuccess)
	m.ObserveDatasetRows(120)
	m.IncRankingRequests(StatusSuccess)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names[MetricDatasetUploadsTotal])
	assert.True(t, names[MetricDatasetRows])
	assert.True(t, names[MetricRankingRequestsTotal])

	assert.Error(t, NewMetrics().Register(reg), "duplicate registration")
}

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.IncUploads("csv", StatusSuccess)
	m.IncUploads("csv", StatusSuccess)
	m.IncUploads("cbor", StatusFailure)
	m.IncRankingRequests(StatusFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("csv", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("cbor", StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankingRequests.WithLabelValues(StatusFailure)))
	assert.Len(t, m.Collectors(), 3)
}
