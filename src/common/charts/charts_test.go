package charts

import (
	"bytes"
	"testing"

	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistogram() ranking.Histogram {
	return ranking.Histogram{
		Column: "URGENCY_SCORE",
		Bins: []ranking.Bin{
			{Lower: 0, Upper: 2.5, Count: 3},
			{Lower: 2.5, Upper: 5, Count: 0},
			{Lower: 5, Upper: 7.5, Count: 4},
			{Lower: 7.5, Upper: 10, Count: 1},
		},
	}
}

func TestBinLabels(t *testing.T) {
	assert.Equal(t, []string{"0.0-2.5", "2.5-5.0", "5.0-7.5", "7.5-10.0"}, BinLabels(sampleHistogram()))
}

func TestHistogramPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistogramPNG(&buf, sampleHistogram(), "Urgency Score Distribution"))
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])
}

func TestHistogramHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistogramHTML(&buf, sampleHistogram(), "Urgency Score Distribution"))

	page := buf.String()
	assert.Contains(t, page, "Urgency Score Distribution")
	assert.Contains(t, page, XAxisLabel)
	assert.Contains(t, page, YAxisLabel)
	assert.Contains(t, page, "7.5-10.0")
}

func TestEmptyHistogram(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, HistogramPNG(&buf, ranking.Histogram{}, "x"), ErrNoBins)
	assert.ErrorIs(t, HistogramHTML(&buf, ranking.Histogram{}, "x"), ErrNoBins)
}
