package ranking

import (
	"math"
	"sort"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultHistogramBins = 10

// Bin is one equal-width bucket of a histogram. Lower is inclusive; Upper is
// exclusive except for the last bin.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

type Histogram struct {
	Column string
	Bins   []Bin
}

// UrgencyHistogram buckets the URGENCY_SCORE values of ds into bins
// equal-width bins spanning the observed range.
func UrgencyHistogram(ds types.Dataset, bins int) (Histogram, error) {
	return columnHistogram(ds, types.ColUrgencyScore, bins)
}

func columnHistogram(ds types.Dataset, col string, bins int) (Histogram, error) {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	if ds.Len() == 0 {
		return Histogram{}, ErrEmptyDataset
	}
	vals, err := numericColumn(ds, col)
	if err != nil {
		return Histogram{}, err
	}
	sort.Float64s(vals)

	lo, hi := vals[0], vals[len(vals)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	if math.IsInf(hi-lo, 0) {
		return Histogram{}, &DataError{Column: col, Reason: "value range is too wide to bin"}
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)
	if !sort.Float64sAreSorted(edges) {
		return Histogram{}, &DataError{Column: col, Reason: "value range cannot be split into bins"}
	}

	// stat.Histogram treats the last divider as exclusive; nudge it so the
	// maximum lands in the final bin.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := make([]float64, bins)
	stat.Histogram(counts, dividers, vals, nil)

	out := Histogram{Column: col, Bins: make([]Bin, bins)}
	for i := range out.Bins {
		out.Bins[i] = Bin{Lower: edges[i], Upper: edges[i+1], Count: int(counts[i])}
	}
	return out, nil
}
