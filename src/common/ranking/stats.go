package ranking

import (
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the headline figures of the analytics view.
type Summary struct {
	MaxUrgency   float64
	MinUrgency   float64
	MeanDuration int
	TotalCount   int
}

// Summarize computes urgency extremes, the mean journey duration (truncated
// to whole minutes) and the row count. Missing cells are skipped.
func Summarize(ds types.Dataset) (Summary, error) {
	if ds.Len() == 0 {
		return Summary{}, ErrEmptyDataset
	}

	urgency, err := numericColumn(ds, types.ColUrgencyScore)
	if err != nil {
		return Summary{}, err
	}
	duration, err := numericColumn(ds, types.ColDurationMins)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		MaxUrgency:   floats.Max(urgency),
		MinUrgency:   floats.Min(urgency),
		MeanDuration: int(stat.Mean(duration, nil)),
		TotalCount:   ds.Len(),
	}, nil
}

func numericColumn(ds types.Dataset, col string) ([]float64, error) {
	if !ds.HasColumn(col) {
		return nil, missingColumn(col)
	}
	vals := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if v, ok := row.Number(col); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, &DataError{Column: col, Reason: "no numeric values"}
	}
	return vals, nil
}
