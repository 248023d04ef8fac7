package ranking

import (
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

// FilterOptions selects rows for ranking.
type FilterOptions struct {
	// Types is the allowed TRAIN_TYPE set. Nil allows every type present.
	Types []string
	// MinUrgency is the urgency floor. Nil disables the floor.
	MinUrgency *float64
}

// Filter returns the rows of ds whose TRAIN_TYPE is allowed and, when the
// URGENCY_SCORE column exists and a floor is set, whose urgency reaches it.
// ds itself is never modified. Allowed types that do not occur simply match
// nothing.
func Filter(ds types.Dataset, opts FilterOptions) (types.Dataset, error) {
	if !ds.HasColumn(types.ColTrainType) {
		return types.Dataset{}, missingColumn(types.ColTrainType)
	}

	var allowed map[string]struct{}
	if opts.Types != nil {
		allowed = make(map[string]struct{}, len(opts.Types))
		for _, t := range opts.Types {
			allowed[t] = struct{}{}
		}
	}

	checkUrgency := opts.MinUrgency != nil && ds.HasColumn(types.ColUrgencyScore)

	rows := make([]types.Record, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if allowed != nil {
			if _, ok := allowed[row.Text(types.ColTrainType)]; !ok {
				continue
			}
		}
		if checkUrgency {
			u, ok := row.Number(types.ColUrgencyScore)
			if !ok || u < *opts.MinUrgency {
				continue
			}
		}
		rows = append(rows, row)
	}

	return ds.WithRows(rows), nil
}

// DistinctTypes lists the TRAIN_TYPE values of ds in first-appearance order.
func DistinctTypes(ds types.Dataset) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range ds.Rows {
		t := row.Text(types.ColTrainType)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// UnknownTypes returns the entries of allowed that never occur in ds.
func UnknownTypes(ds types.Dataset, allowed []string) []string {
	present := make(map[string]struct{})
	for _, t := range DistinctTypes(ds) {
		present[t] = struct{}{}
	}
	out := []string{}
	for _, t := range allowed {
		if _, ok := present[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
