package ranking

import (
	"sort"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

type sortKey struct {
	urgency     float64
	hasUrgency  bool
	priority    float64
	hasPriority bool
}

// Rank orders ds by URGENCY_SCORE descending, then TRAIN_PRIORITY
// descending. The sort is stable. A missing key ranks below every present
// value for that key.
func Rank(ds types.Dataset) types.Dataset {
	keys := make([]sortKey, len(ds.Rows))
	for i, row := range ds.Rows {
		u, uok := row.Number(types.ColUrgencyScore)
		p, pok := row.Number(types.ColTrainPriority)
		keys[i] = sortKey{urgency: u, hasUrgency: uok, priority: p, hasPriority: pok}
	}

	idx := make([]int, len(ds.Rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]].before(keys[idx[b]])
	})

	rows := make([]types.Record, len(idx))
	for i, j := range idx {
		rows[i] = ds.Rows[j]
	}
	return ds.WithRows(rows)
}

func (k sortKey) before(o sortKey) bool {
	if c := compareDesc(k.urgency, k.hasUrgency, o.urgency, o.hasUrgency); c != 0 {
		return c < 0
	}
	return compareDesc(k.priority, k.hasPriority, o.priority, o.hasPriority) < 0
}

// compareDesc is negative when a sorts ahead of b in descending order.
func compareDesc(a float64, aok bool, b float64, bok bool) int {
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case !aok && !bok:
		return 0
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// TopN returns the first n rows of a ranked dataset.
func TopN(ds types.Dataset, n int) types.Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}
	rows := make([]types.Record, n)
	copy(rows, ds.Rows[:n])
	return ds.WithRows(rows)
}

// Project restricts ds to the given columns, in order. Every column must
// exist.
func Project(ds types.Dataset, columns ...string) (types.Dataset, error) {
	for _, col := range columns {
		if !ds.HasColumn(col) {
			return types.Dataset{}, missingColumn(col)
		}
	}

	rows := make([]types.Record, len(ds.Rows))
	for i, row := range ds.Rows {
		out := make(types.Record, len(columns))
		for _, col := range columns {
			out[col] = row[col]
		}
		rows[i] = out
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return types.Dataset{Columns: cols, Rows: rows}, nil
}
