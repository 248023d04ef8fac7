package ranking

import (
	"strings"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

// NormalizeColumn trims, upper-cases and replaces interior spaces with
// underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_")
}

// Normalize returns a copy of ds with every column name normalized. Cell
// values and row order are unchanged; row keys outside ds.Columns are dropped.
// Two columns that normalize to the same name produce a *SchemaError.
func Normalize(ds types.Dataset) (types.Dataset, error) {
	cols := make([]string, len(ds.Columns))
	rename := make(map[string]string, len(ds.Columns))
	seen := make(map[string]string, len(ds.Columns))

	for i, col := range ds.Columns {
		norm := NormalizeColumn(col)
		if prev, dup := seen[norm]; dup {
			return types.Dataset{}, &SchemaError{
				Column: norm,
				Reason: "columns " + quote(prev) + " and " + quote(col) + " collide after normalization",
			}
		}
		seen[norm] = col
		rename[col] = norm
		cols[i] = norm
	}

	rows := make([]types.Record, len(ds.Rows))
	for i, row := range ds.Rows {
		out := make(types.Record, len(cols))
		for k, v := range row {
			if norm, ok := rename[k]; ok {
				out[norm] = v
			}
		}
		rows[i] = out
	}

	return types.Dataset{Columns: cols, Rows: rows}, nil
}

func quote(s string) string {
	return `"` + s + `"`
}
