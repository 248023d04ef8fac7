package types_test

import (
	"math"
	"testing"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"github.com/stretchr/testify/assert"
)

func TestRecordNumber(t *testing.T) {
	rec := types.Record{
		"F":     8.5,
		"I":     int64(3),
		"U":     uint64(7),
		"S":     " 4.25 ",
		"EMPTY": "",
		"TEXT":  "Rajdhani",
		"NAN":   math.NaN(),
		"INF":   math.Inf(1),
		"SINF":  "-Inf",
		"NIL":   nil,
	}

	tests := []struct {
		col    string
		want   float64
		wantOK bool
	}{
		{col: "F", want: 8.5, wantOK: true},
		{col: "I", want: 3, wantOK: true},
		{col: "U", want: 7, wantOK: true},
		{col: "S", want: 4.25, wantOK: true},
		{col: "EMPTY"},
		{col: "TEXT"},
		{col: "NAN"},
		{col: "INF"},
		{col: "SINF"},
		{col: "NIL"},
		{col: "ABSENT"},
	}

	for _, tt := range tests {
		t.Run(tt.col, func(t *testing.T) {
			got, ok := rec.Number(tt.col)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRecordText(t *testing.T) {
	rec := types.Record{"N": int64(12951), "F": 8.0, "S": "Mumbai Rajdhani", "NIL": nil}

	assert.Equal(t, "12951", rec.Text("N"))
	assert.Equal(t, "8", rec.Text("F"))
	assert.Equal(t, "Mumbai Rajdhani", rec.Text("S"))
	assert.Equal(t, "", rec.Text("NIL"))
	assert.Equal(t, "", rec.Text("ABSENT"))
}

func TestDatasetWithRowsCopiesSchema(t *testing.T) {
	ds := types.Dataset{Columns: []string{"A", "B"}}
	out := ds.WithRows([]types.Record{{"A": 1}})
	out.Columns[0] = "Z"

	assert.Equal(t, "A", ds.Columns[0])
	assert.Equal(t, 1, out.Len())
	assert.True(t, ds.HasColumn("B"))
	assert.False(t, ds.HasColumn("C"))
}
