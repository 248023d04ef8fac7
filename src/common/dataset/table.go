package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

// table is the serialized binary form of a dataset. Rows are positional
// against Columns.
type table struct {
	Columns []string `cbor:"columns"`
	Rows    [][]any  `cbor:"rows"`
}

// ErrNonScalarCell is returned for table cells holding arrays, maps or other
// composite values.
var ErrNonScalarCell = errors.New("table cell is not a scalar")

var decMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		IntDec:           cbor.IntDecConvertSigned,
		MaxArrayElements: 1 << 24,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// EncodeTable serializes ds to the binary table format.
func EncodeTable(ds types.Dataset) ([]byte, error) {
	t := table{Columns: ds.Columns, Rows: make([][]any, len(ds.Rows))}
	for i, row := range ds.Rows {
		vals := make([]any, len(ds.Columns))
		for j, col := range ds.Columns {
			vals[j] = row[col]
		}
		t.Rows[i] = vals
	}
	return cbor.Marshal(t)
}

// DecodeTable parses the binary table format.
func DecodeTable(b []byte) (types.Dataset, error) {
	var t table
	if err := decMode.Unmarshal(b, &t); err != nil {
		return types.Dataset{}, fmt.Errorf("decode table: %w", err)
	}
	if len(t.Columns) == 0 {
		return types.Dataset{}, ErrNoHeader
	}

	ds := types.Dataset{Columns: t.Columns, Rows: make([]types.Record, 0, len(t.Rows))}
	for i, vals := range t.Rows {
		if len(vals) != len(t.Columns) {
			return types.Dataset{}, fmt.Errorf("row %d has %d values, table has %d columns", i+1, len(vals), len(t.Columns))
		}
		row := make(types.Record, len(t.Columns))
		for j, col := range t.Columns {
			v, err := scalar(vals[j])
			if err != nil {
				return types.Dataset{}, fmt.Errorf("row %d column %q: %w", i+1, col, err)
			}
			row[col] = v
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func scalar(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, uint64:
		return t, nil
	case float64:
		return finite(t), nil
	case float32:
		return finite(float64(t)), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNonScalarCell, v)
}

func ReadTable(r io.Reader) (types.Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return types.Dataset{}, err
	}
	return DecodeTable(b)
}

func WriteTable(w io.Writer, ds types.Dataset) error {
	b, err := EncodeTable(ds)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
