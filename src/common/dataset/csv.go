package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

// ReadCSV reads a header row followed by data rows. Cells are typed as
// int64 or float64 when they parse as numbers, nil when empty and string
// otherwise. Header names are kept as written; normalization is the
// engine's job.
func ReadCSV(r io.Reader) (types.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return types.Dataset{}, ErrNoHeader
	}
	if err != nil {
		return types.Dataset{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	ds := types.Dataset{Columns: header}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		line++
		if err != nil {
			return types.Dataset{}, fmt.Errorf("read row %d: %w", line, err)
		}
		if len(rec) != len(header) {
			return types.Dataset{}, fmt.Errorf("row %d has %d columns, header has %d", line, len(rec), len(header))
		}

		row := make(types.Record, len(header))
		for i, col := range header {
			row[col] = parseCell(rec[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
}

// naValues are the cell spellings read as missing.
var naValues = map[string]bool{
	"NA": true, "N/A": true, "#N/A": true, "NaN": true, "nan": true,
	"null": true, "NULL": true, "None": true,
}

func parseCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" || naValues[s] {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(f)
	}
	return s
}

// finite maps NaN and infinities to a missing cell so datasets stay JSON
// encodable.
func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// WriteCSV writes ds with its column order as the header.
func WriteCSV(w io.Writer, ds types.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}
	rec := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			rec[i] = row.Text(col)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
