package types

import (
	"math"
	"strconv"
	"strings"
)

const (
	ColTrainNumber        = "TRAIN_NUMBER"
	ColTrainName          = "TRAIN_NAME"
	ColTrainType          = "TRAIN_TYPE"
	ColTrainPriority      = "TRAIN_PRIORITY"
	ColClimaticDelaysMins = "CLIMATIC_DELAYS_MINS"
	ColUrgencyScore       = "URGENCY_SCORE"
	ColDurationMins       = "DURATION_MINS"
)

// TableColumns is the column layout of the ranked train table.
var TableColumns = []string{
	ColTrainNumber,
	ColTrainName,
	ColTrainType,
	ColTrainPriority,
	ColClimaticDelaysMins,
	ColUrgencyScore,
	ColDurationMins,
}

// Record is one train row: column name to scalar cell value.
type Record map[string]any

// Dataset is an ordered set of records sharing one schema.
type Dataset struct {
	Columns []string
	Rows    []Record
}

func (d Dataset) Len() int {
	return len(d.Rows)
}

func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRows returns a dataset with the same schema and the given rows.
func (d Dataset) WithRows(rows []Record) Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	return Dataset{Columns: cols, Rows: rows}
}

// Number returns the numeric value of a cell. Missing, empty, non-finite and
// non-numeric cells report ok=false.
func (r Record) Number(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	return ToNumber(v)
}

// Text returns the cell rendered as a string, or "" when missing.
func (r Record) Text(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := ToNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func ToNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
