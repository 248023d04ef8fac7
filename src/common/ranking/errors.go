package ranking

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned by aggregates requested over zero rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// SchemaError reports a column layout the engine cannot work with: a
// normalization collision or a required column that is absent.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// DataError reports a required column whose cells hold no usable values.
type DataError struct {
	Column string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: column %q: %s", e.Column, e.Reason)
}

func missingColumn(col string) error {
	return &SchemaError{Column: col, Reason: "required column is missing"}
}
