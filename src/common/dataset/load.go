// Package dataset reads uploaded train tables into the engine's dataset
// model.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

const (
	FormatCSV   = "csv"
	FormatTable = "cbor"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrNoHeader          = errors.New("dataset has no columns")
)

// FormatOf maps a file name to a dataset format by extension.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".csv":
		return FormatCSV, nil
	case ".cbor":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: %q (expected .csv or .cbor)", ErrUnsupportedFormat, filename)
}

// Load reads r using the format implied by filename.
func Load(filename string, r io.Reader) (types.Dataset, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return types.Dataset{}, err
	}
	if format == FormatCSV {
		return ReadCSV(r)
	}
	return ReadTable(r)
}
