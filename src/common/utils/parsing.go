package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTypeList splits a comma separated list, trimming blanks and dropping
// duplicates. present=false yields nil (no restriction); a present but empty
// value yields an empty, non-nil list.
func ParseTypeList(raw string, present bool) []string {
	if !present {
		return nil
	}
	out := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// ParseFloatParam parses an optional float bounded to [lo, hi]. An empty
// value yields nil.
func ParseFloatParam(name, raw string, lo, hi float64) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	if v < lo || v > hi {
		return nil, fmt.Errorf("%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return &v, nil
}

// ParseIntParam parses an optional non-negative int, returning def when empty.
func ParseIntParam(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return v, nil
}
