// Package features validates and orders the raw feature values submitted
// for a prediction.
package features

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Set holds the model's expected feature names in column order. The remote
// model is order-sensitive: once serialized, columns are matched by
// position, not by name.
type Set struct {
	names []string
}

// NewSet creates a Set from an ordered name list. The slice is copied so
// later mutation by the caller cannot reorder columns.
func NewSet(names []string) *Set {
	owned := make([]string, len(names))
	copy(owned, names)
	return &Set{names: owned}
}

// Names returns the declared feature names in column order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Validate confirms that every declared feature is present in raw and that
// every present value is numeric. It is a pure function of its input.
//
// Missing names are reported together, comma-joined in declared order. A
// non-numeric value is reported for the first offending feature in
// declared order.
func (s *Set) Validate(raw map[string]any) error {
	var missing []string
	for _, name := range s.names {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return newValidationError(ErrMissingFeatures,
			fmt.Sprintf("Missing required features: %s", strings.Join(missing, ", ")))
	}

	for _, name := range s.names {
		if _, ok := toFloat(raw[name]); !ok {
			return newValidationError(ErrNotNumeric,
				fmt.Sprintf("Invalid value for feature '%s': must be a number", name))
		}
	}

	return nil
}

// Vectorize produces the single-row value vector in declared column order.
// Only called after Validate succeeds; a missing or unparsable entry
// contributes 0, which Validate makes unreachable.
func (s *Set) Vectorize(raw map[string]any) []float64 {
	row := make([]float64, len(s.names))
	for i, name := range s.names {
		if v, ok := toFloat(raw[name]); ok {
			row[i] = v
		}
	}
	return row
}

// toFloat parses the loosely-typed JSON values a client may submit:
// numbers, json.Number, and numeric strings. ParseFloat semantics apply,
// so spellings like "NaN" and "Inf" parse; the remote service owns
// rejecting non-finite values if its model cannot take them.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
