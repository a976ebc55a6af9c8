// Package normalize converts heterogeneous vendor JSON payloads into the
// canonical domain schema. One generic engine per payload kind (address,
// weather) consumes small per-vendor schema records — candidate key chains,
// flattening rules, and condition-code tables — instead of one bespoke
// client per vendor.
package normalize

import (
	"strconv"
	"strings"
)

// Resolve walks the candidate keys in order and returns the first value
// present and non-empty in record, along with true. Keys may be dotted
// paths into nested objects ("address.city") and may index into arrays
// ("results.0.locations").
//
// Emptiness is nil or the empty string only. Numeric zero and "0" are
// present values: an altitude of 0 or a wind bearing of 0 must survive
// normalization, so presence and falsiness are deliberately not conflated.
func Resolve(record map[string]any, candidates ...string) (any, bool) {
	for _, key := range candidates {
		v, ok := lookupPath(record, key)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// ResolveString resolves through the candidate chain and renders the value
// as a string. Numbers format without an exponent. Returns "" on no match.
func ResolveString(record map[string]any, candidates ...string) string {
	v, ok := Resolve(record, candidates...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// ResolveFloat resolves through the candidate chain and coerces the value
// to a float64, accepting JSON numbers and numeric strings.
func ResolveFloat(record map[string]any, candidates ...string) (float64, bool) {
	v, ok := Resolve(record, candidates...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// lookupPath navigates a dotted path through nested maps and slices.
func lookupPath(record map[string]any, path string) (any, bool) {
	var cur any = record
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
