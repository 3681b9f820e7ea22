package quote

import "encoding/json"

// Safe returns def when v is absent (nil) or a floating-point NaN, detected
// with the self-comparison test (f != f). Values the test cannot apply to
// (strings, bools, nested objects) pass through unchanged; an inapplicable
// check is never treated as a reason to default.
func Safe(v, def any) any {
	if v == nil {
		return def
	}
	switch f := v.(type) {
	case float64:
		if f != f {
			return def
		}
	case float32:
		if f != f {
			return def
		}
	case json.Number:
		if x, err := f.Float64(); err == nil && x != x {
			return def
		}
	}
	return v
}

// number reports the numeric value of a raw field. Absent, NaN and
// non-numeric values all count as not present.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if n != n {
			return 0, false
		}
		return n, true
	case float32:
		f := float64(n)
		if f != f {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || f != f {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
