package engine

import "math"

// Args are the caller's named arguments for one operation invocation. Keys
// map to FieldSpec.Arg names; a missing key means the argument was omitted.
type Args map[string]interface{}

// Text returns a string argument. Empty strings count as present; date
// fields treat them as absent during synthesis.
func (a Args) Text(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Number returns a numeric argument. JSON decoding delivers all numbers as
// float64; integers are accepted too for callers constructing Args directly.
func (a Args) Number(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns an integer argument. Fractional values are rejected rather
// than truncated so a malformed id cannot route to a neighboring record.
func (a Args) Int(name string) (int64, bool) {
	v, ok := a.Number(name)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int64(v), true
}
