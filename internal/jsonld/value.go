// Package jsonld holds total accessors over decoded JSON-LD values.
//
// Values are whatever encoding/json produces for an interface{} target:
// map[string]any, []any, string, float64, bool or nil. No accessor panics or
// returns an error; a missing or mistyped value is reported as absent.
package jsonld

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Get returns the named property of v when v is an object
func Get(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	prop, ok := obj[key]
	if !ok || prop == nil {
		return nil, false
	}
	return prop, true
}

// String returns the named property when it is a string
func String(v any, key string) (string, bool) {
	prop, ok := Get(v, key)
	if !ok {
		return "", false
	}
	s, ok := prop.(string)
	return s, ok
}

// Object returns the named property when it is an object
func Object(v any, key string) (map[string]any, bool) {
	prop, ok := Get(v, key)
	if !ok {
		return nil, false
	}
	obj, ok := prop.(map[string]any)
	return obj, ok
}

// List normalizes a value that may be a single item or an array into a slice.
// nil yields nil.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Text renders a scalar as a string. Objects, arrays and nil are not text.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// Int reads a number that may also arrive as a numeric string.
// Anything that does not parse yields 0.
func Int(v any) int {
	switch t := v.(type) {
	case float64:
		return floatToInt(t)
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case json.Number:
		return parseInt(t.String())
	case string:
		return parseInt(t)
	default:
		return 0
	}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt(f)
	}
	return 0
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return 0
	}
	return int(f)
}
