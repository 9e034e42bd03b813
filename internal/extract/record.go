package extract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is one flat JSON object decoded from a record container.
// Numbers are kept as json.Number until an accessor converts them.
type Record map[string]any

// Value returns the field normalized for use as a statement parameter:
// nil for missing or null fields, int64 or float64 for numbers, and the
// decoded value otherwise.
func (r Record) Value(key string) any {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// Has reports whether the field is present and not null.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns a required string field. Numbers are accepted and
// rendered in their JSON form, since some producers emit ids as numbers.
func (r Record) String(key string) (string, error) {
	switch v := r[key].(type) {
	case nil:
		return "", missing(key)
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", invalid(key, "is not a string")
	}
}

// Int64 returns a required integer field. Integral floats and numeric
// strings are accepted.
func (r Record) Int64(key string) (int64, error) {
	switch v := r[key].(type) {
	case nil:
		return 0, missing(key)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, invalid(key, "is not an integer")
		}
		// 2^63 is representable as a float64 but not as an int64.
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, invalid(key, "is out of range")
		}
		return int64(f), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, invalid(key, "is not an integer")
		}
		return i, nil
	default:
		return 0, invalid(key, "is not an integer")
	}
}

// Float64 returns a required numeric field.
func (r Record) Float64(key string) (float64, error) {
	switch v := r[key].(type) {
	case nil:
		return 0, missing(key)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, invalid(key, "is not a number")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, invalid(key, "is not a number")
		}
		return f, nil
	default:
		return 0, invalid(key, "is not a number")
	}
}

// OptString returns the field as a string, or nil when it is missing or null.
func (r Record) OptString(key string) (any, error) {
	if !r.Has(key) {
		return nil, nil
	}
	return r.String(key)
}

// OptFloat64 returns the field as a float64, or nil when it is missing or null.
func (r Record) OptFloat64(key string) (any, error) {
	if !r.Has(key) {
		return nil, nil
	}
	return r.Float64(key)
}

func missing(key string) error {
	return &MalformedRecordError{Field: key, Reason: "is missing", Index: -1}
}

func invalid(key, reason string) error {
	return &MalformedRecordError{Field: key, Reason: reason, Index: -1}
}
