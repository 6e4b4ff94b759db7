// Package coerce decodes numeric request fields leniently: a JSON number or
// a numeric string is taken as is, anything else becomes 0.
package coerce

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float is a float64 decoded leniently.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	*f = Float(parse(b))
	return nil
}

// Ptr returns the value as *float64, nil for a nil receiver.
func (f *Float) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// Or returns the value, or def for a nil receiver.
func (f *Float) Or(def float64) float64 {
	if f == nil {
		return def
	}
	return float64(*f)
}

// Int is an int64 decoded leniently. Fractions are truncated and values
// outside the int64 range become 0.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int(toInt(parse(b)))
	return nil
}

// Ptr returns the value as *int64, nil for a nil receiver.
func (i *Int) Ptr() *int64 {
	if i == nil {
		return nil
	}
	v := int64(*i)
	return &v
}

// Or returns the value, or def for a nil receiver.
func (i *Int) Or(def int64) int64 {
	if i == nil {
		return def
	}
	return int64(*i)
}

// NullInt is an int64 field that tells an absent key from an explicit null.
// Set is true once the key was decoded; Valid is false for null.
type NullInt struct {
	Set   bool
	Valid bool
	Int   int64
}

func (n *NullInt) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(bytes.TrimSpace(b)) == "null" {
		n.Valid, n.Int = false, 0
		return nil
	}
	n.Valid, n.Int = true, toInt(parse(b))
	return nil
}

// Value returns the value as *int64, nil for null.
func (n NullInt) Value() *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int
	return &v
}

func toInt(f float64) int64 {
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func parse(b []byte) float64 {
	b = bytes.TrimSpace(b)

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if v, err := n.Float64(); err == nil {
			return finite(v)
		}
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finite(v)
		}
	}

	return 0
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
