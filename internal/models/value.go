package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a loosely typed property value (string, number, bool) that
// remembers whether the layout declared it at all.
type Value struct {
	raw any
	set bool
}

// NewValue wraps a raw value as a declared property.
func NewValue(v any) Value {
	return Value{raw: v, set: true}
}

// IsSet reports whether the property was declared with a non-null value.
func (v Value) IsSet() bool {
	return v.set && v.raw != nil
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.raw
}

// String returns the textual form of the value. Numbers keep the digits
// they were written with.
func (v Value) String() (string, bool) {
	if !v.IsSet() {
		return "", false
	}
	switch t := v.raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// StringOr returns the textual form of the value or def when undeclared.
func (v Value) StringOr(def string) string {
	if s, ok := v.String(); ok {
		return s
	}
	return def
}

// NonEmpty returns the textual form only when it is declared and not blank.
func (v Value) NonEmpty() (string, bool) {
	s, ok := v.String()
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	v.raw = raw
	v.set = true
	return nil
}
