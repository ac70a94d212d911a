package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DateLayout is the canonical format of date answers.
const DateLayout = "2006-01-02"

// AnswerMap maps question keys to parsed answer values, remembering the
// order in which keys were first set.
//
// Stored values are always one of: int, float64, string, bool, []string,
// []float64. Dates are stored as strings in DateLayout. Integral numbers
// are stored as int.
//
// The zero value is ready to use.
type AnswerMap struct {
	keys   []string
	values map[string]any
}

// NewAnswerMap creates an empty AnswerMap.
func NewAnswerMap() *AnswerMap {
	return &AnswerMap{values: make(map[string]any)}
}

// Set stores a value under key. Overwriting an existing key keeps its
// original position. Values of unsupported types are rejected.
func (m *AnswerMap) Set(key string, value any) error {
	normalized, err := NormalizeValue(value)
	if err != nil {
		return fmt.Errorf("answer %q: %w", key, err)
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = normalized
	return nil
}

// Get returns the raw stored value.
func (m *AnswerMap) Get(key string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key has a value.
func (m *AnswerMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *AnswerMap) Delete(key string) {
	if !m.Has(key) {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *AnswerMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of stored answers.
func (m *AnswerMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy.
func (m *AnswerMap) Clone() *AnswerMap {
	out := NewAnswerMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		v := m.values[k]
		switch tv := v.(type) {
		case []string:
			v = append([]string(nil), tv...)
		case []float64:
			v = append([]float64(nil), tv...)
		}
		out.keys = append(out.keys, k)
		out.values[k] = v
	}
	return out
}

// --- Typed accessors ---

// Number returns a numeric answer as float64.
func (m *AnswerMap) Number(key string) (float64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Int returns a numeric answer truncated to an int.
func (m *AnswerMap) Int(key string) (int, bool) {
	n, ok := m.Number(key)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// String returns a string answer.
func (m *AnswerMap) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns a boolean answer.
func (m *AnswerMap) Bool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Date returns a date answer parsed from DateLayout.
func (m *AnswerMap) Date(key string) (time.Time, bool) {
	s, ok := m.String(key)
	if !ok {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Strings returns a list-of-strings answer.
func (m *AnswerMap) Strings(key string) ([]string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

// Numbers returns a list-of-numbers answer.
func (m *AnswerMap) Numbers(key string) ([]float64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	n, ok := v.([]float64)
	return n, ok
}

// Contains reports whether a list-of-strings answer holds item.
func (m *AnswerMap) Contains(key, item string) bool {
	items, _ := m.Strings(key)
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

// --- Normalization ---

// NormalizeValue converts a value into one of the stored representations.
// JSON-decoded values (float64, json.Number, []any) are accepted so that
// snapshots round-trip.
func NormalizeValue(v any) (any, error) {
	switch tv := v.(type) {
	case int:
		return tv, nil
	case int64:
		return int(tv), nil
	case float64:
		return collapseNumber(tv), nil
	case json.Number:
		f, err := tv.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", tv, err)
		}
		return collapseNumber(f), nil
	case string, bool:
		return tv, nil
	case []string:
		return append([]string{}, tv...), nil
	case []float64:
		return append([]float64{}, tv...), nil
	case []any:
		return normalizeList(tv)
	case nil:
		return nil, fmt.Errorf("nil value")
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// collapseNumber stores integral floats as int.
func collapseNumber(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}

func normalizeList(items []any) (any, error) {
	if len(items) == 0 {
		return []string{}, nil
	}
	switch items[0].(type) {
	case string:
		out := make([]string, 0, len(items))
		for _, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("mixed list element %T", it)
			}
			out = append(out, s)
		}
		return out, nil
	case float64, json.Number, int:
		out := make([]float64, 0, len(items))
		for _, it := range items {
			switch n := it.(type) {
			case float64:
				out = append(out, n)
			case int:
				out = append(out, float64(n))
			case json.Number:
				f, err := n.Float64()
				if err != nil {
					return nil, fmt.Errorf("invalid number %q: %w", n, err)
				}
				out = append(out, f)
			default:
				return nil, fmt.Errorf("mixed list element %T", it)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported list element %T", items[0])
}

// --- JSON ---

// MarshalJSON writes an object whose keys keep insertion order.
func (m *AnswerMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling answer %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, preserving key order from the document.
func (m *AnswerMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers must be a JSON object")
	}

	fresh := NewAnswerMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading answer key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("answer key must be a string")
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading answer %q: %w", key, err)
		}
		if err := fresh.Set(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}

	*m = *fresh
	return nil
}
