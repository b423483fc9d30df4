package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a tagged settings value: exactly one of Str, Int, Float or Bool.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Str(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsZero() bool { return v.kind == 0 }

// ValueOf converts a decoded document scalar into a Value.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return Str(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows", x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case Value:
		return x, nil
	default:
		return Value{}, fmt.Errorf("unsupported settings value %T", raw)
	}
}

// Any returns the underlying Go value.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// AsFloat returns the numeric value of v. Numeric strings are accepted.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AsString returns the string form of v.
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// AsBool returns the boolean value of v. "true"/"false" strings are accepted.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindString:
		b, err := strconv.ParseBool(v.s)
		return b, err == nil
	default:
		return false, false
	}
}

func (v Value) String() string { return v.AsString() }

// Settings is a node's configuration map. Keys are unique and insertion order
// is irrelevant.
type Settings map[string]Value

// NewSettings converts a decoded document map into Settings.
func NewSettings(raw map[string]any) (Settings, error) {
	s := make(Settings, len(raw))
	for k, v := range raw {
		val, err := ValueOf(v)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", k, err)
		}
		s[k] = val
	}
	return s, nil
}

// Keys returns the sorted setting keys.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns the settings as plain Go values, suitable for decoding.
func (s Settings) Map() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v.Any()
	}
	return out
}
