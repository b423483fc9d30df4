package schema

import (
	"fmt"
	"testing"

	"github.com/aretw0/skilltree/pkg/domain"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   domain.Value
		wantErr bool
	}{
		{domain.Str("hello"), false},
		{domain.Str(""), false},
		{domain.Int(42), true},
		{domain.Float(3.14), true},
		{domain.Bool(true), true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   domain.Value
		wantErr bool
	}{
		{domain.Int(42), false},
		{domain.Float(42), false},  // whole number
		{domain.Float(42.5), true}, // not whole
		{domain.Str("42"), true},
		{domain.Bool(true), true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestFloatType(t *testing.T) {
	typ := Float()

	if err := typ.Validate(domain.Int(3)); err != nil {
		t.Errorf("ints should be accepted as floats: %v", err)
	}
	if err := typ.Validate(domain.Float(3.5)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := typ.Validate(domain.Str("3.5")); err == nil {
		t.Error("strings should be rejected")
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	if err := typ.Validate(domain.Bool(false)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := typ.Validate(domain.Str("true")); err == nil {
		t.Error("strings should be rejected")
	}
}

func TestEnumType(t *testing.T) {
	typ := OneOf("day", "night")

	if err := typ.Validate(domain.Str("Night")); err != nil {
		t.Errorf("enum match should be case-insensitive: %v", err)
	}
	if err := typ.Validate(domain.Str("noon")); err == nil {
		t.Error("unknown option should be rejected")
	}
	if typ.Name() != "enum(day|night)" {
		t.Errorf("Name() = %q", typ.Name())
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantErr  bool
	}{
		{"string", "string", false},
		{"int", "int", false},
		{"float", "float", false},
		{"bool", "bool", false},
		{"string!", "string!", false},
		{"enum(main|off)", "enum(main|off)", false},
		{"enum(a|b)!", "enum(a|b)!", false},
		{"enum()", "", true},
		{"[string]", "", true},
		{"unknown", "", true},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q).Name() = %q, want %q", tt.input, typ.Name(), tt.wantName)
		}
	}
}

func TestLevelKeys(t *testing.T) {
	s := Level(Schema{}, "radius")

	for _, key := range []string{"radius", "radius-per-level", "radius-min", "radius-max"} {
		if _, ok := s[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestCustomType(t *testing.T) {
	positive := Custom("positive", func(v domain.Value) error {
		if f, ok := v.AsFloat(); !ok || f <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	})
	if positive.Name() != "positive" {
		t.Errorf("Name() = %q", positive.Name())
	}
	if err := positive.Validate(domain.Int(3)); err != nil {
		t.Errorf("3 should be accepted: %v", err)
	}
	if err := positive.Validate(domain.Int(-1)); err == nil {
		t.Error("-1 should be rejected")
	}
}
