package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
)

// Type defines the contract for settings validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value domain.Value) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value domain.Value) error {
	if value.Kind() != domain.KindString {
		return fmt.Errorf("expected string, got %s", value.Kind())
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value domain.Value) error {
	switch value.Kind() {
	case domain.KindInt:
		return nil
	case domain.KindFloat:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		f, _ := value.AsFloat()
		if f == math.Trunc(f) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %s", value.Kind())
	}
}

// FloatType validates numeric values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value domain.Value) error {
	switch value.Kind() {
	case domain.KindFloat, domain.KindInt:
		return nil
	default:
		return fmt.Errorf("expected float, got %s", value.Kind())
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value domain.Value) error {
	if value.Kind() != domain.KindBool {
		return fmt.Errorf("expected bool, got %s", value.Kind())
	}
	return nil
}

// EnumType validates strings against a fixed set of options, case-insensitively.
type EnumType struct {
	options []string
}

func (t *EnumType) Name() string {
	return "enum(" + strings.Join(t.options, "|") + ")"
}

func (t *EnumType) Validate(value domain.Value) error {
	if value.Kind() != domain.KindString {
		return fmt.Errorf("expected string, got %s", value.Kind())
	}
	if !slices.Contains(t.options, strings.ToLower(value.AsString())) {
		return fmt.Errorf("expected one of %s", strings.Join(t.options, ", "))
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(domain.Value) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value domain.Value) error {
	return t.validate(value)
}

// RequiredType marks a field that must be present.
type RequiredType struct {
	Type
}

func (t *RequiredType) Name() string { return t.Type.Name() + "!" }

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// OneOf creates an enumeration validator. Options are lower-case.
func OneOf(options ...string) Type {
	return &EnumType{options: options}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(domain.Value) error) Type {
	return &CustomType{name: name, validate: validate}
}

// Required marks t as a mandatory field.
func Required(t Type) Type {
	return &RequiredType{Type: t}
}

// IsRequired reports whether t was wrapped with Required.
func IsRequired(t Type) bool {
	_, ok := t.(*RequiredType)
	return ok
}

// Level adds the keys of a level-dependent parameter named key to s.
func Level(s Schema, key string) Schema {
	for _, k := range level.Keys(key) {
		s[k] = Float()
	}
	return s
}

// ParseType converts a string type name to a Type.
// Supports "string", "int", "float", "bool", "enum(a|b)" and a trailing "!"
// for required.
func ParseType(typeStr string) (Type, error) {
	if strings.HasSuffix(typeStr, "!") {
		inner, err := ParseType(strings.TrimSuffix(typeStr, "!"))
		if err != nil {
			return nil, err
		}
		return Required(inner), nil
	}
	if inner, ok := strings.CutPrefix(typeStr, "enum("); ok && strings.HasSuffix(inner, ")") {
		inner = strings.TrimSuffix(inner, ")")
		if inner == "" {
			return nil, fmt.Errorf("enum without options: %s", typeStr)
		}
		return OneOf(strings.Split(inner, "|")...), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
// Example: {"material": "string!", "radius": "float"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
