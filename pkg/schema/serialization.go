package schema

import (
	"encoding/json"
	"fmt"
)

// Field is one setting of a schema by its type name.
type Field struct {
	Key  string
	Type string
}

// Fields lists the settings sorted by key. The type names are the ones
// ParseType reads back.
func (s Schema) Fields() []Field {
	out := make([]Field, 0, len(s))
	for _, k := range sortedKeys(s) {
		name := "<nil>"
		if t := s[k]; t != nil {
			name = t.Name()
		}
		out = append(out, Field{Key: k, Type: name})
	}
	return out
}

// MarshalJSON encodes the schema as an object of setting keys to type names.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	names := make(map[string]string, len(s))
	for _, f := range s.Fields() {
		if s[f.Key] == nil {
			return nil, fmt.Errorf("setting %q: type is nil", f.Key)
		}
		names[f.Key] = f.Type
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes an object of setting keys to type names.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	if names == nil {
		*s = nil
		return nil
	}
	parsed, err := ParseTypeMap(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
