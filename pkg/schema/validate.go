package schema

import (
	"sort"

	"github.com/aretw0/skilltree/pkg/domain"
)

// Schema is a map of setting keys to their expected types.
type Schema map[string]Type

// Validate checks if settings conform to the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, settings domain.Settings) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error

	for _, key := range sortedKeys(schema) {
		fieldType := schema[key]
		value, exists := settings[key]
		if !exists {
			if IsRequired(fieldType) {
				errs = append(errs, &ValidationError{
					Key:    key,
					Reason: "required",
				})
			}
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// Unknown returns the sorted keys of settings that the schema does not define.
func Unknown(schema Schema, settings domain.Settings) []string {
	var out []string
	for key := range settings {
		if _, ok := schema[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Merge returns a new schema holding the fields of all given schemas.
// Later schemas win on duplicate keys.
func Merge(schemas ...Schema) Schema {
	out := make(Schema)
	for _, s := range schemas {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
