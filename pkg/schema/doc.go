// Package schema provides type-checked validation for component settings.
//
// It defines a small type system over domain.Value (string, int, float, bool,
// enumerations and custom validators). A Schema maps setting keys to types and
// is checked once at load time, so components can decode their settings into
// typed structs without further runtime coercion.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "material": schema.Required(schema.String()),
//	    "slot":     schema.OneOf("helmet", "chestplate", "leggings", "boots"),
//	}
//	schema.Level(s, "range")
//
//	if err := schema.Validate(s, settings); err != nil {
//	    // Handle validation errors
//	}
//
// Keys present in the settings but absent from the schema are reported by
// Unknown; callers treat them as warnings.
package schema
