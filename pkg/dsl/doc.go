/*
Package dsl provides a Go DSL for programmatically constructing skill documents.

It allows developers to define skills with a fluent builder instead of
relying on external YAML or JSON files. This is particularly useful for
generated content, unit testing, and leveraging IDE autocompletion.

Example usage:

	b := dsl.New()

	b.Add("firebolt").
		Name("Firebolt").
		MaxLevel(5).
		Components(
			dsl.Trigger("cast",
				dsl.Cost("mana").Set("mana", 10).Set("mana-per-level", 2),
				dsl.Cooldown().Set("cooldown", 4),
				dsl.Target("nearest-hostile").Set("range", 8).Then(
					dsl.Mechanic("damage").Set("amount", 6),
				),
			),
		)

	// The resulting loader can be passed to skilltree.WithLoader.
	loader, err := b.Build()
*/
package dsl
