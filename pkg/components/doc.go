// Package components implements the built-in node behaviors: target
// selectors, condition and filter predicates, cost and cooldown gates and the
// mechanic adapter over the effect registry.
//
// Every behavior is registered in a Catalog under its category and key
// together with the schema of its settings. The compiler asks the catalog to
// build a behavior once per node at load time; behaviors are immutable and
// safe to share between concurrent casts.
package components
