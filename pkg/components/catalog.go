package components

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// ErrUnknownKey is returned when a node key is not registered for its category.
var ErrUnknownKey = errors.New("unknown component key")

// Factory builds a behavior from validated settings.
type Factory func(s domain.Settings) (domain.Component, error)

// Spec describes one registered behavior.
type Spec struct {
	Category domain.Category
	Key      string
	Summary  string
	Schema   schema.Schema
	New      Factory
}

// EffectSource resolves mechanic keys to effect implementations.
type EffectSource interface {
	Effect(key string) (domain.EffectFunc, schema.Schema, bool)
}

// defaultKeys is used when a node omits its key.
var defaultKeys = map[domain.Category]string{
	domain.CategoryTrigger:  "cast",
	domain.CategoryCooldown: "cooldown",
}

// Catalog maps (category, key) to behavior specs.
type Catalog struct {
	specs   map[domain.Category]map[string]Spec
	effects EffectSource
}

// NewCatalog returns a catalog with every built-in behavior registered.
// effects resolves mechanic keys; when nil, mechanic keys are not checked and
// mechanics have no effect.
func NewCatalog(effects EffectSource) *Catalog {
	c := &Catalog{
		specs:   make(map[domain.Category]map[string]Spec),
		effects: effects,
	}
	for _, s := range builtins() {
		c.Register(s)
	}
	return c
}

// Register adds or replaces a spec.
func (c *Catalog) Register(s Spec) {
	if c.specs[s.Category] == nil {
		c.specs[s.Category] = make(map[string]Spec)
	}
	c.specs[s.Category][s.Key] = s
}

// Lookup returns the spec for a category and key.
func (c *Catalog) Lookup(cat domain.Category, key string) (Spec, bool) {
	key = NormalizeKey(cat, key)
	if cat == domain.CategoryMechanic {
		return c.mechanicSpec(key)
	}
	s, ok := c.specs[cat][key]
	return s, ok
}

// keyLister is implemented by effect sources that can enumerate their keys.
type keyLister interface {
	Keys() []string
}

// Specs returns every registered spec sorted by category then key. Mechanics
// are included when the effect source can list its keys.
func (c *Catalog) Specs() []Spec {
	var out []Spec
	for _, byKey := range c.specs {
		for _, s := range byKey {
			out = append(out, s)
		}
	}
	if l, ok := c.effects.(keyLister); ok {
		for _, k := range l.Keys() {
			if s, ok := c.mechanicSpec(k); ok {
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Keys returns the registered keys of a category.
func (c *Catalog) Keys(cat domain.Category) []string {
	if cat == domain.CategoryMechanic {
		if l, ok := c.effects.(keyLister); ok {
			return l.Keys()
		}
		return nil
	}
	keys := make([]string, 0, len(c.specs[cat]))
	for k := range c.specs[cat] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build validates settings against the spec's schema and constructs the
// behavior. unknown lists settings keys the schema does not define.
func (c *Catalog) Build(cat domain.Category, key string, s domain.Settings) (comp domain.Component, unknown []string, err error) {
	spec, ok := c.Lookup(cat, key)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s %q", ErrUnknownKey, cat.Tag(), key)
	}
	if spec.Schema != nil {
		if err := schema.Validate(spec.Schema, s); err != nil {
			return nil, nil, err
		}
		unknown = schema.Unknown(spec.Schema, s)
	}
	comp, err = spec.New(s)
	if err != nil {
		return nil, unknown, err
	}
	return comp, unknown, nil
}

func (c *Catalog) mechanicSpec(key string) (Spec, bool) {
	if c.effects == nil {
		return Spec{
			Category: domain.CategoryMechanic,
			Key:      key,
			New: func(s domain.Settings) (domain.Component, error) {
				return &Mechanic{key: key, settings: s}, nil
			},
		}, key != ""
	}
	fn, effectSchema, ok := c.effects.Effect(key)
	if !ok {
		return Spec{}, false
	}
	return Spec{
		Category: domain.CategoryMechanic,
		Key:      key,
		Schema:   effectSchema,
		New: func(s domain.Settings) (domain.Component, error) {
			return &Mechanic{key: key, settings: s, apply: fn}, nil
		},
	}, true
}

// NormalizeKey lower-cases key and applies the category default when it is empty.
func NormalizeKey(cat domain.Category, key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return defaultKeys[cat]
	}
	return key
}

// decode copies plain settings into a config struct using mapstructure tags.
func decode(s domain.Settings, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(s.Map()); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

// param reads a level-dependent parameter; schema validation has already
// checked that its keys are numeric.
func param(s domain.Settings, key string, def float64) level.Param {
	p, _ := level.FromSettings(s, key, def)
	return p
}

// predicateSchema adds the keys every predicate accepts.
func predicateSchema(s schema.Schema) schema.Schema {
	return schema.Merge(s, schema.Schema{"negate": schema.Bool()})
}

// predicateSpec wraps a predicate factory so "negate: true" inverts it.
func predicateSpec(cat domain.Category, key, summary string, s schema.Schema, f Factory) Spec {
	return Spec{
		Category: cat,
		Key:      key,
		Summary:  summary,
		Schema:   predicateSchema(s),
		New: func(settings domain.Settings) (domain.Component, error) {
			comp, err := f(settings)
			if err != nil {
				return nil, err
			}
			if v, ok := settings["negate"]; ok {
				if b, _ := v.AsBool(); b {
					if p, ok := comp.(domain.Predicate); ok {
						return &negated{Predicate: p}, nil
					}
				}
			}
			return comp, nil
		},
	}
}

type negated struct {
	domain.Predicate
}

func (n *negated) Test(c *domain.Cast, subject domain.Entity) bool {
	return !n.Predicate.Test(c, subject)
}

func builtins() []Spec {
	var specs []Spec
	specs = append(specs, triggerSpecs()...)
	specs = append(specs, targetSpecs()...)
	specs = append(specs, conditionSpecs()...)
	specs = append(specs, environmentSpecs()...)
	specs = append(specs, filterSpecs()...)
	specs = append(specs, costSpecs()...)
	return specs
}
