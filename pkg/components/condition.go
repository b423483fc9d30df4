package components

import (
	"math"
	"strings"
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// Threshold modes for resource conditions.
const (
	ModeAbsolute          = "absolute"
	ModePercent           = "percent"
	ModeDifference        = "difference"
	ModeDifferencePercent = "difference-percent"
)

// inRange reports whether v lies in [min, max] at the cast level.
func inRange(c *domain.Cast, v float64, min, max level.Param) bool {
	return v >= min.Eval(c.Level) && v <= max.Eval(c.Level)
}

func percent(cur, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return cur / max * 100
}

// Resource tests health or mana against a threshold. Percent values are in
// the 0-100 range. Difference modes compare the subject with the caster.
type Resource struct {
	Mode string      `mapstructure:"type"`
	Min  level.Param `mapstructure:"-"`
	Max  level.Param `mapstructure:"-"`

	get func(domain.Entity) (cur, max float64)
}

func (r *Resource) Category() domain.Category { return domain.CategoryCondition }

func (r *Resource) Test(c *domain.Cast, subject domain.Entity) bool {
	cur, max := r.get(subject)
	var v float64
	switch r.Mode {
	case ModePercent:
		v = percent(cur, max)
	case ModeDifference:
		casterCur, _ := r.get(c.Caster)
		v = cur - casterCur
	case ModeDifferencePercent:
		casterCur, casterMax := r.get(c.Caster)
		v = percent(cur, max) - percent(casterCur, casterMax)
	default:
		v = cur
	}
	return inRange(c, v, r.Min, r.Max)
}

type combatConfig struct {
	Combat bool `mapstructure:"combat"`
}

// Combat passes when the subject's combat state equals the configured one. A
// subject is in combat when it was damaged within the last Seconds.
type Combat struct {
	cfg     combatConfig
	Seconds level.Param
}

func (cd *Combat) Category() domain.Category { return domain.CategoryCondition }

func (cd *Combat) Test(c *domain.Cast, subject domain.Entity) bool {
	last := subject.LastDamaged()
	window := time.Duration(cd.Seconds.Eval(c.Level) * float64(time.Second))
	inCombat := !last.IsZero() && c.Now.Sub(last) < window
	return inCombat == cd.cfg.Combat
}

// Chance passes with a level-dependent probability given in percent.
type Chance struct {
	Percent level.Param
}

func (cd *Chance) Category() domain.Category { return domain.CategoryCondition }

func (cd *Chance) Test(c *domain.Cast, _ domain.Entity) bool {
	return randFloat(c)*100 < cd.Percent.Eval(c.Level)
}

type classConfig struct {
	Class string `mapstructure:"class"`
	Exact bool   `mapstructure:"exact"`
}

// Class tests class membership. In exact mode only the subject's current
// class matches; otherwise any class of its lineage does.
type Class struct {
	cfg classConfig
}

func (cd *Class) Category() domain.Category { return domain.CategoryCondition }

func (cd *Class) Test(_ *domain.Cast, subject domain.Entity) bool {
	if cd.cfg.Exact {
		return strings.EqualFold(subject.Class(), cd.cfg.Class)
	}
	lineage := subject.ClassLineage()
	if len(lineage) == 0 {
		return strings.EqualFold(subject.Class(), cd.cfg.Class)
	}
	for _, cls := range lineage {
		if strings.EqualFold(cls, cd.cfg.Class) {
			return true
		}
	}
	return false
}

type statusConfig struct {
	Effect string `mapstructure:"effect"`
}

// Status passes when the subject has an effect of at least the given potency.
type Status struct {
	cfg     statusConfig
	Potency level.Param
}

func (cd *Status) Category() domain.Category { return domain.CategoryCondition }

func (cd *Status) Test(c *domain.Cast, subject domain.Entity) bool {
	p, ok := subject.StatusEffect(cd.cfg.Effect)
	return ok && float64(p) >= cd.Potency.Eval(c.Level)
}

type attributeConfig struct {
	Attribute string `mapstructure:"attribute"`
	Percent   bool   `mapstructure:"percent"`
}

// Attribute checks a generic numeric attribute against [min, max].
type Attribute struct {
	cfg      attributeConfig
	Min, Max level.Param
}

func (cd *Attribute) Category() domain.Category { return domain.CategoryCondition }

func (cd *Attribute) Test(c *domain.Cast, subject domain.Entity) bool {
	v, max := subject.Attribute(domain.Attribute(strings.ToLower(cd.cfg.Attribute)))
	if cd.cfg.Percent {
		v = percent(v, max)
	}
	return inRange(c, v, cd.Min, cd.Max)
}

type eventConfig struct {
	Event string `mapstructure:"event"`
}

// Event never passes during traversal. Reaching it arms the node for Window;
// a matching fired event then runs its children with the event's subject.
type Event struct {
	cfg      eventConfig
	Duration level.Param
}

func (cd *Event) Category() domain.Category { return domain.CategoryCondition }

func (cd *Event) Test(*domain.Cast, domain.Entity) bool { return false }

// Event returns the lower-case event name.
func (cd *Event) Event() string { return strings.ToLower(cd.cfg.Event) }

// Window returns how long the node stays armed.
func (cd *Event) Window(lvl int) time.Duration {
	return time.Duration(cd.Duration.Eval(lvl) * float64(time.Second))
}

var _ domain.EventListener = (*Event)(nil)

func thresholdSchema() schema.Schema {
	s := schema.Schema{
		"type": schema.OneOf(ModeAbsolute, ModePercent, ModeDifference, ModeDifferencePercent),
	}
	schema.Level(s, "min-value")
	schema.Level(s, "max-value")
	return s
}

func newResource(get func(domain.Entity) (float64, float64)) Factory {
	return func(s domain.Settings) (domain.Component, error) {
		r := &Resource{
			Mode: ModeAbsolute,
			get:  get,
			Min:  param(s, "min-value", math.Inf(-1)),
			Max:  param(s, "max-value", math.Inf(1)),
		}
		if err := decode(s, r); err != nil {
			return nil, err
		}
		r.Mode = strings.ToLower(r.Mode)
		return r, nil
	}
}

func conditionSpecs() []Spec {
	cond := domain.CategoryCondition
	return []Spec{
		predicateSpec(cond, "health", "health threshold", thresholdSchema(),
			newResource(func(e domain.Entity) (float64, float64) { return e.Health(), e.MaxHealth() })),
		predicateSpec(cond, "mana", "mana threshold", thresholdSchema(),
			newResource(func(e domain.Entity) (float64, float64) { return e.Mana(), e.MaxMana() })),
		predicateSpec(cond, "combat", "damaged within the last seconds",
			schema.Level(schema.Schema{"combat": schema.Bool()}, "seconds"),
			func(s domain.Settings) (domain.Component, error) {
				cd := &Combat{cfg: combatConfig{Combat: true}, Seconds: param(s, "seconds", 10)}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
		predicateSpec(cond, "chance", "random roll against a percentage",
			schema.Level(schema.Schema{}, "chance"),
			func(s domain.Settings) (domain.Component, error) {
				return &Chance{Percent: param(s, "chance", 100)}, nil
			}),
		predicateSpec(cond, "class", "class membership, exact or by lineage",
			schema.Schema{"class": schema.Required(schema.String()), "exact": schema.Bool()},
			func(s domain.Settings) (domain.Component, error) {
				cd := &Class{}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
		predicateSpec(cond, "status", "status effect with a minimum potency",
			schema.Level(schema.Schema{"effect": schema.Required(schema.String())}, "potency"),
			func(s domain.Settings) (domain.Component, error) {
				cd := &Status{Potency: param(s, "potency", 0)}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
		predicateSpec(cond, "attribute", "numeric attribute range",
			schema.Level(schema.Level(schema.Schema{
				"attribute": schema.Required(schema.OneOf(
					string(domain.AttrHealth), string(domain.AttrFood),
					string(domain.AttrExperience), string(domain.AttrLevel))),
				"percent": schema.Bool(),
			}, "min-value"), "max-value"),
			func(s domain.Settings) (domain.Component, error) {
				cd := &Attribute{
					Min: param(s, "min-value", math.Inf(-1)),
					Max: param(s, "max-value", math.Inf(1)),
				}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
		{
			Category: cond,
			Key:      "event",
			Summary:  "armed by traversal, run when a matching event fires",
			Schema:   schema.Level(schema.Schema{"event": schema.Required(schema.String())}, "duration"),
			New: func(s domain.Settings) (domain.Component, error) {
				cd := &Event{Duration: param(s, "duration", 5)}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			},
		},
	}
}
