package components

import (
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// Trigger is the root behavior. Mode records how the skill is entered; the
// interpreter treats every mode the same way.
type Trigger struct {
	Mode string
}

func (t *Trigger) Category() domain.Category { return domain.CategoryTrigger }

// Cooldown is the time gate under a trigger.
type Cooldown struct {
	Seconds level.Param
}

func (c *Cooldown) Category() domain.Category { return domain.CategoryCooldown }

// Duration returns the cooldown length at level.
func (c *Cooldown) Duration(lvl int) time.Duration {
	secs := c.Seconds.Eval(lvl)
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func triggerSpecs() []Spec {
	newTrigger := func(mode string) Factory {
		return func(domain.Settings) (domain.Component, error) {
			return &Trigger{Mode: mode}, nil
		}
	}
	return []Spec{
		{
			Category: domain.CategoryTrigger,
			Key:      "cast",
			Summary:  "entered by a manual cast",
			Schema:   schema.Schema{},
			New:      newTrigger("cast"),
		},
		{
			Category: domain.CategoryTrigger,
			Key:      "passive",
			Summary:  "entered on equip, level-up and periodic reapplication",
			Schema:   schema.Schema{},
			New:      newTrigger("passive"),
		},
		{
			Category: domain.CategoryCooldown,
			Key:      "cooldown",
			Summary:  "per caster and skill reuse delay in seconds",
			Schema:   schema.Level(schema.Schema{}, "cooldown"),
			New: func(s domain.Settings) (domain.Component, error) {
				return &Cooldown{Seconds: param(s, "cooldown", 0)}, nil
			},
		},
	}
}
