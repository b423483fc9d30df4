package components

import (
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// ManaCost checks for enough mana and deducts it.
type ManaCost struct {
	Amount level.Param
}

func (g *ManaCost) Category() domain.Category { return domain.CategoryCost }

func (g *ManaCost) Consume(c *domain.Cast) bool {
	amount := g.Amount.Eval(c.Level)
	if amount <= 0 {
		return true
	}
	if !c.Caster.HasMana(amount) {
		return false
	}
	return c.Caster.ConsumeMana(amount)
}

type healthCostConfig struct {
	AllowZero bool `mapstructure:"allow-zero"`
}

// HealthCost deducts hit points. Unless AllowZero is set the caster must be
// left with at least 1 health.
type HealthCost struct {
	cfg    healthCostConfig
	Amount level.Param
}

func (g *HealthCost) Category() domain.Category { return domain.CategoryCost }

func (g *HealthCost) Consume(c *domain.Cast) bool {
	amount := g.Amount.Eval(c.Level)
	if amount <= 0 {
		return true
	}
	floor := 1.0
	if g.cfg.AllowZero {
		floor = 0
	}
	if c.Caster.Health()-amount < floor {
		return false
	}
	c.Caster.DeductHealth(amount)
	return true
}

type itemCostConfig struct {
	Item      string `mapstructure:"item"`
	CheckOnly bool   `mapstructure:"check-only"`
}

// ItemCost requires a quantity of an item kind and consumes it unless
// CheckOnly is set.
type ItemCost struct {
	cfg      itemCostConfig
	Quantity level.Param
}

func (g *ItemCost) Category() domain.Category { return domain.CategoryCost }

func (g *ItemCost) Consume(c *domain.Cast) bool {
	qty := g.Quantity.EvalInt(c.Level)
	if qty <= 0 {
		return true
	}
	if !c.Caster.HasItem(g.cfg.Item, qty) {
		return false
	}
	if g.cfg.CheckOnly {
		return true
	}
	return c.Caster.ConsumeItem(g.cfg.Item, qty)
}

// StaminaCost always succeeds; stamina has no resource manager yet.
type StaminaCost struct {
	Amount level.Param
}

func (g *StaminaCost) Category() domain.Category { return domain.CategoryCost }

func (g *StaminaCost) Consume(*domain.Cast) bool { return true }

func costSpecs() []Spec {
	cost := domain.CategoryCost
	return []Spec{
		{
			Category: cost,
			Key:      "mana",
			Summary:  "deducts mana through the caster's resource manager",
			Schema:   schema.Level(schema.Schema{}, "mana"),
			New: func(s domain.Settings) (domain.Component, error) {
				return &ManaCost{Amount: param(s, "mana", 0)}, nil
			},
		},
		{
			Category: cost,
			Key:      "health",
			Summary:  "deducts current health",
			Schema:   schema.Level(schema.Schema{"allow-zero": schema.Bool()}, "health"),
			New: func(s domain.Settings) (domain.Component, error) {
				g := &HealthCost{Amount: param(s, "health", 0)}
				if err := decode(s, &g.cfg); err != nil {
					return nil, err
				}
				return g, nil
			},
		},
		{
			Category: cost,
			Key:      "item",
			Summary:  "requires and consumes held items",
			Schema: schema.Level(schema.Schema{
				"item":       schema.Required(schema.String()),
				"check-only": schema.Bool(),
			}, "quantity"),
			New: func(s domain.Settings) (domain.Component, error) {
				g := &ItemCost{Quantity: param(s, "quantity", 1)}
				if err := decode(s, &g.cfg); err != nil {
					return nil, err
				}
				g.cfg.Item = strings.ToLower(g.cfg.Item)
				return g, nil
			},
		},
		{
			Category: cost,
			Key:      "stamina",
			Summary:  "placeholder gate, always succeeds",
			Schema:   schema.Level(schema.Schema{}, "stamina"),
			New: func(s domain.Settings) (domain.Component, error) {
				return &StaminaCost{Amount: param(s, "stamina", 0)}, nil
			},
		},
	}
}
