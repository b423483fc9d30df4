package domain

import (
	"context"
	"time"
)

// Random is the randomness source used by chance conditions and random selection.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Cast is the per-cast environment shared by every component of one traversal.
// It is created fresh for a cast and discarded when traversal completes.
type Cast struct {
	Ctx    context.Context
	Skill  *Skill
	Caster Caster
	Level  int
	World  World
	Rand   Random
	Now    time.Time
}

// Component is the compiled behavior attached to a node.
type Component interface {
	Category() Category
}

// Selector computes a fresh candidate set. It ignores the inbound set.
type Selector interface {
	Component
	Select(c *Cast) []Entity
}

// Predicate tests a single candidate. Used by Condition and Filter nodes.
type Predicate interface {
	Component
	Test(c *Cast, subject Entity) bool
}

// CostGate consumes a resource. It has no side effect when it returns false.
type CostGate interface {
	Component
	Consume(c *Cast) bool
}

// CooldownGate describes the cooldown attached to a trigger. The timestamp
// table lives in the cooldown store, not in the gate.
type CooldownGate interface {
	Component
	Duration(level int) time.Duration
}

// Mechanic applies a game effect to one subject.
type Mechanic interface {
	Component
	Apply(c *Cast, subject Entity) error
}

// EventListener is implemented by event-driven conditions. They never pass
// during traversal; instead they arm for Window(level) and run their children
// when a matching event is fired.
type EventListener interface {
	Predicate
	Event() string
	Window(level int) time.Duration
}

// EffectFunc is the game-effect boundary: it applies a concrete effect to one
// subject. settings are the mechanic node's settings.
type EffectFunc func(c *Cast, subject Entity, settings Settings) error
