// Package entity provides an in-memory Entity and Caster implementation used
// by the memory world adapter, fixtures and tests.
package entity

import (
	"strings"
	"sync"
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
)

// Mob is a mutable in-memory entity. It is safe for concurrent use.
type Mob struct {
	mu sync.RWMutex

	id      string
	human   bool
	pos     domain.Vec3
	facing  domain.Vec3
	health  float64
	maxHP   float64
	mana    float64
	maxMana float64
	damaged time.Time
	lineage []string
	equip   map[domain.Slot]string
	env     domain.Environment
	effects map[string]int
	attrs   map[domain.Attribute][2]float64
	items   map[string]int
}

// Option configures a Mob.
type Option func(*Mob)

// New creates a mob facing +Z with 20/20 health and no mana.
func New(id string, opts ...Option) *Mob {
	m := &Mob{
		id:      id,
		facing:  domain.Vec3{Z: 1},
		health:  20,
		maxHP:   20,
		equip:   make(map[domain.Slot]string),
		effects: make(map[string]int),
		attrs:   make(map[domain.Attribute][2]float64),
		items:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Human marks the mob as person-controlled.
func Human() Option { return func(m *Mob) { m.human = true } }

// At places the mob.
func At(x, y, z float64) Option {
	return func(m *Mob) { m.pos = domain.Vec3{X: x, Y: y, Z: z} }
}

// Facing sets the look direction; it is normalized.
func Facing(x, y, z float64) Option {
	return func(m *Mob) { m.facing = domain.Vec3{X: x, Y: y, Z: z}.Normalize() }
}

// WithHealth sets current and maximum health.
func WithHealth(current, max float64) Option {
	return func(m *Mob) { m.health, m.maxHP = current, max }
}

// WithMana sets current and maximum mana.
func WithMana(current, max float64) Option {
	return func(m *Mob) { m.mana, m.maxMana = current, max }
}

// WithClass sets the class lineage, current class first.
func WithClass(lineage ...string) Option {
	return func(m *Mob) { m.lineage = lineage }
}

// WithEquipment equips material in slot.
func WithEquipment(slot domain.Slot, material string) Option {
	return func(m *Mob) { m.equip[slot] = material }
}

// WithEnvironment sets the environmental state.
func WithEnvironment(env domain.Environment) Option {
	return func(m *Mob) { m.env = env }
}

// WithEffect adds a status effect.
func WithEffect(name string, potency int) Option {
	return func(m *Mob) { m.effects[strings.ToLower(name)] = potency }
}

// WithAttribute sets a generic attribute.
func WithAttribute(attr domain.Attribute, value, max float64) Option {
	return func(m *Mob) { m.attrs[attr] = [2]float64{value, max} }
}

// WithItem puts quantity of kind in the mob's inventory.
func WithItem(kind string, quantity int) Option {
	return func(m *Mob) { m.items[strings.ToLower(kind)] += quantity }
}

// DamagedAt records the last time the mob took damage.
func DamagedAt(t time.Time) Option {
	return func(m *Mob) { m.damaged = t }
}

func (m *Mob) ID() string { return m.id }

func (m *Mob) Position() domain.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pos
}

func (m *Mob) Facing() domain.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.facing
}

func (m *Mob) Human() bool { return m.human }

func (m *Mob) Alive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.health > 0
}

func (m *Mob) Health() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.health
}

func (m *Mob) MaxHealth() float64 { return m.maxHP }

func (m *Mob) Mana() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mana
}

func (m *Mob) MaxMana() float64 { return m.maxMana }

func (m *Mob) LastDamaged() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.damaged
}

func (m *Mob) Class() string {
	if len(m.lineage) == 0 {
		return ""
	}
	return m.lineage[0]
}

func (m *Mob) ClassLineage() []string { return m.lineage }

func (m *Mob) Equipment(slot domain.Slot) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.equip[slot]
}

func (m *Mob) Environment() domain.Environment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.env
}

func (m *Mob) StatusEffect(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.effects[strings.ToLower(name)]
	return p, ok
}

func (m *Mob) Attribute(attr domain.Attribute) (float64, float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if attr == domain.AttrHealth {
		return m.health, m.maxHP
	}
	v := m.attrs[attr]
	return v[0], v[1]
}

// HasMana reports whether at least amount mana is available.
func (m *Mob) HasMana(amount float64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mana >= amount
}

// ConsumeMana deducts amount when enough mana is available.
func (m *Mob) ConsumeMana(amount float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mana < amount {
		return false
	}
	m.mana -= amount
	return true
}

// DeductHealth lowers health by amount, never below zero.
func (m *Mob) DeductHealth(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.health -= amount
	if m.health < 0 {
		m.health = 0
	}
}

// HasItem reports whether at least quantity of kind is held.
func (m *Mob) HasItem(kind string, quantity int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[strings.ToLower(kind)] >= quantity
}

// ConsumeItem removes quantity of kind when enough is held.
func (m *Mob) ConsumeItem(kind string, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := strings.ToLower(kind)
	if m.items[k] < quantity {
		return false
	}
	m.items[k] -= quantity
	return true
}

// ItemCount returns the held quantity of kind.
func (m *Mob) ItemCount(kind string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[strings.ToLower(kind)]
}

// MoveTo relocates the mob.
func (m *Mob) MoveTo(pos domain.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = pos
}

// Damage lowers health and records the time of the hit.
func (m *Mob) Damage(amount float64, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.health -= amount
	if m.health < 0 {
		m.health = 0
	}
	m.damaged = at
}

// Heal raises health up to the maximum.
func (m *Mob) Heal(amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.health += amount
	if m.health > m.maxHP {
		m.health = m.maxHP
	}
}

var _ domain.Caster = (*Mob)(nil)
