package domain

import (
	"math"
	"time"
)

// Vec3 is a position or direction in world space. Y is the vertical axis.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LenSq() float64 { return v.Dot(v) }
func (v Vec3) Len() float64 { return math.Sqrt(v.LenSq()) }
func (v Vec3) Horizontal() Vec3 { return Vec3{X: v.X, Z: v.Z} }
func (v Vec3) DistanceTo(o Vec3) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Slot names an equipment slot.
type Slot string

const (
	SlotHelmet   Slot = "helmet"
	SlotChest    Slot = "chestplate"
	SlotLegs     Slot = "leggings"
	SlotBoots    Slot = "boots"
	SlotMainHand Slot = "hand"
	SlotOffHand  Slot = "offhand"
)

// ArmorSlots lists the armor slots, head to feet.
var ArmorSlots = []Slot{SlotHelmet, SlotChest, SlotLegs, SlotBoots}

// HandSlots lists the held-item slots.
var HandSlots = []Slot{SlotMainHand, SlotOffHand}

// Attribute names a generic numeric entity attribute.
type Attribute string

const (
	AttrHealth     Attribute = "health"
	AttrFood       Attribute = "food"
	AttrExperience Attribute = "experience"
	AttrLevel      Attribute = "level"
)

// Environment is the environmental state around an entity.
type Environment struct {
	Biome           string
	SubmersionDepth float64
	FireTicks       int
}

// Entity is a subject a skill can select, test and affect. Implementations are
// owned by the host game; the engine only reads them.
type Entity interface {
	ID() string
	Position() Vec3
	// Facing is the unit look direction.
	Facing() Vec3
	// Human reports whether the entity is controlled by a person.
	Human() bool
	Alive() bool
	Health() float64
	MaxHealth() float64
	Mana() float64
	MaxMana() float64
	// LastDamaged is the zero time when the entity was never damaged.
	LastDamaged() time.Time
	Class() string
	// ClassLineage is the entity's class followed by its parent classes.
	ClassLineage() []string
	// Equipment returns the material name in slot, empty when nothing is equipped.
	Equipment(slot Slot) string
	Environment() Environment
	StatusEffect(name string) (potency int, ok bool)
	// Attribute returns the current value and its maximum (0 when unbounded).
	Attribute(attr Attribute) (value, max float64)
}

// Caster is the entity invoking a skill, with the resource operations the
// cost gates need.
type Caster interface {
	Entity
	HasMana(amount float64) bool
	ConsumeMana(amount float64) bool
	DeductHealth(amount float64)
	HasItem(kind string, quantity int) bool
	ConsumeItem(kind string, quantity int) bool
}

// World answers spatial queries around a point.
type World interface {
	// Nearby returns the entities within radius of center.
	Nearby(center Vec3, radius float64) []Entity
	// Time is the world clock in ticks; a day lasts DayTicks.
	Time() int64
}

// DayTicks is the length of one world day.
const DayTicks = 24000
