package components

import (
	"strings"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// Time-of-day buckets over a DayTicks-long day.
const (
	TimeDay   = "day"
	TimeDusk  = "dusk"
	TimeNight = "night"
	TimeDawn  = "dawn"
)

// TimeBucket maps a world clock value to its time-of-day bucket.
func TimeBucket(ticks int64) string {
	t := ticks % domain.DayTicks
	if t < 0 {
		t += domain.DayTicks
	}
	switch {
	case t < 12000:
		return TimeDay
	case t < 13800:
		return TimeDusk
	case t < 22200:
		return TimeNight
	default:
		return TimeDawn
	}
}

func materialMatches(equipped, material string) bool {
	return equipped != "" && strings.EqualFold(equipped, material)
}

type armorConfig struct {
	Material string `mapstructure:"material"`
	Slot     string `mapstructure:"slot"`
}

// Armor passes when the subject wears the material in the slot, or in any
// armor slot when Slot is "any".
type Armor struct {
	cfg armorConfig
}

func (cd *Armor) Category() domain.Category { return domain.CategoryCondition }

func (cd *Armor) Test(_ *domain.Cast, subject domain.Entity) bool {
	slots := domain.ArmorSlots
	if cd.cfg.Slot != "" && cd.cfg.Slot != "any" {
		slots = []domain.Slot{domain.Slot(cd.cfg.Slot)}
	}
	for _, slot := range slots {
		if materialMatches(subject.Equipment(slot), cd.cfg.Material) {
			return true
		}
	}
	return false
}

type toolConfig struct {
	Material string `mapstructure:"material"`
	Hand     string `mapstructure:"hand"`
}

// Tool passes when the subject holds the material in the configured hand.
type Tool struct {
	cfg toolConfig
}

func (cd *Tool) Category() domain.Category { return domain.CategoryCondition }

func (cd *Tool) Test(_ *domain.Cast, subject domain.Entity) bool {
	var slots []domain.Slot
	switch cd.cfg.Hand {
	case "off":
		slots = []domain.Slot{domain.SlotOffHand}
	case "any":
		slots = domain.HandSlots
	default:
		slots = []domain.Slot{domain.SlotMainHand}
	}
	for _, slot := range slots {
		if materialMatches(subject.Equipment(slot), cd.cfg.Material) {
			return true
		}
	}
	return false
}

// Biome passes when the subject's biome contains any of the configured names.
type Biome struct {
	names []string
}

func (cd *Biome) Category() domain.Category { return domain.CategoryCondition }

func (cd *Biome) Test(_ *domain.Cast, subject domain.Entity) bool {
	biome := strings.ToLower(subject.Environment().Biome)
	for _, n := range cd.names {
		if strings.Contains(biome, n) {
			return true
		}
	}
	return false
}

// TimeOfDay passes when the world clock is in the configured bucket.
type TimeOfDay struct {
	Bucket string `mapstructure:"time"`
}

func (cd *TimeOfDay) Category() domain.Category { return domain.CategoryCondition }

func (cd *TimeOfDay) Test(c *domain.Cast, _ domain.Entity) bool {
	if c.World == nil {
		return false
	}
	return TimeBucket(c.World.Time()) == cd.Bucket
}

type waterConfig struct {
	InWater bool `mapstructure:"in-water"`
}

// Water tests submersion. In water means a depth of at least MinDepth (and
// more than zero); out of water means no submersion at all.
type Water struct {
	cfg      waterConfig
	MinDepth level.Param
}

func (cd *Water) Category() domain.Category { return domain.CategoryCondition }

func (cd *Water) Test(c *domain.Cast, subject domain.Entity) bool {
	depth := subject.Environment().SubmersionDepth
	if !cd.cfg.InWater {
		return depth <= 0
	}
	return depth > 0 && depth >= cd.MinDepth.Eval(c.Level)
}

type fireConfig struct {
	OnFire bool `mapstructure:"on-fire"`
}

// Fire tests whether the subject is burning for at least MinTicks.
type Fire struct {
	cfg      fireConfig
	MinTicks level.Param
}

func (cd *Fire) Category() domain.Category { return domain.CategoryCondition }

func (cd *Fire) Test(c *domain.Cast, subject domain.Entity) bool {
	ticks := subject.Environment().FireTicks
	burning := ticks > 0 && float64(ticks) >= cd.MinTicks.Eval(c.Level)
	return burning == cd.cfg.OnFire
}

func environmentSpecs() []Spec {
	cond := domain.CategoryCondition
	slots := []string{"any"}
	for _, s := range domain.ArmorSlots {
		slots = append(slots, string(s))
	}
	return []Spec{
		predicateSpec(cond, "armor", "armor material by slot",
			schema.Schema{
				"material": schema.Required(schema.String()),
				"slot":     schema.OneOf(slots...),
			},
			func(s domain.Settings) (domain.Component, error) {
				cd := &Armor{cfg: armorConfig{Slot: "any"}}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				cd.cfg.Slot = strings.ToLower(cd.cfg.Slot)
				return cd, nil
			}),
		predicateSpec(cond, "tool", "held material by hand",
			schema.Schema{
				"material": schema.Required(schema.String()),
				"hand":     schema.OneOf("main", "off", "any"),
			},
			func(s domain.Settings) (domain.Component, error) {
				cd := &Tool{cfg: toolConfig{Hand: "main"}}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				cd.cfg.Hand = strings.ToLower(cd.cfg.Hand)
				return cd, nil
			}),
		predicateSpec(cond, "biome", "biome name substring, comma separated alternatives",
			schema.Schema{"biome": schema.Required(schema.String())},
			func(s domain.Settings) (domain.Component, error) {
				var cfg struct {
					Biome string `mapstructure:"biome"`
				}
				if err := decode(s, &cfg); err != nil {
					return nil, err
				}
				cd := &Biome{}
				for _, n := range strings.Split(cfg.Biome, ",") {
					if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
						cd.names = append(cd.names, n)
					}
				}
				return cd, nil
			}),
		predicateSpec(cond, "time", "time-of-day bucket of the world clock",
			schema.Schema{"time": schema.Required(schema.OneOf(TimeDay, TimeDusk, TimeNight, TimeDawn))},
			func(s domain.Settings) (domain.Component, error) {
				cd := &TimeOfDay{}
				if err := decode(s, cd); err != nil {
					return nil, err
				}
				cd.Bucket = strings.ToLower(cd.Bucket)
				return cd, nil
			}),
		predicateSpec(cond, "water", "submersion with a minimum depth",
			schema.Level(schema.Schema{"in-water": schema.Bool()}, "min-depth"),
			func(s domain.Settings) (domain.Component, error) {
				cd := &Water{cfg: waterConfig{InWater: true}, MinDepth: param(s, "min-depth", 0)}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
		predicateSpec(cond, "fire", "active fire ticks",
			schema.Level(schema.Schema{"on-fire": schema.Bool()}, "min-ticks"),
			func(s domain.Settings) (domain.Component, error) {
				cd := &Fire{cfg: fireConfig{OnFire: true}, MinTicks: param(s, "min-ticks", 1)}
				if err := decode(s, &cd.cfg); err != nil {
					return nil, err
				}
				return cd, nil
			}),
	}
}
