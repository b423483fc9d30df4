package components_test

import (
	"testing"
	"time"

	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func predicate(t *testing.T, key string, raw map[string]any) domain.Predicate {
	t.Helper()
	p, ok := build(t, domain.CategoryCondition, key, raw).(domain.Predicate)
	require.True(t, ok, "%s is not a predicate", key)
	return p
}

type predicateCase struct {
	name    string
	key     string
	raw     map[string]any
	subject *entity.Mob
	want    bool
}

func runPredicates(t *testing.T, c *domain.Cast, tests []predicateCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, predicate(t, tt.key, tt.raw).Test(c, tt.subject))
		})
	}
}

func TestConditions_Subject(t *testing.T) {
	now := time.Now()
	caster := entity.New("caster", entity.WithHealth(10, 20))
	c := newCast(caster, nil)
	c.Now = now

	knight := entity.New("knight", entity.WithClass("knight", "fighter"))
	hurt := entity.New("hurt", entity.DamagedAt(now.Add(-3*time.Second)))
	calm := entity.New("calm")
	poisoned := entity.New("poisoned", entity.WithEffect("poison", 2))
	fed := entity.New("fed", entity.WithAttribute(domain.AttrFood, 10, 20))

	runPredicates(t, c, []predicateCase{
		{"class by lineage", "class", map[string]any{"class": "fighter"}, knight, true},
		{"class exact misses ancestor", "class", map[string]any{"class": "fighter", "exact": true}, knight, false},
		{"class exact current", "class", map[string]any{"class": "Knight", "exact": true}, knight, true},
		{"class outside lineage", "class", map[string]any{"class": "mage"}, knight, false},
		{"classless", "class", map[string]any{"class": "fighter"}, calm, false},

		{"combat inside window", "combat", map[string]any{"seconds": 5.0}, hurt, true},
		{"combat window elapsed", "combat", map[string]any{"seconds": 2.0}, hurt, false},
		{"out of combat after window", "combat", map[string]any{"combat": false, "seconds": 2.0}, hurt, true},
		{"never damaged", "combat", map[string]any{"combat": false}, calm, true},
		{"never damaged is not in combat", "combat", map[string]any{}, calm, false},

		{"status potency met", "status", map[string]any{"effect": "poison", "potency": 2.0}, poisoned, true},
		{"status potency short", "status", map[string]any{"effect": "poison", "potency": 3.0}, poisoned, false},
		{"status absent", "status", map[string]any{"effect": "slow"}, poisoned, false},

		{"attribute percent", "attribute", map[string]any{"attribute": "food", "percent": true, "min-value": 40.0, "max-value": 60.0}, fed, true},
		{"attribute absolute", "attribute", map[string]any{"attribute": "food", "min-value": 40.0}, fed, false},
		{"attribute absolute in range", "attribute", map[string]any{"attribute": "food", "max-value": 10.0}, fed, true},

		{"health percent", "health", map[string]any{"type": "percent", "max-value": 50.0}, caster, true},
		{"health difference", "health", map[string]any{"type": "difference", "min-value": 10.0}, calm, true},
		{"negate inverts", "health", map[string]any{"min-value": 15.0, "negate": true}, caster, true},
		{"negate on a passing test", "class", map[string]any{"class": "knight", "negate": true}, knight, false},
	})
}

func TestConditions_Chance(t *testing.T) {
	subject := entity.New("subject")
	chance := predicate(t, "chance", map[string]any{"chance": 30.0})

	c := newCast(subject, nil)
	c.Rand = fixedRand{f: 0.2}
	assert.True(t, chance.Test(c, subject))

	c.Rand = fixedRand{f: 0.5}
	assert.False(t, chance.Test(c, subject))

	scaled := predicate(t, "chance", map[string]any{"chance": 30.0, "chance-per-level": 30.0})
	c.Level = 2
	assert.True(t, scaled.Test(c, subject))
}

func TestConditions_Environment(t *testing.T) {
	forest := entity.New("forest", entity.WithEnvironment(domain.Environment{Biome: "Dark_Forest"}))
	diver := entity.New("diver", entity.WithEnvironment(domain.Environment{SubmersionDepth: 1.5}))
	burning := entity.New("burning", entity.WithEnvironment(domain.Environment{FireTicks: 40}))
	dry := entity.New("dry")
	armored := entity.New("armored",
		entity.WithEquipment(domain.SlotChest, "iron"),
		entity.WithEquipment(domain.SlotOffHand, "wood"))

	world := memory.NewWorld()
	world.SetTime(13000)
	c := newCast(dry, world)

	runPredicates(t, c, []predicateCase{
		{"biome alternative", "biome", map[string]any{"biome": "desert, forest"}, forest, true},
		{"biome miss", "biome", map[string]any{"biome": "desert"}, forest, false},

		{"dusk", "time", map[string]any{"time": "dusk"}, dry, true},
		{"not night", "time", map[string]any{"time": "night"}, dry, false},

		{"submerged", "water", map[string]any{"min-depth": 1.0}, diver, true},
		{"too shallow", "water", map[string]any{"min-depth": 2.0}, diver, false},
		{"dry is not submerged", "water", map[string]any{}, dry, false},
		{"out of water", "water", map[string]any{"in-water": false}, dry, true},
		{"wet is not out of water", "water", map[string]any{"in-water": false}, diver, false},

		{"burning", "fire", map[string]any{"min-ticks": 20.0}, burning, true},
		{"burning too briefly", "fire", map[string]any{"min-ticks": 60.0}, burning, false},
		{"not burning", "fire", map[string]any{"on-fire": false}, dry, true},

		{"armor any slot", "armor", map[string]any{"material": "IRON"}, armored, true},
		{"armor wrong slot", "armor", map[string]any{"material": "iron", "slot": "helmet"}, armored, false},
		{"tool off hand", "tool", map[string]any{"material": "wood", "hand": "off"}, armored, true},
		{"tool main hand", "tool", map[string]any{"material": "wood"}, armored, false},
	})
}

func TestConditions_TimeNeedsWorld(t *testing.T) {
	subject := entity.New("subject")
	p := predicate(t, "time", map[string]any{"time": "day"})
	assert.False(t, p.Test(newCast(subject, nil), subject))
}

func TestTimeBucket(t *testing.T) {
	tests := []struct {
		ticks int64
		want  string
	}{
		{0, components.TimeDay},
		{11999, components.TimeDay},
		{12000, components.TimeDusk},
		{13800, components.TimeNight},
		{22200, components.TimeDawn},
		{24000, components.TimeDay},
		{-1, components.TimeDawn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, components.TimeBucket(tt.ticks), "ticks %d", tt.ticks)
	}
}
