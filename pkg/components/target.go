package components

import (
	"math"
	"sort"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// hostile reports whether e counts as hostile to the caster. Entities
// controlled by a person are never hostile by default.
func hostile(caster domain.Entity, e domain.Entity) bool {
	return e.ID() != caster.ID() && !e.Human()
}

// nearby returns the living entities within radius of the caster ordered by
// ascending distance. The caster is excluded unless includeCaster is set.
func nearby(c *domain.Cast, radius float64, includeCaster bool) []domain.Entity {
	var out []domain.Entity
	if includeCaster {
		out = append(out, c.Caster)
	}
	if c.World == nil || radius <= 0 {
		return out
	}
	origin := c.Caster.Position()
	for _, e := range c.World.Nearby(origin, radius) {
		if e.ID() == c.Caster.ID() || !e.Alive() {
			continue
		}
		if e.Position().DistanceTo(origin) > radius {
			continue
		}
		out = append(out, e)
	}
	sortByDistance(origin, out)
	return out
}

// sortByDistance orders entities by distance from origin, then by ID.
func sortByDistance(origin domain.Vec3, es []domain.Entity) {
	sort.SliceStable(es, func(i, j int) bool {
		di := es[i].Position().Sub(origin).LenSq()
		dj := es[j].Position().Sub(origin).LenSq()
		if di != dj {
			return di < dj
		}
		return es[i].ID() < es[j].ID()
	})
}

func filterHostile(c *domain.Cast, es []domain.Entity) []domain.Entity {
	out := es[:0:0]
	for _, e := range es {
		if hostile(c.Caster, e) {
			out = append(out, e)
		}
	}
	return out
}

// nearest returns the entity closest to the caster, or nil.
func nearest(c *domain.Cast, es []domain.Entity) domain.Entity {
	var best domain.Entity
	bestDist := math.Inf(1)
	origin := c.Caster.Position()
	for _, e := range es {
		if d := e.Position().Sub(origin).LenSq(); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// limitTargets caps the set at max entries; max <= 0 means no cap.
func limitTargets(es []domain.Entity, max int) []domain.Entity {
	if max <= 0 || len(es) <= max {
		return es
	}
	return es[:max]
}

// Self selects the caster.
type Self struct{}

func (s *Self) Category() domain.Category { return domain.CategoryTarget }

func (s *Self) Select(c *domain.Cast) []domain.Entity {
	return []domain.Entity{c.Caster}
}

// NearestHostile selects the closest hostile entity within range.
type NearestHostile struct {
	Range level.Param
}

func (s *NearestHostile) Category() domain.Category { return domain.CategoryTarget }

func (s *NearestHostile) Select(c *domain.Cast) []domain.Entity {
	e := nearest(c, filterHostile(c, nearby(c, s.Range.Eval(c.Level), false)))
	if e == nil {
		return nil
	}
	return []domain.Entity{e}
}

type singleConfig struct {
	Self    bool `mapstructure:"self"`
	Random  bool `mapstructure:"random"`
	Hostile bool `mapstructure:"hostile"`
}

// Single selects one entity: the caster, the nearest or a random one in range.
type Single struct {
	cfg   singleConfig
	Range level.Param
}

func (s *Single) Category() domain.Category { return domain.CategoryTarget }

func (s *Single) Select(c *domain.Cast) []domain.Entity {
	if s.cfg.Self {
		return []domain.Entity{c.Caster}
	}
	candidates := nearby(c, s.Range.Eval(c.Level), false)
	if s.cfg.Hostile {
		candidates = filterHostile(c, candidates)
	}
	if len(candidates) == 0 {
		return nil
	}
	if s.cfg.Random {
		return []domain.Entity{candidates[intN(c, len(candidates))]}
	}
	return []domain.Entity{nearest(c, candidates)}
}

func targetSpecs() []Spec {
	return []Spec{
		{
			Category: domain.CategoryTarget,
			Key:      "self",
			Summary:  "the caster",
			Schema:   schema.Schema{},
			New: func(domain.Settings) (domain.Component, error) {
				return &Self{}, nil
			},
		},
		{
			Category: domain.CategoryTarget,
			Key:      "nearest-hostile",
			Summary:  "closest non-human entity within range",
			Schema:   schema.Level(schema.Schema{}, "range"),
			New: func(s domain.Settings) (domain.Component, error) {
				return &NearestHostile{Range: param(s, "range", 5)}, nil
			},
		},
		{
			Category: domain.CategoryTarget,
			Key:      "single",
			Summary:  "the caster, or the nearest or a random entity within range",
			Schema: schema.Level(schema.Schema{
				"self":    schema.Bool(),
				"random":  schema.Bool(),
				"hostile": schema.Bool(),
			}, "range"),
			New: func(s domain.Settings) (domain.Component, error) {
				sel := &Single{Range: param(s, "range", 5)}
				if err := decode(s, &sel.cfg); err != nil {
					return nil, err
				}
				return sel, nil
			},
		},
		shapeSpec("sphere", "entities within a radius", []string{"radius"}, newSphere),
		shapeSpec("area", "entities within a width by depth rectangle around the caster", []string{"width", "depth", "height", "offset"}, newArea),
		shapeSpec("cone", "entities within range and half the angle of the facing direction", []string{"range", "angle"}, newCone),
		shapeSpec("sector", "horizontal cone slice with a vertical tolerance", []string{"radius", "angle", "height"}, newSector),
		shapeSpec("line", "entities along the facing ray, nearest first", []string{"length", "width"}, newLine),
	}
}
