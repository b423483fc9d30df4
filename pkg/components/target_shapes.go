package components

import (
	"math"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/level"
	"github.com/aretw0/skilltree/pkg/schema"
)

// shapeConfig holds the settings shared by every area selector.
type shapeConfig struct {
	IncludeCaster bool `mapstructure:"include-caster"`
	Hostile       bool `mapstructure:"hostile"`

	MaxTargets level.Param `mapstructure:"-"`
}

// collect scans radius, keeps the entities accepted by inside, applies the
// hostility filter and the cap. The caster, when included, bypasses inside.
func (cfg *shapeConfig) collect(c *domain.Cast, radius float64, inside func(d domain.Vec3) bool) []domain.Entity {
	origin := c.Caster.Position()
	var out []domain.Entity
	for _, e := range nearby(c, radius, cfg.IncludeCaster) {
		if e.ID() != c.Caster.ID() {
			if !inside(e.Position().Sub(origin)) {
				continue
			}
			if cfg.Hostile && !hostile(c.Caster, e) {
				continue
			}
		}
		out = append(out, e)
	}
	return limitTargets(out, cfg.MaxTargets.EvalInt(c.Level))
}

type shapeFactory func(s domain.Settings, cfg shapeConfig) domain.Component

func shapeSpec(key, summary string, params []string, ctor shapeFactory) Spec {
	s := schema.Schema{
		"include-caster": schema.Bool(),
		"hostile":        schema.Bool(),
	}
	schema.Level(s, "max-targets")
	for _, p := range params {
		schema.Level(s, p)
	}
	return Spec{
		Category: domain.CategoryTarget,
		Key:      key,
		Summary:  summary,
		Schema:   s,
		New: func(settings domain.Settings) (domain.Component, error) {
			var cfg shapeConfig
			if err := decode(settings, &cfg); err != nil {
				return nil, err
			}
			cfg.MaxTargets = param(settings, "max-targets", 0)
			return ctor(settings, cfg), nil
		},
	}
}

// facing returns the caster's unit look direction, +Z when undefined.
func facing(c *domain.Cast) domain.Vec3 {
	f := c.Caster.Facing().Normalize()
	if f.LenSq() == 0 {
		return domain.Vec3{Z: 1}
	}
	return f
}

// horizontalFacing returns the look direction projected on the ground plane.
func horizontalFacing(c *domain.Cast) domain.Vec3 {
	f := c.Caster.Facing().Horizontal().Normalize()
	if f.LenSq() == 0 {
		return domain.Vec3{Z: 1}
	}
	return f
}

// withinAngle reports whether d deviates from the unit vector f by at most
// halfAngle degrees.
func withinAngle(d, f domain.Vec3, halfAngle float64) bool {
	l := d.Len()
	if l == 0 {
		return true
	}
	if halfAngle >= 180 {
		return true
	}
	cos := d.Dot(f) / l
	return cos >= math.Cos(halfAngle*math.Pi/180)-1e-9
}

// Sphere selects every entity within radius.
type Sphere struct {
	shapeConfig
	Radius level.Param
}

func newSphere(s domain.Settings, cfg shapeConfig) domain.Component {
	return &Sphere{shapeConfig: cfg, Radius: param(s, "radius", 3)}
}

func (t *Sphere) Category() domain.Category { return domain.CategoryTarget }

func (t *Sphere) Select(c *domain.Cast) []domain.Entity {
	r := t.Radius.Eval(c.Level)
	return t.collect(c, r, func(domain.Vec3) bool { return true })
}

// Area selects entities inside a rectangle aligned with the caster's
// horizontal facing. Offset shifts the rectangle forward.
type Area struct {
	shapeConfig
	Width, Depth, Height, Offset level.Param
}

func newArea(s domain.Settings, cfg shapeConfig) domain.Component {
	return &Area{
		shapeConfig: cfg,
		Width:       param(s, "width", 3),
		Depth:       param(s, "depth", 3),
		Height:      param(s, "height", 0),
		Offset:      param(s, "offset", 0),
	}
}

func (t *Area) Category() domain.Category { return domain.CategoryTarget }

func (t *Area) Select(c *domain.Cast) []domain.Entity {
	halfW := t.Width.Eval(c.Level) / 2
	halfD := t.Depth.Eval(c.Level) / 2
	halfH := t.Height.Eval(c.Level) / 2
	offset := t.Offset.Eval(c.Level)

	forward := horizontalFacing(c)
	right := domain.Vec3{X: forward.Z, Z: -forward.X}

	reachH := halfH
	if reachH <= 0 {
		reachH = 256
	}
	radius := math.Sqrt(halfW*halfW+(halfD+math.Abs(offset))*(halfD+math.Abs(offset))) + reachH

	return t.collect(c, radius, func(d domain.Vec3) bool {
		along := d.Dot(forward) - offset
		side := d.Dot(right)
		if math.Abs(along) > halfD || math.Abs(side) > halfW {
			return false
		}
		return halfH <= 0 || math.Abs(d.Y) <= halfH
	})
}

// Cone selects entities within range whose direction deviates from the
// caster's facing by at most angle/2, in three dimensions.
type Cone struct {
	shapeConfig
	Range, Angle level.Param
}

func newCone(s domain.Settings, cfg shapeConfig) domain.Component {
	return &Cone{shapeConfig: cfg, Range: param(s, "range", 5), Angle: param(s, "angle", 90)}
}

func (t *Cone) Category() domain.Category { return domain.CategoryTarget }

func (t *Cone) Select(c *domain.Cast) []domain.Entity {
	f := facing(c)
	half := t.Angle.Eval(c.Level) / 2
	return t.collect(c, t.Range.Eval(c.Level), func(d domain.Vec3) bool {
		return withinAngle(d, f, half)
	})
}

// Sector is a cone measured on the ground plane, with an optional vertical
// tolerance of height/2.
type Sector struct {
	shapeConfig
	Radius, Angle, Height level.Param
}

func newSector(s domain.Settings, cfg shapeConfig) domain.Component {
	return &Sector{
		shapeConfig: cfg,
		Radius:      param(s, "radius", 5),
		Angle:       param(s, "angle", 90),
		Height:      param(s, "height", 0),
	}
}

func (t *Sector) Category() domain.Category { return domain.CategoryTarget }

func (t *Sector) Select(c *domain.Cast) []domain.Entity {
	f := horizontalFacing(c)
	half := t.Angle.Eval(c.Level) / 2
	radius := t.Radius.Eval(c.Level)
	halfH := t.Height.Eval(c.Level) / 2
	return t.collect(c, radius+halfH, func(d domain.Vec3) bool {
		if halfH > 0 && math.Abs(d.Y) > halfH {
			return false
		}
		flat := d.Horizontal()
		if flat.Len() > radius {
			return false
		}
		return withinAngle(flat, f, half)
	})
}

// Line selects entities inside a prism of length along the facing ray whose
// perpendicular distance from the ray is at most width. Results are ordered
// nearest first.
type Line struct {
	shapeConfig
	Length, Width level.Param
}

func newLine(s domain.Settings, cfg shapeConfig) domain.Component {
	return &Line{shapeConfig: cfg, Length: param(s, "length", 5), Width: param(s, "width", 1)}
}

func (t *Line) Category() domain.Category { return domain.CategoryTarget }

func (t *Line) Select(c *domain.Cast) []domain.Entity {
	f := facing(c)
	length := t.Length.Eval(c.Level)
	width := t.Width.Eval(c.Level)
	return t.collect(c, length+width, func(d domain.Vec3) bool {
		along := d.Dot(f)
		if along < 0 || along > length {
			return false
		}
		return d.Sub(f.Scale(along)).Len() <= width
	})
}
