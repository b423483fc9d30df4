// Package level evaluates level-dependent numeric parameters.
//
// A parameter is authored as a base value with an optional per-level scale
// and optional clamps. For a setting named "radius" the document keys are:
//
//	radius            base value at level 1
//	radius-per-level  added for every level above 1
//	radius-min        lower clamp
//	radius-max        upper clamp
package level

import (
	"math"

	"github.com/aretw0/skilltree/pkg/domain"
)

// Suffixes of the companion setting keys.
const (
	SuffixPerLevel = "-per-level"
	SuffixMin      = "-min"
	SuffixMax      = "-max"
)

// Param is a level-parameterized value: Base + PerLevel*(level-1), clamped.
type Param struct {
	Base     float64
	PerLevel float64
	Min      *float64
	Max      *float64
}

// Const returns a parameter that does not scale with level.
func Const(v float64) Param {
	return Param{Base: v}
}

// Linear returns an unclamped linear parameter.
func Linear(base, perLevel float64) Param {
	return Param{Base: base, PerLevel: perLevel}
}

// WithMin returns a copy of p clamped from below.
func (p Param) WithMin(min float64) Param {
	p.Min = &min
	return p
}

// WithMax returns a copy of p clamped from above.
func (p Param) WithMax(max float64) Param {
	p.Max = &max
	return p
}

// Eval computes the value at level. Levels below 1 evaluate as level 1.
func (p Param) Eval(level int) float64 {
	if level < 1 {
		level = 1
	}
	v := p.Base + p.PerLevel*float64(level-1)
	if p.Min != nil && v < *p.Min {
		v = *p.Min
	}
	if p.Max != nil && v > *p.Max {
		v = *p.Max
	}
	return v
}

// EvalInt computes the value at level rounded to the nearest integer.
func (p Param) EvalInt(level int) int {
	return int(math.Round(p.Eval(level)))
}

// IsZero reports whether p always evaluates to 0 without clamps.
func (p Param) IsZero() bool {
	return p.Base == 0 && p.PerLevel == 0 && p.Min == nil && p.Max == nil
}

// FromSettings reads the parameter named key. def is used as the base when
// key is absent. ok is false when a present companion key is not numeric.
func FromSettings(s domain.Settings, key string, def float64) (Param, bool) {
	p := Param{Base: def}
	ok := true
	if v, found := s[key]; found {
		f, numeric := v.AsFloat()
		ok = ok && numeric
		p.Base = f
	}
	if v, found := s[key+SuffixPerLevel]; found {
		f, numeric := v.AsFloat()
		ok = ok && numeric
		p.PerLevel = f
	}
	if v, found := s[key+SuffixMin]; found {
		f, numeric := v.AsFloat()
		ok = ok && numeric
		p.Min = &f
	}
	if v, found := s[key+SuffixMax]; found {
		f, numeric := v.AsFloat()
		ok = ok && numeric
		p.Max = &f
	}
	return p, ok
}

// Keys returns the document keys that belong to the parameter named key.
func Keys(key string) []string {
	return []string{key, key + SuffixPerLevel, key + SuffixMin, key + SuffixMax}
}
