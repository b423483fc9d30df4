package compiler_test

import (
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
)

type staticEffects map[string]bool

func (s staticEffects) Effect(key string) (domain.EffectFunc, schema.Schema, bool) {
	if !s[key] {
		return nil, nil, false
	}
	return func(*domain.Cast, domain.Entity, domain.Settings) error { return nil }, nil, true
}
