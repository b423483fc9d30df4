package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/schema"
)

type effect struct {
	fn     domain.EffectFunc
	schema schema.Schema
}

// Effects manages the available mechanic effects. It satisfies
// components.EffectSource.
type Effects struct {
	mu      sync.RWMutex
	effects map[string]effect
}

// NewEffects creates a new empty effect registry.
func NewEffects() *Effects {
	return &Effects{
		effects: make(map[string]effect),
	}
}

// Register adds an effect whose settings are not checked.
// If an effect with the same key exists, it is overwritten.
func (r *Effects) Register(key string, fn domain.EffectFunc) {
	r.RegisterWithSchema(key, fn, nil)
}

// RegisterWithSchema adds an effect with a settings schema used at load time.
func (r *Effects) RegisterWithSchema(key string, fn domain.EffectFunc, s schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[strings.ToLower(key)] = effect{fn: fn, schema: s}
}

// Effect looks up an effect by key.
func (r *Effects) Effect(key string) (domain.EffectFunc, schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.effects[strings.ToLower(key)]
	return e.fn, e.schema, ok
}

// Keys returns the registered effect keys, sorted.
func (r *Effects) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.effects))
	for k := range r.effects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply looks up an effect by key and runs it.
// Returns an error if the effect is not found.
func (r *Effects) Apply(key string, c *domain.Cast, subject domain.Entity, settings domain.Settings) error {
	fn, _, ok := r.Effect(key)
	if !ok {
		return fmt.Errorf("effect not found: %s", key)
	}
	return fn(c, subject, settings)
}
