package memory

import (
	"sort"
	"sync"

	"github.com/aretw0/skilltree/pkg/domain"
)

// World implements domain.World over a flat entity list.
// Safe for concurrent use.
type World struct {
	entities map[string]domain.Entity
	ticks    int64
	mu       sync.RWMutex
}

// NewWorld creates a world holding the given entities.
func NewWorld(entities ...domain.Entity) *World {
	w := &World{entities: make(map[string]domain.Entity, len(entities))}
	for _, e := range entities {
		w.entities[e.ID()] = e
	}
	return w
}

// Add inserts or replaces an entity.
func (w *World) Add(e domain.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities[e.ID()] = e
}

// Remove drops an entity by ID.
func (w *World) Remove(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entities, id)
}

// Entity looks an entity up by ID.
func (w *World) Entity(id string) (domain.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

// Entities returns every entity ordered by ID.
func (w *World) Entities() []domain.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Nearby returns the entities within radius of center, ordered by ID.
func (w *World) Nearby(center domain.Vec3, radius float64) []domain.Entity {
	r2 := radius * radius
	var out []domain.Entity
	for _, e := range w.Entities() {
		if e.Position().Sub(center).LenSq() <= r2 {
			out = append(out, e)
		}
	}
	return out
}

// Time returns the world clock.
func (w *World) Time() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ticks
}

// SetTime sets the world clock; values wrap into one day.
func (w *World) SetTime(ticks int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ticks = ((ticks % domain.DayTicks) + domain.DayTicks) % domain.DayTicks
}
