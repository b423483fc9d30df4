package runtime

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/skilltree/pkg/domain"
)

type armKey struct {
	caster string
	skill  string
	node   int
}

type arm struct {
	skill  *domain.Skill
	node   int
	event  string
	level  int
	until  time.Time
	caster domain.Caster
	world  domain.World
}

// Arms is the table of event conditions waiting for their event. It is shared
// between the cast path and FireEvent callers and is safe for concurrent use.
type Arms struct {
	mu    sync.Mutex
	armed map[armKey]*arm
	now   func() time.Time
}

func newArms(now func() time.Time) *Arms {
	return &Arms{armed: make(map[armKey]*arm), now: now}
}

func (a *Arms) arm(c *domain.Cast, n *domain.Node, l domain.EventListener) {
	window := l.Window(c.Level)
	if window <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.armed[armKey{c.Caster.ID(), c.Skill.ID, n.Index}] = &arm{
		skill:  c.Skill,
		node:   n.Index,
		event:  strings.ToLower(l.Event()),
		level:  c.Level,
		until:  a.now().Add(window),
		caster: c.Caster,
		world:  c.World,
	}
}

// take returns the live arms of casterID matching event and drops expired ones.
func (a *Arms) take(casterID, event string) []arm {
	now := a.now()
	event = strings.ToLower(event)

	a.mu.Lock()
	defer a.mu.Unlock()
	var out []arm
	for k, v := range a.armed {
		if !v.until.After(now) {
			delete(a.armed, k)
			continue
		}
		if k.caster == casterID && v.event == event {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].skill.ID != out[j].skill.ID {
			return out[i].skill.ID < out[j].skill.ID
		}
		return out[i].node < out[j].node
	})
	return out
}

// Armed reports how many unexpired arms the caster has.
func (a *Arms) Armed(casterID string) int {
	now := a.now()
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for k, v := range a.armed {
		if k.caster == casterID && v.until.After(now) {
			n++
		}
	}
	return n
}

// Disarm drops every arm belonging to the given skills.
func (a *Arms) Disarm(skillIDs ...string) {
	drop := make(map[string]bool, len(skillIDs))
	for _, id := range skillIDs {
		drop[id] = true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for k := range a.armed {
		if drop[k.skill] {
			delete(a.armed, k)
		}
	}
}

// Sweep drops expired arms and reports how many were removed.
func (a *Arms) Sweep() int {
	now := a.now()
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for k, v := range a.armed {
		if !v.until.After(now) {
			delete(a.armed, k)
			n++
		}
	}
	return n
}

// FireEvent delivers a game event for a caster. Every armed event condition of
// that caster listening for name runs its children with [subject] at the
// level it was armed with. Sibling nodes and the cooldown are not consulted.
// It returns how many armed conditions fired.
func (in *Interpreter) FireEvent(ctx context.Context, casterID, name string, subject domain.Entity, rnd domain.Random) int {
	if ctx == nil {
		ctx = context.Background()
	}
	fired := 0
	for _, a := range in.arms.take(casterID, name) {
		c := &domain.Cast{
			Ctx:    ctx,
			Skill:  a.skill,
			Caster: a.caster,
			Level:  a.level,
			World:  a.world,
			Rand:   rnd,
			Now:    in.now(),
		}
		r := &run{cast: c, tree: a.skill.Tree}
		n := r.tree.Node(a.node)

		in.emitNodeEnter(c, n, 1)
		ok := in.children(r, n, []domain.Entity{subject})
		in.logger.Debug("event fired", "skill", a.skill.ID, "caster", casterID, "event", name, "node", n.Path, "passed", ok)
		fired++
	}
	return fired
}
