package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/skilltree/internal/logging"
	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/ports"
)

// Failure reasons reported in Result.Reason.
const (
	ReasonCooldown = "cooldown"
	ReasonCost     = "cost"
	ReasonBranch   = "branch"
	ReasonStore    = "store"
)

// Result is the outcome of one traversal.
type Result struct {
	Success bool
	// Reason is empty on success.
	Reason string
	// Applied counts mechanic applications, one per subject.
	Applied int
	// Remaining is set when a cooldown blocked the cast.
	Remaining time.Duration
}

// Interpreter runs compiled trees.
type Interpreter struct {
	cooldowns ports.CooldownStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
	arms      *Arms
}

// Option configures the Interpreter.
type Option func(*Interpreter)

// WithCooldownStore sets the store owning the cooldown table.
func WithCooldownStore(store ports.CooldownStore) Option {
	return func(in *Interpreter) {
		in.cooldowns = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(in *Interpreter) {
		in.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithClock replaces time.Now for event windows and hook timestamps.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		in.now = now
	}
}

// New creates an interpreter. Without a cooldown store it keeps cooldowns in memory.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{}
	for _, opt := range opts {
		opt(in)
	}
	if in.cooldowns == nil {
		in.cooldowns = memory.NewCooldowns()
	}
	if in.logger == nil {
		in.logger = logging.NewNop()
	}
	if in.now == nil {
		in.now = time.Now
	}
	in.arms = newArms(in.now)
	return in
}

// Arms exposes the armed event table.
func (in *Interpreter) Arms() *Arms {
	return in.arms
}

// run is the state of one traversal.
type run struct {
	cast    *domain.Cast
	tree    *domain.Tree
	applied int
}

// Cast runs a manual cast: gates first, then the rest of the trigger's children.
func (in *Interpreter) Cast(c *domain.Cast) Result {
	return in.execute(c, true)
}

// Apply runs a passive skill's tree. Gates are not consulted.
func (in *Interpreter) Apply(c *domain.Cast) Result {
	return in.execute(c, false)
}

func (in *Interpreter) execute(c *domain.Cast, gates bool) Result {
	start := in.now()
	if c.Ctx == nil {
		c.Ctx = context.Background()
	}
	if c.Now.IsZero() {
		c.Now = start
	}

	r := &run{cast: c, tree: c.Skill.Tree}
	root := r.tree.RootNode()

	in.emitNodeEnter(c, root, 0)
	res := in.trigger(r, root, gates)
	res.Applied = r.applied
	in.emitNodeLeave(c, root, 0, res.Success)

	if !res.Success {
		in.logger.Debug("cast failed", "skill", c.Skill.ID, "caster", c.Caster.ID(), "reason", res.Reason)
	}
	in.emitCast(c, res, in.now().Sub(start))
	return res
}

func (in *Interpreter) trigger(r *run, root *domain.Node, gates bool) Result {
	c := r.cast
	var cost, cooldown *domain.Node
	var rest []*domain.Node
	for _, child := range r.tree.ChildrenOf(root) {
		switch child.Category {
		case domain.CategoryCost:
			cost = child
		case domain.CategoryCooldown:
			cooldown = child
		default:
			rest = append(rest, child)
		}
	}

	var ttl time.Duration
	if gates && cooldown != nil {
		if gate, ok := cooldown.Impl.(domain.CooldownGate); ok {
			ttl = gate.Duration(c.Level)
		}
	}

	if ttl > 0 {
		remaining, err := in.cooldowns.Remaining(c.Ctx, c.Caster.ID(), c.Skill.ID)
		if err != nil {
			in.logger.Error("cooldown store failed", "skill", c.Skill.ID, "caster", c.Caster.ID(), "err", err)
			return Result{Reason: ReasonStore}
		}
		if remaining > 0 {
			return Result{Reason: ReasonCooldown, Remaining: remaining}
		}
	}

	if gates && cost != nil {
		gate, ok := cost.Impl.(domain.CostGate)
		in.emitNodeEnter(c, cost, 0)
		passed := ok && gate.Consume(c)
		in.emitNodeLeave(c, cost, 0, passed)
		if !passed {
			return Result{Reason: ReasonCost}
		}
	}

	if ttl > 0 {
		acquired, err := in.cooldowns.Acquire(c.Ctx, c.Caster.ID(), c.Skill.ID, ttl)
		if err != nil {
			in.logger.Error("cooldown store failed", "skill", c.Skill.ID, "caster", c.Caster.ID(), "err", err)
			return Result{Reason: ReasonStore}
		}
		if !acquired {
			return Result{Reason: ReasonCooldown}
		}
	}

	ok := true
	for _, child := range rest {
		if !in.node(r, child, nil) {
			ok = false
		}
	}
	if !ok {
		return Result{Reason: ReasonBranch}
	}
	return Result{Success: true}
}

// node runs one node with the inbound candidate set.
func (in *Interpreter) node(r *run, n *domain.Node, inbound []domain.Entity) bool {
	c := r.cast
	var set []domain.Entity

	switch impl := n.Impl.(type) {
	case domain.EventListener:
		in.arms.arm(c, n, impl)
		in.emitNodeEnter(c, n, len(inbound))
		in.emitNodeLeave(c, n, len(inbound), false)
		return false
	case domain.Selector:
		set = impl.Select(c)
	case domain.Predicate:
		for _, subject := range inbound {
			if impl.Test(c, subject) {
				set = append(set, subject)
			}
		}
	case domain.Mechanic:
		set = inbound
		for _, subject := range set {
			r.applied++
			if err := impl.Apply(c, subject); err != nil {
				in.logger.Warn("mechanic failed", "skill", c.Skill.ID, "node", n.Path, "subject", subject.ID(), "err", err)
			}
		}
	default:
		in.logger.Error("node has no behavior", "skill", c.Skill.ID, "node", n.Path)
		return false
	}

	in.emitNodeEnter(c, n, len(set))
	if len(set) == 0 {
		in.emitNodeLeave(c, n, 0, false)
		return false
	}
	return in.children(r, n, set)
}

func (in *Interpreter) children(r *run, n *domain.Node, set []domain.Entity) bool {
	ok := true
	for _, child := range r.tree.ChildrenOf(n) {
		if !in.node(r, child, set) {
			ok = false
		}
	}
	in.emitNodeLeave(r.cast, n, len(set), ok)
	return ok
}
