package skilltree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/skilltree/internal/adapters/file"
	"github.com/aretw0/skilltree/internal/compiler"
	"github.com/aretw0/skilltree/internal/logging"
	"github.com/aretw0/skilltree/internal/runtime"
	"github.com/aretw0/skilltree/internal/validator"
	"github.com/aretw0/skilltree/pkg/adapters/memory"
	"github.com/aretw0/skilltree/pkg/components"
	"github.com/aretw0/skilltree/pkg/domain"
	"github.com/aretw0/skilltree/pkg/observability"
	"github.com/aretw0/skilltree/pkg/passive"
	"github.com/aretw0/skilltree/pkg/ports"
	"github.com/aretw0/skilltree/pkg/registry"
	"github.com/aretw0/skilltree/pkg/session"
	"golang.org/x/sync/errgroup"
)

// CastResult is the outcome of a cast or passive application.
type CastResult = runtime.Result

// ReloadReport summarizes a reload.
type ReloadReport = registry.ReloadReport

// Failure reasons reported in CastResult.Reason.
const (
	ReasonCooldown = runtime.ReasonCooldown
	ReasonCost     = runtime.ReasonCost
	ReasonBranch   = runtime.ReasonBranch
	ReasonStore    = runtime.ReasonStore
)

// LoggedErrors is how many errors per rejected skill are logged on load.
// The full report is available from Reports.
const LoggedErrors = 5

// Engine is the high-level entry point for the skilltree library.
// It wires the compiler, the registry and the interpreter together.
type Engine struct {
	loader    ports.SkillLoader
	effects   *registry.Effects
	cooldowns ports.CooldownStore
	records   ports.SkillRecords
	world     domain.World
	rand      domain.Random
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	metrics   *observability.Metrics
	maxDepth  int
	interval  time.Duration

	compiler *compiler.Compiler
	interp   *runtime.Interpreter
	skills   *registry.Skills
	passives *passive.Manager
	sessions *session.Manager
	locker   ports.CasterLocker

	mu      sync.RWMutex
	reports map[string]*domain.Report

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCasterLocker serializes each caster's casts across every engine
// sharing the locker. Without it casts are serialized per engine only.
func WithCasterLocker(locker ports.CasterLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLoader injects a custom SkillLoader, bypassing the directory loader.
func WithLoader(l ports.SkillLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithEffects sets the effect registry mechanics are bound to. Mechanic keys
// missing from it are load errors. Without it mechanics are accepted
// unchecked and do nothing.
func WithEffects(effects *registry.Effects) Option {
	return func(e *Engine) {
		e.effects = effects
	}
}

// WithCooldownStore sets the store owning the cooldown table.
func WithCooldownStore(store ports.CooldownStore) Option {
	return func(e *Engine) {
		e.cooldowns = store
	}
}

// WithRecords sets the store of learned skills.
func WithRecords(records ports.SkillRecords) Option {
	return func(e *Engine) {
		e.records = records
	}
}

// WithWorld sets the world selectors scan.
func WithWorld(world domain.World) Option {
	return func(e *Engine) {
		e.world = world
	}
}

// WithRandom sets the randomness source of chance conditions and random
// selection. It must be safe for concurrent use if casts run concurrently.
func WithRandom(r domain.Random) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMetrics records Prometheus metrics for casts, nodes and loads.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxDepth overrides the tree depth ceiling.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// WithPassiveInterval sets how often Maintain reapplies passive skills.
func WithPassiveInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.interval = d
	}
}

// New initializes a new Engine.
// By default, skills are read from the directory at dir.
// If WithLoader is provided, dir can be empty and is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{reports: make(map[string]*domain.Report)}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil && dir != "" {
		loader, err := file.New(dir)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("skills", eng.Name)
	}
	if eng.cooldowns == nil {
		eng.cooldowns = memory.NewCooldowns()
	}
	if eng.records == nil {
		eng.records = memory.NewRecords()
	}
	if eng.world == nil {
		eng.world = memory.NewWorld()
	}
	if eng.metrics != nil {
		eng.hooks = eng.hooks.Merge(eng.metrics.Hooks())
	}

	var source components.EffectSource
	if eng.effects != nil {
		source = eng.effects
	}
	eng.compiler = compiler.New(components.NewCatalog(source), validator.WithMaxDepth(eng.maxDepth))
	eng.interp = runtime.New(
		runtime.WithCooldownStore(eng.cooldowns),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	eng.skills = registry.NewSkills(
		registry.WithRecords(eng.records),
		registry.WithLogger(eng.logger),
	)
	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(sessionOpts...)
	eng.passives = passive.NewManager(eng,
		passive.WithInterval(eng.interval),
		passive.WithLogger(eng.logger),
	)

	return eng, nil
}

// Catalog returns the component catalog skills are compiled against.
func (e *Engine) Catalog() *components.Catalog {
	return e.compiler.Catalog()
}

// Compile parses and validates a document without installing it.
func (e *Engine) Compile(id string, data []byte) (*domain.Skill, *domain.Report) {
	return e.compiler.CompileBytes(id, id, data)
}

// Install compiles a raw document and registers it. It returns the report's
// error when the skill is rejected.
func (e *Engine) Install(raw domain.RawSkill) (*domain.Report, error) {
	skill, report := e.compiler.Compile(&raw)
	e.setReport(report)
	if skill == nil {
		e.logReport(report)
		return report, report.Err()
	}
	return report, e.skills.Register(skill)
}

// Reload compiles every document of the loader and replaces the registry
// contents with the accepted ones. Rejected skills are logged and left out.
// Passives and armed events of every skill that left the registry are
// dropped. Caster records are revoked only for skills whose document is gone
// from the loader, so a rejected edit keeps what casters learned.
func (e *Engine) Reload(ctx context.Context) (ReloadReport, error) {
	if e.loader == nil {
		return ReloadReport{}, errors.New("no skill loader configured")
	}
	ids, err := e.loader.ListSkills()
	if err != nil {
		return ReloadReport{}, fmt.Errorf("failed to list skills: %w", err)
	}

	var defs []*domain.Skill
	reports := make(map[string]*domain.Report, len(ids))
	all := make([]*domain.Report, 0, len(ids))
	for _, id := range ids {
		data, err := e.loader.GetSkill(id)
		if err != nil {
			return ReloadReport{}, fmt.Errorf("failed to read skill %s: %w", id, err)
		}
		skill, report := e.compiler.CompileBytes(id, id, data)
		reports[report.SkillID] = report
		all = append(all, report)
		if skill == nil {
			e.logReport(report)
			continue
		}
		for _, w := range report.Warnings {
			e.logger.Debug("skill warning", "skill", w.SkillID, "path", w.Path, "msg", w.Message)
		}
		defs = append(defs, skill)
	}

	result, err := e.skills.ReloadWithCleanup(ctx, defs)
	if err != nil {
		return result, err
	}

	e.mu.Lock()
	e.reports = reports
	e.mu.Unlock()

	if len(result.RemovedIDs) > 0 {
		e.interp.Arms().Disarm(result.RemovedIDs...)
		e.passives.Forget(result.RemovedIDs...)
		result.RevokedIDs = withoutDocument(result.RemovedIDs, ids, reports)
		if len(result.RevokedIDs) > 0 {
			if err := e.records.RevokeEverywhere(ctx, result.RevokedIDs); err != nil {
				return result, fmt.Errorf("failed to revoke removed skills: %w", err)
			}
		}
	}
	if e.metrics != nil {
		e.metrics.ObserveLoad(result.LoadedCount, all)
	}
	return result, nil
}

// withoutDocument returns the removed IDs that match neither a loader ID nor
// the ID declared by a document.
func withoutDocument(removed, ids []string, reports map[string]*domain.Report) []string {
	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	var out []string
	for _, id := range removed {
		if _, ok := reports[id]; ok || present[id] {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (e *Engine) setReport(r *domain.Report) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reports[r.SkillID] = r
}

func (e *Engine) logReport(r *domain.Report) {
	for _, le := range r.First(LoggedErrors) {
		e.logger.Warn("skill rejected", "skill", le.SkillID, "path", le.Path, "code", le.Code, "msg", le.Message)
	}
	if extra := len(r.Errors) - LoggedErrors; extra > 0 {
		e.logger.Warn("skill rejected", "skill", r.SkillID, "more_errors", extra)
	}
}

// Report returns the last validation report of a skill, accepted or not.
func (e *Engine) Report(id string) (*domain.Report, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.reports[id]
	return r, ok
}

// Reports returns the reports of the last reload ordered by skill ID,
// rejected skills included.
func (e *Engine) Reports() []*domain.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*domain.Report, 0, len(e.reports))
	for _, r := range e.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out
}

// Skill returns an installed skill.
func (e *Engine) Skill(id string) (*domain.Skill, error) {
	return e.skills.Get(id)
}

// Skills returns every installed skill ordered by ID.
func (e *Engine) Skills() []*domain.Skill {
	return e.skills.List()
}

// Registry exposes the skill registry.
func (e *Engine) Registry() *registry.Skills {
	return e.skills
}

// Passives exposes the passive manager.
func (e *Engine) Passives() *passive.Manager {
	return e.passives
}

// Records exposes the learned-skills store.
func (e *Engine) Records() ports.SkillRecords {
	return e.records
}

// Cooldowns exposes the cooldown store.
func (e *Engine) Cooldowns() ports.CooldownStore {
	return e.cooldowns
}

// World returns the configured world.
func (e *Engine) World() domain.World {
	return e.world
}

func (e *Engine) newCast(ctx context.Context, caster domain.Caster, skill *domain.Skill, level int) *domain.Cast {
	return &domain.Cast{
		Ctx:    ctx,
		Skill:  skill,
		Caster: caster,
		Level:  skill.ClampLevel(level),
		World:  e.world,
		Rand:   e.rand,
	}
}

func (e *Engine) lookup(skillID string, level int) (*domain.Skill, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidLevel, level)
	}
	return e.skills.Get(skillID)
}

// Cast runs an active skill for the caster at level. Levels above the
// skill's maximum are clamped. Gate failures are reported in the result, not
// as errors.
func (e *Engine) Cast(ctx context.Context, caster domain.Caster, skillID string, level int) (CastResult, error) {
	skill, err := e.lookup(skillID, level)
	if err != nil {
		return CastResult{}, err
	}
	if skill.Passive() {
		return CastResult{}, fmt.Errorf("%w: %s", domain.ErrNotActive, skillID)
	}
	var res CastResult
	err = e.sessions.WithLock(ctx, caster.ID(), func(ctx context.Context) error {
		res = e.interp.Cast(e.newCast(ctx, caster, skill, level))
		return nil
	})
	return res, err
}

// ApplyPassive runs a passive skill's tree once for the caster.
func (e *Engine) ApplyPassive(ctx context.Context, caster domain.Caster, skillID string, level int) error {
	_, err := e.applyPassive(ctx, caster, skillID, level)
	return err
}

func (e *Engine) applyPassive(ctx context.Context, caster domain.Caster, skillID string, level int) (CastResult, error) {
	skill, err := e.lookup(skillID, level)
	if err != nil {
		return CastResult{}, err
	}
	if !skill.Passive() {
		return CastResult{}, fmt.Errorf("%w: %s", domain.ErrNotPassive, skillID)
	}
	var res CastResult
	err = e.sessions.WithLock(ctx, caster.ID(), func(ctx context.Context) error {
		res = e.interp.Apply(e.newCast(ctx, caster, skill, level))
		return nil
	})
	return res, err
}

// Equip applies a passive skill and keeps reapplying it while Maintain runs.
// Equipping again with another level is a level-up.
func (e *Engine) Equip(ctx context.Context, caster domain.Caster, skillID string, level int) error {
	return e.passives.Equip(ctx, caster, skillID, level)
}

// Unequip stops reapplying a passive skill.
func (e *Engine) Unequip(casterID, skillID string) {
	e.passives.Unequip(casterID, skillID)
}

// Learn records that the caster holds the skill at level.
func (e *Engine) Learn(ctx context.Context, casterID, skillID string, level int) error {
	if _, err := e.lookup(skillID, level); err != nil {
		return err
	}
	return e.records.Grant(ctx, casterID, skillID, level)
}

// Forget removes a learned skill from the caster.
func (e *Engine) Forget(ctx context.Context, casterID, skillID string) error {
	e.passives.Unequip(casterID, skillID)
	return e.records.Revoke(ctx, casterID, skillID)
}

// FireEvent delivers a game event (e.g. "damaged") for the caster to its armed
// event conditions and returns how many fired.
func (e *Engine) FireEvent(ctx context.Context, casterID, name string, subject domain.Entity) int {
	return e.interp.FireEvent(ctx, casterID, name, subject, e.rand)
}

type sweeper interface {
	Sweep() int
}

// Maintain runs the background maintenance loops until ctx is canceled:
// passive reapplication and expiry sweeps of armed events and, for stores
// that need it, cooldowns.
func (e *Engine) Maintain(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return e.passives.Run(ctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n := e.interp.Arms().Sweep()
				if s, ok := e.cooldowns.(sweeper); ok {
					n += s.Sweep()
				}
				e.logger.Debug("expired entries swept", "count", n)
			}
		}
	})

	return g.Wait()
}

// Watch reloads whenever the loader reports a change, until ctx is canceled.
// notify is called after every successful reload. It returns an error if the
// loader cannot be watched.
func (e *Engine) Watch(ctx context.Context, notify ...func(ReloadReport)) error {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return errors.New("skill loader does not support watching")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for range changes {
		report, err := e.Reload(ctx)
		if err != nil {
			e.logger.Error("hot reload failed", "err", err)
			continue
		}
		e.logger.Info("hot reload", "loaded", report.LoadedCount, "removed", report.RemovedIDs, "revoked", report.RevokedIDs)
		for _, fn := range notify {
			fn(report)
		}
	}
	return nil
}
