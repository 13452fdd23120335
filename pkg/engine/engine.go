package engine

import (
	"sync"
	"sync/atomic"

	"github.com/vitatwin/go-twin/internal/log"
	"github.com/vitatwin/go-twin/pkg/anim"
)

// Options configure an Engine.
type Options struct {
	// IdleAnimations is the base idle clip set used for contextual idle
	// cycles and exposed through IdleAnimations. Empty means
	// anim.DefaultIdleClips.
	IdleAnimations []string
}

// Engine is the orchestration shell around plan building and playback.
//
// Evaluate is the sole re-entry point; the host calls it with a fresh
// immutable context snapshot whenever context or activity changes. The
// engine retains the adopted plan and applies a new one only when it
// differs structurally, so a context change that does not change the
// effective decision causes zero observable side effects.
type Engine struct {
	builder  *anim.PlanBuilder
	baseIdle []string
	sched    *scheduler
	active   atomic.Bool

	mu       sync.Mutex
	plan     anim.Plan
	hasPlan  bool
	disposed bool

	// Memoized idle extras, recomputed only when their inputs change.
	memoOK     bool
	memoKey    extrasKey
	memoExtras []string
	memoCeleb  bool
}

type extrasKey struct {
	sleepDeprived bool
	dengueRisk    bool
	sleepMode     bool
	calorieGoal   bool
}

// New creates an engine that reports decisions through set.
func New(set SetAnimationFunc) *Engine {
	return NewWithOptions(set, Options{})
}

// NewWithOptions creates an engine with explicit options.
func NewWithOptions(set SetAnimationFunc, opts Options) *Engine {
	base := opts.IdleAnimations
	if len(base) == 0 {
		base = anim.DefaultIdleClips()
	}
	e := &Engine{
		builder:  anim.NewPlanBuilder(base),
		baseIdle: base,
	}
	e.sched = newScheduler(set, e.active.Load)
	return e
}

// Evaluate re-decides the active animation for the snapshot. When isActive
// is false the scheduler stops, the retained plan is discarded, and the
// display is cleared (idempotently). Otherwise a plan is built, compared
// against the retained plan, and dispatched only on a real change.
func (e *Engine) Evaluate(ctx anim.Context, isActive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return
	}

	if !isActive {
		e.active.Store(false)
		e.sched.Stop()
		e.plan = anim.Plan{}
		e.hasPlan = false
		e.sched.Show("", false)
		return
	}
	e.active.Store(true)

	extras := e.idleExtrasLocked(ctx)
	plan := e.builder.Build(ctx, extras)
	if e.hasPlan && anim.Equal(e.plan, plan) {
		return
	}

	e.sched.Stop()
	e.plan = plan
	e.hasPlan = true
	log.Debug("animation plan adopted",
		"kind", plan.Kind.String(), "clip", plan.Name, "reason", plan.Reason)

	switch plan.Kind {
	case anim.KindManual:
		// The user set it; defer entirely, but keep deduplication in
		// step with what is actually on screen.
		e.sched.SyncDisplayed(ctx.ActiveAnimation)
	case anim.KindIdle:
		e.sched.Show("", false)
	case anim.KindSingle:
		e.sched.Show(plan.Name, false)
	case anim.KindCycle:
		e.sched.Start(plan.Entries, continuityIndex(plan.Entries, e.currentClip(ctx)))
	}
}

// Reset discards the retained plan and stops playback without touching the
// displayed animation. The next Evaluate starts from a clean slate.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sched.Stop()
	e.plan = anim.Plan{}
	e.hasPlan = false
	e.memoOK = false
}

// Dispose stops playback permanently. Safe to call multiple times; a timer
// firing after disposal is discarded silently.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active.Store(false)
	e.sched.Stop()
	e.disposed = true
}

// IdleAnimations returns the union of the base idle set and the extras the
// last evaluated context added, so the host's fallback idle behavior stays
// in sync with what the engine might choose.
func (e *Engine) IdleAnimations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, 0, len(e.baseIdle)+len(e.memoExtras)+1)
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, n := range e.baseIdle {
		add(n)
	}
	for _, n := range e.memoExtras {
		add(n)
	}
	if e.memoCeleb {
		add(anim.ClipCelebrating)
	}
	return out
}

// idleExtrasLocked memoizes anim.IdleExtras on its context inputs.
func (e *Engine) idleExtrasLocked(ctx anim.Context) []string {
	key := extrasKey{
		sleepDeprived: ctx.IsSleepDeprived,
		dengueRisk:    ctx.HasNearbyDengueRisk,
		sleepMode:     ctx.SleepMode,
		calorieGoal:   ctx.HasMetCalorieGoal,
	}
	if e.memoOK && key == e.memoKey {
		return e.memoExtras
	}
	e.memoKey = key
	e.memoOK = true
	e.memoExtras = anim.IdleExtras(ctx)
	e.memoCeleb = ctx.HasMetCalorieGoal && !ctx.SleepMode
	return e.memoExtras
}

// currentClip is the animation on screen right now: the snapshot's view
// when it has one, otherwise the last clip this engine requested.
func (e *Engine) currentClip(ctx anim.Context) string {
	if ctx.ActiveAnimation != "" {
		return ctx.ActiveAnimation
	}
	return e.sched.Displayed()
}

// continuityIndex resumes a cycle at the member already on screen, so an
// unrelated context change does not visibly restart the cycle.
func continuityIndex(entries []anim.Entry, current string) int {
	if current == "" {
		return 0
	}
	for i, e := range entries {
		if e.Name == current {
			return i
		}
	}
	return 0
}
