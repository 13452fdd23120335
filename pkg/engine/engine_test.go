package engine

import (
	"testing"
	"time"

	"github.com/vitatwin/go-twin/pkg/anim"
)

func newTestEngine(opts Options) (*Engine, *recorder, *fakeClock) {
	rec := &recorder{}
	clock := &fakeClock{}
	e := NewWithOptions(rec.set, opts)
	e.sched.after = clock.after
	return e, rec, clock
}

func aqi(v int) *int { return &v }

func TestEvaluate_SleepCycleAdvances(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{SleepMode: true}, true)

	if last := rec.last(t); last.name != anim.ClipSleeping {
		t.Fatalf("expected sleeping first, got %q", last.name)
	}
	if d := clock.lastDuration(t); d != 12*time.Second {
		t.Errorf("expected 12s before advancing, got %v", d)
	}

	clock.fire(t)
	if last := rec.last(t); last.name != anim.ClipSleepingIdle {
		t.Errorf("expected sleeping_idle after the timer, got %q", last.name)
	}
}

func TestEvaluate_EqualPlanIsNoop(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{SleepMode: true}, true)
	calls, timers := rec.count(), clock.armed()

	// An unrelated field change that yields the same plan must cause no
	// side effect: no set call, no timer reset.
	e.Evaluate(anim.Context{SleepMode: true, AQIReason: "changed"}, true)

	if rec.count() != calls {
		t.Errorf("expected no new set calls, got %v", rec.callNames())
	}
	if clock.armed() != timers {
		t.Error("re-evaluating an equal plan must not re-arm the timer")
	}
}

func TestEvaluate_ManualPlanHasNoSideEffect(t *testing.T) {
	e, rec, _ := newTestEngine(Options{})

	e.Evaluate(anim.Context{IsManualAnimation: true, ActiveAnimation: anim.ClipYawning}, true)

	if rec.count() != 0 {
		t.Errorf("manual plans defer to the host, got calls %v", rec.callNames())
	}
}

func TestEvaluate_SinglePlanArmsNoTimer(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{IsSweatyWeather: true}, true)

	if last := rec.last(t); last.name != anim.ClipWipingSweat {
		t.Fatalf("expected wiping_sweat, got %q", last.name)
	}
	if clock.armed() != 0 {
		t.Error("single plans must not arm timers")
	}
}

func TestEvaluate_IdleClearsDisplay(t *testing.T) {
	e, rec, _ := newTestEngine(Options{})

	e.Evaluate(anim.Context{IsSweatyWeather: true}, true)
	e.Evaluate(anim.Context{}, true)

	if last := rec.last(t); last.name != "" {
		t.Errorf("expected display cleared for idle, got %q", last.name)
	}
	if rec.count() != 2 {
		t.Errorf("expected exactly 2 calls, got %v", rec.callNames())
	}
}

func TestEvaluate_CycleResumesAtDisplayedClip(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	// Dengue cycle shows swatting_bug first.
	e.Evaluate(anim.Context{HasNearbyDengueRisk: true}, true)
	if last := rec.last(t); last.name != anim.ClipSwattingBug {
		t.Fatalf("expected swatting_bug, got %q", last.name)
	}
	calls := rec.count()

	// The moderate cycle also contains swatting_bug; switching plans must
	// resume there instead of restarting at breathing.
	ctx := anim.Context{
		ActiveAnimation:      anim.ClipSwattingBug,
		AQI:                  aqi(75),
		RecommendedAnimation: anim.ClipBreathing,
		HasNearbyDengueRisk:  true,
	}
	e.Evaluate(ctx, true)

	if rec.count() != calls {
		t.Errorf("resuming on the displayed clip must not re-show it, got %v", rec.callNames())
	}
	if d := clock.lastDuration(t); d != anim.ClipDuration(anim.ClipSwattingBug) {
		t.Errorf("timer must use the resumed entry's duration, got %v", d)
	}

	clock.fire(t)
	if last := rec.last(t); last.name != anim.ClipBreathing {
		t.Errorf("expected breathing after wrap-around, got %q", last.name)
	}
}

func TestEvaluate_DeactivationStopsAndClearsOnce(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{SleepMode: true}, true)
	clock.mu.Lock()
	staleTimer := clock.fns[0]
	clock.mu.Unlock()

	e.Evaluate(anim.Context{SleepMode: true}, false)

	if last := rec.last(t); last.name != "" {
		t.Fatalf("expected display cleared on deactivation, got %q", last.name)
	}
	calls := rec.count()

	staleTimer()
	e.Evaluate(anim.Context{SleepMode: true}, false)

	if rec.count() != calls {
		t.Errorf("deactivation must clear exactly once, got %v", rec.callNames())
	}
}

func TestEvaluate_ReactivationRebuildsPlan(t *testing.T) {
	e, rec, _ := newTestEngine(Options{})

	e.Evaluate(anim.Context{IsSweatyWeather: true}, true)
	e.Evaluate(anim.Context{IsSweatyWeather: true}, false)
	e.Evaluate(anim.Context{IsSweatyWeather: true}, true)

	want := []string{anim.ClipWipingSweat, "", anim.ClipWipingSweat}
	got := rec.callNames()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestEvaluate_CelebrationRidesAlong(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	ctx := anim.Context{
		StressLevel:          anim.StressHigh,
		StressVisualsEnabled: true,
		HasMetCalorieGoal:    true,
	}
	e.Evaluate(ctx, true)

	if last := rec.last(t); last.name != anim.ClipCoughing {
		t.Fatalf("expected coughing first, got %q", last.name)
	}

	clock.fire(t)
	if last := rec.last(t); last.name != anim.ClipCelebrating {
		t.Errorf("expected celebration after coughing, got %q", last.name)
	}
}

func TestReset_KeepsDisplayStopsPlayback(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{SleepMode: true}, true)
	calls := rec.count()

	e.Reset()

	if rec.count() != calls {
		t.Error("reset must not touch the displayed animation")
	}

	// The retained plan is gone, so the same context re-adopts the plan
	// and arms a fresh timer; the display request deduplicates.
	e.Evaluate(anim.Context{SleepMode: true}, true)
	if clock.armed() != 2 {
		t.Errorf("expected a fresh timer after reset, got %d armed", clock.armed())
	}
	if rec.count() != calls {
		t.Errorf("sleeping is still displayed; expected no new set call, got %v", rec.callNames())
	}
}

func TestDispose_IsTerminalAndIdempotent(t *testing.T) {
	e, rec, clock := newTestEngine(Options{})

	e.Evaluate(anim.Context{SleepMode: true}, true)
	clock.mu.Lock()
	staleTimer := clock.fns[0]
	clock.mu.Unlock()
	calls := rec.count()

	e.Dispose()
	e.Dispose()
	staleTimer()
	e.Evaluate(anim.Context{IsSweatyWeather: true}, true)

	if rec.count() != calls {
		t.Errorf("disposed engine must be inert, got %v", rec.callNames())
	}
}

func TestIdleAnimations_UnionStaysInSync(t *testing.T) {
	e, _, _ := newTestEngine(Options{IdleAnimations: []string{anim.ClipIdleVariation}})

	base := e.IdleAnimations()
	if len(base) != 1 || base[0] != anim.ClipIdleVariation {
		t.Fatalf("expected configured base set before evaluation, got %v", base)
	}

	ctx := anim.Context{IsSleepDeprived: true, HasMetCalorieGoal: true}
	e.Evaluate(ctx, true)

	got := e.IdleAnimations()
	want := map[string]bool{
		anim.ClipIdleVariation: true,
		anim.ClipYawning:       true,
		anim.ClipCelebrating:   true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d idle animations, got %v", len(want), got)
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected idle animation %q", n)
		}
	}
}

func TestIdleExtras_MemoizedOnInputs(t *testing.T) {
	e, _, _ := newTestEngine(Options{})

	ctx := anim.Context{IsSleepDeprived: true}
	first := e.idleExtrasLocked(ctx)

	// Same inputs: the memoized slice comes back untouched.
	ctx.AQIReason = "irrelevant"
	second := e.idleExtrasLocked(ctx)
	if &first[0] != &second[0] {
		t.Error("extras must be memoized while inputs are unchanged")
	}

	// Changing one of the four inputs recomputes.
	ctx.HasNearbyDengueRisk = true
	third := e.idleExtrasLocked(ctx)
	if len(third) != 2 {
		t.Errorf("expected recomputed extras, got %v", third)
	}
}
