package anim

// Moderate and unhealthy AQI band boundaries.
const (
	aqiModerateLow  = 50
	aqiModerateHigh = 100
)

// PlanBuilder maps a context snapshot to exactly one plan. It is pure and
// total: every context yields a plan, and equal contexts yield plans that
// compare Equal.
type PlanBuilder struct {
	baseIdle []string
}

// NewPlanBuilder creates a builder that uses the given base idle clips for
// contextual idle cycles. A nil or empty list falls back to the defaults.
func NewPlanBuilder(baseIdleNames []string) *PlanBuilder {
	if len(baseIdleNames) == 0 {
		baseIdleNames = DefaultIdleClips()
	}
	return &PlanBuilder{baseIdle: baseIdleNames}
}

// planRule pairs a predicate with a plan factory. Rules are evaluated in
// order and the first match wins, which makes the severity hierarchy
// auditable and testable rule by rule.
type planRule struct {
	name  string
	match func(Context, []string) bool
	build func(*PlanBuilder, Context, []string) Plan
}

var planRules = []planRule{
	{
		name:  "manual override",
		match: func(c Context, _ []string) bool { return c.IsManualAnimation },
		build: func(_ *PlanBuilder, c Context, _ []string) Plan {
			return ManualPlan(c.ActiveAnimation)
		},
	},
	{
		name:  "sleep mode",
		match: func(c Context, _ []string) bool { return c.SleepMode },
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return CyclePlan([]Entry{NewEntry(ClipSleeping), NewEntry(ClipSleepingIdle)}, "sleep mode")
		},
	},
	{
		name: "high stress",
		match: func(c Context, _ []string) bool {
			return c.StressLevel == StressHigh && c.StressVisualsEnabled
		},
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return SinglePlan(ClipCoughing, "high stress")
		},
	},
	{
		name: "moderate air quality",
		match: func(c Context, _ []string) bool {
			return aqiBetween(c, aqiModerateLow, aqiModerateHigh) && c.RecommendedAnimation == ClipBreathing
		},
		build: func(_ *PlanBuilder, c Context, _ []string) Plan {
			return planFromCycle(BuildModerateCycle(c), c.AQIReason)
		},
	},
	{
		name: "unhealthy air quality",
		match: func(c Context, _ []string) bool {
			return aqiAbove(c, aqiModerateHigh) && c.RecommendedAnimation != ""
		},
		build: func(_ *PlanBuilder, c Context, _ []string) Plan {
			return planFromCycle(BuildUnhealthyCycle(c), c.AQIReason)
		},
	},
	{
		name:  "air quality recommendation",
		match: func(c Context, _ []string) bool { return c.RecommendedAnimation != "" },
		build: func(_ *PlanBuilder, c Context, _ []string) Plan {
			return SinglePlan(c.RecommendedAnimation, c.AQIReason)
		},
	},
	{
		name:  "sweaty weather",
		match: func(c Context, _ []string) bool { return c.IsSweatyWeather },
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return SinglePlan(ClipWipingSweat, "sweaty weather")
		},
	},
	{
		name: "sleep deprived",
		match: func(c Context, _ []string) bool {
			return c.IsSleepDeprived && !c.SleepMode && c.StressLevel.IsNone()
		},
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return SinglePlan(ClipSlumped, "sleep deprived")
		},
	},
	{
		name:  "dengue risk nearby",
		match: func(c Context, _ []string) bool { return c.HasNearbyDengueRisk },
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return CyclePlan([]Entry{NewEntry(ClipSwattingBug), NewEntry(ClipIdleVariation)}, "dengue risk nearby")
		},
	},
	{
		name:  "contextual idle",
		match: func(_ Context, extras []string) bool { return len(extras) > 0 },
		build: func(b *PlanBuilder, _ Context, extras []string) Plan {
			return CyclePlan(BuildContextualIdleCycle(b.baseIdle, extras), "contextual idle")
		},
	},
	{
		name:  "idle",
		match: func(Context, []string) bool { return true },
		build: func(_ *PlanBuilder, _ Context, _ []string) Plan {
			return IdlePlan("no active signals")
		},
	},
}

// Build selects the plan for the snapshot. Rules are tried in severity
// order (manual intent, sleep, acute stress, air-quality hazard, ambient
// recommendation, comfort signals, risk and idle enrichment); the first
// match wins and the finalize pass then overlays the calorie celebration.
func (b *PlanBuilder) Build(ctx Context, idleExtras []string) Plan {
	for _, r := range planRules {
		if r.match(ctx, idleExtras) {
			return b.finalize(r.build(b, ctx, idleExtras), ctx, idleExtras)
		}
	}
	// Unreachable: the idle rule always matches.
	return IdlePlan("no active signals")
}

// finalize lets the met calorie goal ride along with whatever plan was
// selected instead of competing for priority. Manual plans are left alone,
// as is everything while the twin sleeps.
func (b *PlanBuilder) finalize(p Plan, ctx Context, idleExtras []string) Plan {
	if p.Kind == KindManual || !ctx.HasMetCalorieGoal || ctx.SleepMode {
		return p
	}
	switch p.Kind {
	case KindSingle:
		if p.Name == ClipCelebrating {
			return p
		}
		return CyclePlan([]Entry{entryFor(p), NewEntry(ClipCelebrating)}, p.Reason)
	case KindCycle:
		for _, e := range p.Entries {
			if e.Name == ClipCelebrating {
				return p
			}
		}
		entries := make([]Entry, len(p.Entries), len(p.Entries)+1)
		copy(entries, p.Entries)
		return CyclePlan(append(entries, NewEntry(ClipCelebrating)), p.Reason)
	case KindIdle:
		if len(idleExtras) == 0 {
			return SinglePlan(ClipCelebrating, "calorie goal met")
		}
		extras := forceInclude(idleExtras, ClipCelebrating)
		return CyclePlan(BuildContextualIdleCycle(b.baseIdle, extras), "calorie goal met")
	default:
		return p
	}
}

// planFromCycle collapses a one-entry cycle to a single plan; a cycle of
// one member would arm a pointless timer.
func planFromCycle(entries []Entry, reason string) Plan {
	if len(entries) == 1 {
		return SinglePlan(entries[0].Name, reason)
	}
	return CyclePlan(entries, reason)
}

// entryFor converts a single plan to a cycle entry, honoring an explicit
// duration when the plan pinned one.
func entryFor(p Plan) Entry {
	e := NewEntry(p.Name)
	if p.Duration > 0 {
		e.Duration = p.Duration
	}
	return e
}

func forceInclude(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	out := make([]string, len(names), len(names)+1)
	copy(out, names)
	return append(out, name)
}

func aqiBetween(c Context, low, high int) bool {
	return c.AQI != nil && *c.AQI > low && *c.AQI <= high
}

func aqiAbove(c Context, high int) bool {
	return c.AQI != nil && *c.AQI > high
}
