package anim

import "time"

// Entry is one timed member of an animation cycle.
type Entry struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// NewEntry builds an entry with the clip's canonical duration.
func NewEntry(name string) Entry {
	return Entry{Name: name, Duration: ClipDuration(name)}
}

// PlanKind tags the active variant of a Plan.
type PlanKind int

const (
	// KindManual defers entirely to a user-chosen animation.
	KindManual PlanKind = iota

	// KindIdle shows no explicit animation; the renderer falls back to
	// its own idle behavior.
	KindIdle

	// KindSingle shows one clip with no cycling.
	KindSingle

	// KindCycle repeats an ordered list of timed entries.
	KindCycle
)

// String returns a human-readable kind name.
func (k PlanKind) String() string {
	switch k {
	case KindManual:
		return "manual"
	case KindIdle:
		return "idle"
	case KindSingle:
		return "single"
	case KindCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Plan is the engine's decision of what the renderer should display.
// Exactly one variant is active, tagged by Kind. A plan is immutable once
// built; context changes always produce a new plan rather than mutating
// entries in place.
type Plan struct {
	Kind PlanKind

	// Name is the selected clip for manual and single plans.
	Name string

	// Reason explains why the plan was chosen, for display and logging.
	// Not part of plan identity.
	Reason string

	// Duration optionally pins a single plan's playback length.
	// Zero means the clip's canonical duration applies.
	Duration time.Duration

	// Entries are the ordered cycle members for cycle plans.
	Entries []Entry
}

// ManualPlan defers to the user-chosen clip.
func ManualPlan(name string) Plan {
	return Plan{Kind: KindManual, Name: name}
}

// IdlePlan shows no explicit animation.
func IdlePlan(reason string) Plan {
	return Plan{Kind: KindIdle, Reason: reason}
}

// SinglePlan shows one clip without cycling.
func SinglePlan(name, reason string) Plan {
	return Plan{Kind: KindSingle, Name: name, Reason: reason}
}

// CyclePlan repeats the given entries in order.
func CyclePlan(entries []Entry, reason string) Plan {
	return Plan{Kind: KindCycle, Entries: entries, Reason: reason}
}

// Equal reports whether two plans are the same decision for display
// purposes. Reasons are never compared. Manual and single plans compare by
// clip name only, idle plans are always equal to each other, and cycles
// compare pairwise by (name, duration). This relation gates every engine
// side effect: adopting an equal plan must be a no-op.
func Equal(a, b Plan) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindManual, KindSingle:
		return a.Name == b.Name
	case KindIdle:
		return true
	case KindCycle:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if a.Entries[i] != b.Entries[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
