package anim

// orderedEntries is an insertion-order-preserving set of entries keyed by
// clip name. Cycle ordering is observable to users, so upserts must never
// depend on map iteration order.
type orderedEntries struct {
	names  []string
	byName map[string]Entry
}

func newOrderedEntries() *orderedEntries {
	return &orderedEntries{byName: make(map[string]Entry)}
}

// upsert inserts the entry or replaces an existing entry with the same
// name, keeping its original position.
func (o *orderedEntries) upsert(e Entry) {
	if _, ok := o.byName[e.Name]; !ok {
		o.names = append(o.names, e.Name)
	}
	o.byName[e.Name] = e
}

// remove drops the named entry if present.
func (o *orderedEntries) remove(name string) {
	if _, ok := o.byName[name]; !ok {
		return
	}
	delete(o.byName, name)
	for i, n := range o.names {
		if n == name {
			o.names = append(o.names[:i], o.names[i+1:]...)
			break
		}
	}
}

// entries returns the entries in insertion order.
func (o *orderedEntries) entries() []Entry {
	out := make([]Entry, 0, len(o.names))
	for _, n := range o.names {
		out = append(out, o.byName[n])
	}
	return out
}

// supplementaryClips lists the comfort-signal clips in their fixed
// evaluation order. awakeOnly entries are skipped while the twin sleeps.
var supplementaryClips = []struct {
	clip      string
	awakeOnly bool
	active    func(Context) bool
}{
	{ClipWipingSweat, false, func(c Context) bool { return c.IsSweatyWeather }},
	{ClipYawning, false, func(c Context) bool { return c.IsSleepDeprived }},
	{ClipSwattingBug, true, func(c Context) bool { return c.HasNearbyDengueRisk }},
	{ClipCelebrating, true, func(c Context) bool { return c.HasMetCalorieGoal }},
}

// BuildModerateCycle assembles the cycle shown when air quality is in the
// moderate band. The base behavior is breathing; each active supplementary
// condition appends its clip, with a breathing entry inserted between
// consecutive supplements so no two adjacent entries repeat. With no
// supplements active the result is the single breathing entry.
func BuildModerateCycle(ctx Context) []Entry {
	entries := []Entry{NewEntry(ClipBreathing)}
	for _, s := range supplementaryClips {
		if s.awakeOnly && ctx.SleepMode {
			continue
		}
		if !s.active(ctx) {
			continue
		}
		if entries[len(entries)-1].Name != ClipBreathing {
			entries = append(entries, NewEntry(ClipBreathing))
		}
		entries = append(entries, NewEntry(s.clip))
	}
	return entries
}

// BuildUnhealthyCycle assembles the cycle shown when air quality is in the
// unhealthy band. It seeds the canonical tier sequence (the collaborator's
// recommended clip first, then breathing and coughing, deduplicated by
// name), removes breathing when stress visuals are disabled, and upserts
// the supplementary clips so each condition contributes at most one entry
// regardless of evaluation order.
func BuildUnhealthyCycle(ctx Context) []Entry {
	set := newOrderedEntries()
	if ctx.RecommendedAnimation != "" {
		set.upsert(NewEntry(ctx.RecommendedAnimation))
	}
	set.upsert(NewEntry(ClipBreathing))
	set.upsert(NewEntry(ClipCoughing))

	if !ctx.StressVisualsEnabled {
		set.remove(ClipBreathing)
	}

	for _, s := range supplementaryClips {
		if s.awakeOnly && ctx.SleepMode {
			continue
		}
		if s.active(ctx) {
			set.upsert(NewEntry(s.clip))
		}
	}
	return set.entries()
}
