package anim

// IdleExtras returns the deduplicated, ordered list of clips that should
// enrich the idle state for the given context: yawning while sleep
// deprived, bug swatting when dengue risk is nearby and the twin is awake.
// Celebration is not an idle extra; the finalize pass overlays it so the
// calorie milestone rides along with whatever plan was chosen.
func IdleExtras(ctx Context) []string {
	var extras []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			extras = append(extras, name)
		}
	}
	if ctx.IsSleepDeprived {
		add(ClipYawning)
	}
	if ctx.HasNearbyDengueRisk && !ctx.SleepMode {
		add(ClipSwattingBug)
	}
	return extras
}

// BuildContextualIdleCycle interleaves each extra with a round-robin pick
// from the base idle clips, so the cycle always returns to an idle pose
// between extras and terminates on one. Returns nil when there are no
// extras: pure idle needs no cycle at all.
func BuildContextualIdleCycle(baseIdleNames, extras []string) []Entry {
	if len(extras) == 0 {
		return nil
	}
	if len(baseIdleNames) == 0 {
		baseIdleNames = DefaultIdleClips()
	}
	entries := make([]Entry, 0, 2*len(extras))
	for i, extra := range extras {
		entries = append(entries, NewEntry(extra))
		entries = append(entries, NewEntry(baseIdleNames[i%len(baseIdleNames)]))
	}
	return entries
}
