package anim

import "testing"

func TestBuildModerateCycle_NoSupplements(t *testing.T) {
	entries := BuildModerateCycle(Context{})

	if len(entries) != 1 {
		t.Fatalf("expected single breathing entry, got %d entries", len(entries))
	}
	if entries[0].Name != ClipBreathing {
		t.Errorf("expected %q, got %q", ClipBreathing, entries[0].Name)
	}
}

func TestBuildModerateCycle_SweatyWeather(t *testing.T) {
	entries := BuildModerateCycle(Context{IsSweatyWeather: true})

	assertNames(t, entries, ClipBreathing, ClipWipingSweat)
}

func TestBuildModerateCycle_AllSupplements(t *testing.T) {
	ctx := Context{
		IsSweatyWeather:     true,
		IsSleepDeprived:     true,
		HasNearbyDengueRisk: true,
		HasMetCalorieGoal:   true,
	}
	entries := BuildModerateCycle(ctx)

	assertNames(t, entries,
		ClipBreathing, ClipWipingSweat,
		ClipBreathing, ClipYawning,
		ClipBreathing, ClipSwattingBug,
		ClipBreathing, ClipCelebrating,
	)
}

func TestBuildModerateCycle_NoAdjacentDuplicates(t *testing.T) {
	contexts := []Context{
		{IsSweatyWeather: true},
		{IsSleepDeprived: true, HasMetCalorieGoal: true},
		{IsSweatyWeather: true, IsSleepDeprived: true, HasNearbyDengueRisk: true},
		{IsSweatyWeather: true, IsSleepDeprived: true, HasNearbyDengueRisk: true, HasMetCalorieGoal: true},
	}
	for _, ctx := range contexts {
		entries := BuildModerateCycle(ctx)
		for i := 1; i < len(entries); i++ {
			if entries[i].Name == entries[i-1].Name {
				t.Errorf("adjacent duplicate %q at index %d for context %+v", entries[i].Name, i, ctx)
			}
		}
	}
}

func TestBuildModerateCycle_AsleepSkipsAwakeOnlyClips(t *testing.T) {
	ctx := Context{
		SleepMode:           true,
		HasNearbyDengueRisk: true,
		HasMetCalorieGoal:   true,
	}
	entries := BuildModerateCycle(ctx)

	for _, e := range entries {
		if e.Name == ClipSwattingBug || e.Name == ClipCelebrating {
			t.Errorf("awake-only clip %q present while asleep", e.Name)
		}
	}
}

func TestBuildUnhealthyCycle_TierSequence(t *testing.T) {
	ctx := Context{
		RecommendedAnimation: ClipCoughing,
		StressVisualsEnabled: true,
	}
	entries := BuildUnhealthyCycle(ctx)

	// Recommended clip first; coughing deduplicates against the seed.
	assertNames(t, entries, ClipCoughing, ClipBreathing)
}

func TestBuildUnhealthyCycle_RemovesBreathingWithoutStressVisuals(t *testing.T) {
	ctx := Context{
		RecommendedAnimation: ClipRubbingEyes,
		StressVisualsEnabled: false,
	}
	entries := BuildUnhealthyCycle(ctx)

	assertNames(t, entries, ClipRubbingEyes, ClipCoughing)
}

func TestBuildUnhealthyCycle_UpsertKeepsInsertionOrder(t *testing.T) {
	ctx := Context{
		RecommendedAnimation: ClipBreathing,
		StressVisualsEnabled: true,
		IsSweatyWeather:      true,
		IsSleepDeprived:      true,
	}
	entries := BuildUnhealthyCycle(ctx)

	// Breathing was seeded by the recommendation and must keep its first
	// position; supplements append in their fixed order.
	assertNames(t, entries, ClipBreathing, ClipCoughing, ClipWipingSweat, ClipYawning)
}

func TestBuildUnhealthyCycle_NoDuplicateNames(t *testing.T) {
	ctx := Context{
		RecommendedAnimation: ClipWipingSweat,
		StressVisualsEnabled: true,
		IsSweatyWeather:      true,
		HasNearbyDengueRisk:  true,
	}
	entries := BuildUnhealthyCycle(ctx)

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("duplicate entry %q", e.Name)
		}
		seen[e.Name] = true
	}
}

func TestOrderedEntries_UpsertReplacesInPlace(t *testing.T) {
	set := newOrderedEntries()
	set.upsert(Entry{Name: "a", Duration: 1})
	set.upsert(Entry{Name: "b", Duration: 2})
	set.upsert(Entry{Name: "a", Duration: 3})

	got := set.entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Name != "a" || got[0].Duration != 3 {
		t.Errorf("expected a replaced in place with duration 3, got %+v", got[0])
	}
	if got[1].Name != "b" {
		t.Errorf("expected b second, got %+v", got[1])
	}
}

func TestOrderedEntries_RemoveMissingIsNoop(t *testing.T) {
	set := newOrderedEntries()
	set.upsert(Entry{Name: "a"})
	set.remove("missing")

	if got := set.entries(); len(got) != 1 || got[0].Name != "a" {
		t.Errorf("unexpected entries after removing missing name: %+v", got)
	}
}

// assertNames checks the entry names in order.
func assertNames(t *testing.T, entries []Entry, want ...string) {
	t.Helper()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries %v, got %d: %v", len(want), want, len(entries), names(entries))
	}
	for i, w := range want {
		if entries[i].Name != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, entries[i].Name)
		}
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
