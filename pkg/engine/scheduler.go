// Package engine drives the digital twin's animation playback. The Engine
// re-evaluates a context snapshot into a plan, suppresses redundant
// re-application through structural plan equality, and walks cycle plans
// with a single cancellable timer.
package engine

import (
	"sync"
	"time"

	"github.com/vitatwin/go-twin/pkg/anim"
)

// SetAnimationFunc is the engine's only outbound side effect: a request to
// the rendering layer to display a clip. An empty name clears the display
// so the renderer falls back to its own idle behavior. manual marks clips
// chosen by the user rather than the engine.
//
// The callback runs while the engine holds internal locks and must not
// call back into the engine synchronously.
type SetAnimationFunc func(name string, manual bool)

// scheduler walks a cycle's entries round-robin, arming at most one timer
// at any instant. It also owns display deduplication, so a request for the
// clip already on screen never reaches the host.
//
// Timer callbacks carry the generation they were armed under; stop and
// start bump the generation, so a stale fire from a replaced plan is
// discarded without touching state.
type scheduler struct {
	set      SetAnimationFunc
	isActive func() bool

	// after arms the advance timer. Tests swap in a manual trigger.
	after func(time.Duration, func()) *time.Timer

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64
	entries   []anim.Entry
	index     int
	displayed string
}

func newScheduler(set SetAnimationFunc, isActive func() bool) *scheduler {
	return &scheduler{
		set:      set,
		isActive: isActive,
		after:    time.AfterFunc,
	}
}

// Start begins cycling entries at startIndex mod len. Empty entries clear
// the display and leave the scheduler stopped.
func (s *scheduler) Start(entries []anim.Entry, startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if len(entries) == 0 {
		s.showLocked("", false)
		return
	}

	idx := startIndex % len(entries)
	if idx < 0 {
		idx += len(entries)
	}
	s.entries = entries
	s.index = idx
	s.showLocked(entries[idx].Name, false)
	s.armLocked(entries[idx].Duration)
}

// Stop cancels any armed timer. Idempotent.
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Show requests display of a clip, skipping when it is already showing.
func (s *scheduler) Show(name string, manual bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showLocked(name, manual)
}

// SyncDisplayed records a clip the host displayed on its own (a manual
// selection), so later deduplication compares against reality.
func (s *scheduler) SyncDisplayed(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayed = name
}

// Displayed returns the clip most recently requested or synced.
func (s *scheduler) Displayed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayed
}

func (s *scheduler) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *scheduler) showLocked(name string, manual bool) {
	if name == s.displayed {
		return
	}
	s.displayed = name
	s.set(name, manual)
}

func (s *scheduler) armLocked(d time.Duration) {
	gen := s.gen
	s.timer = s.after(d, func() { s.onFire(gen) })
}

func (s *scheduler) onFire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// A newer plan replaced this timer before it fired.
		return
	}
	s.timer = nil

	if !s.isActive() {
		s.stopLocked()
		s.showLocked("", false)
		return
	}

	s.index = (s.index + 1) % len(s.entries)
	s.showLocked(s.entries[s.index].Name, false)
	s.armLocked(s.entries[s.index].Duration)
}
