package anim

import "time"

// Clip identifiers. These match the renderer's asset names.
const (
	ClipBreathing     = "breathing"
	ClipWipingSweat   = "wiping_sweat"
	ClipYawning       = "yawning"
	ClipSwattingBug   = "swatting_bug"
	ClipCelebrating   = "celebrating"
	ClipSleeping      = "sleeping"
	ClipSleepingIdle  = "sleeping_idle"
	ClipCoughing      = "coughing"
	ClipSlumped       = "slumped"
	ClipIdleVariation = "idle_variation"
	ClipRubbingEyes   = "rubbing_eyes"
	ClipLookingAround = "looking_around"
)

// DefaultClipDuration is used for clips with no canonical duration.
const DefaultClipDuration = 6 * time.Second

// clipDurations maps each known clip to its canonical playback length.
var clipDurations = map[string]time.Duration{
	ClipBreathing:     6 * time.Second,
	ClipWipingSweat:   4 * time.Second,
	ClipYawning:       5 * time.Second,
	ClipSwattingBug:   4 * time.Second,
	ClipCelebrating:   5 * time.Second,
	ClipSleeping:      12 * time.Second,
	ClipSleepingIdle:  12 * time.Second,
	ClipCoughing:      4 * time.Second,
	ClipSlumped:       8 * time.Second,
	ClipIdleVariation: 6 * time.Second,
	ClipRubbingEyes:   4 * time.Second,
	ClipLookingAround: 7 * time.Second,
}

// ClipDuration returns the canonical playback duration for a clip.
// Unknown clips get DefaultClipDuration rather than an error.
func ClipDuration(name string) time.Duration {
	if d, ok := clipDurations[name]; ok {
		return d
	}
	return DefaultClipDuration
}

// DefaultIdleClips returns the base idle set used when the host does not
// configure its own. Callers own the returned slice.
func DefaultIdleClips() []string {
	return []string{ClipIdleVariation, ClipLookingAround}
}
