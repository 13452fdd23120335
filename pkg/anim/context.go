// Package anim models the digital twin's animation decisions.
//
// Given an immutable wellness context snapshot, the package selects exactly
// one animation plan: a manual override, an idle fallback, a single clip, or
// a repeating cycle of timed clips. The numeric derivation of the context
// values (health scores, AQI, hydration) happens upstream; this package only
// consumes the resolved signals.
package anim

// StressLevel is the twin's resolved stress tier.
type StressLevel string

const (
	StressNone     StressLevel = "none"
	StressMild     StressLevel = "mild"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

// IsNone reports whether the level is absent or explicitly none.
// Upstream services may omit the field entirely; absence is not an error.
func (s StressLevel) IsNone() bool {
	return s == "" || s == StressNone
}

// Context is a snapshot of the wellness and environment signals the engine
// decides on. It is supplied fresh on every evaluation and never mutated by
// the engine. Empty strings and nil mean "not set", never an error.
type Context struct {
	// ActiveAnimation is the clip currently displayed by the renderer,
	// empty when nothing explicit is showing.
	ActiveAnimation string `json:"active_animation"`

	// IsManualAnimation is true when the user explicitly chose the
	// current animation. The engine defers entirely while set.
	IsManualAnimation bool `json:"is_manual_animation"`

	// SleepMode is true while the twin is asleep.
	SleepMode bool `json:"sleep_mode"`

	// StressLevel is the resolved stress tier.
	StressLevel StressLevel `json:"stress_level"`

	// StressVisualsEnabled gates stress-driven clips.
	StressVisualsEnabled bool `json:"stress_visuals_enabled"`

	// Weather and wellness milestone flags.
	IsSweatyWeather     bool `json:"is_sweaty_weather"`
	IsSleepDeprived     bool `json:"is_sleep_deprived"`
	HasNearbyDengueRisk bool `json:"has_nearby_dengue_risk"`
	HasMetCalorieGoal   bool `json:"has_met_calorie_goal"`

	// RecommendedAnimation is the clip the air-quality collaborator
	// suggests for the current AQI tier, empty when none.
	RecommendedAnimation string `json:"recommended_animation"`

	// AQI is the current air quality index, nil when unknown.
	AQI *int `json:"aqi"`

	// AQIReason is the collaborator's human-readable explanation for the
	// recommendation, carried into the plan for display and logging.
	AQIReason string `json:"aqi_reason"`
}
