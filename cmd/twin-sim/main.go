// Command twin-sim plays a scripted day of wellness context changes
// through a local engine and prints every animation decision, for checking
// plan behavior without a server or renderer.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/vitatwin/go-twin/internal/log"
	"github.com/vitatwin/go-twin/pkg/anim"
	"github.com/vitatwin/go-twin/pkg/engine"
)

type step struct {
	label string
	ctx   anim.Context
}

func aqi(v int) *int { return &v }

var scenario = []step{
	{"quiet morning", anim.Context{}},
	{"moderate air, breathing recommended", anim.Context{
		AQI:                  aqi(75),
		RecommendedAnimation: anim.ClipBreathing,
		AQIReason:            "moderate air quality",
	}},
	{"heat arrives", anim.Context{
		AQI:                  aqi(75),
		RecommendedAnimation: anim.ClipBreathing,
		AQIReason:            "moderate air quality",
		IsSweatyWeather:      true,
	}},
	{"air turns unhealthy", anim.Context{
		AQI:                  aqi(150),
		RecommendedAnimation: anim.ClipRubbingEyes,
		AQIReason:            "unhealthy air quality",
		StressVisualsEnabled: true,
		IsSweatyWeather:      true,
	}},
	{"calorie goal met", anim.Context{
		HasMetCalorieGoal: true,
	}},
	{"stressful evening", anim.Context{
		StressLevel:          anim.StressHigh,
		StressVisualsEnabled: true,
		HasMetCalorieGoal:    true,
	}},
	{"bedtime", anim.Context{
		SleepMode: true,
	}},
}

func main() {
	stepDelay := flag.Duration("step-delay", 15*time.Second, "Time spent in each scenario step")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	log.Init(*logLevel)

	start := time.Now()
	eng := engine.New(func(name string, manual bool) {
		if name == "" {
			name = "(idle)"
		}
		fmt.Printf("  %6.1fs  -> %s\n", time.Since(start).Seconds(), name)
	})
	defer eng.Dispose()

	fmt.Printf("twin-sim: %d steps, %v each\n", len(scenario), *stepDelay)
	for _, s := range scenario {
		fmt.Printf("%s\n", s.label)
		eng.Evaluate(s.ctx, true)
		time.Sleep(*stepDelay)
	}

	fmt.Println("deactivating")
	eng.Evaluate(anim.Context{}, false)
}
