package subsystem

import (
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// WeatherKinds are the possible weather states.
var WeatherKinds = []string{"clear", "rain", "fog", "snow"}

const (
	minWeatherTicks = 300
	maxWeatherTicks = 1200
	minutesPerDay   = 1440
)

// Weather cycles weather states on a random timer and advances a day clock
// by one minute per tick.
type Weather struct {
	roller *dice.Roller
	Kind   string
	Timer  int
	Minute int
}

// NewWeather rolls the initial weather, timer and time of day.
func NewWeather(roller *dice.Roller) *Weather {
	w := &Weather{roller: roller}
	w.reroll()
	w.Minute = roller.Between("time of day", 0, minutesPerDay-1)
	return w
}

func (w *Weather) reroll() {
	w.Kind = WeatherKinds[w.roller.Pick("weather", len(WeatherKinds))]
	w.Timer = w.roller.Between("weather timer", minWeatherTicks, maxWeatherTicks)
}

// Name returns "weather".
func (w *Weather) Name() string { return "weather" }

// Update advances the clock on ticks only.
func (w *Weather) Update(f Frame) string {
	if f.Trigger != TriggerTick {
		return ""
	}
	w.Timer--
	if w.Timer <= 0 {
		w.reroll()
	}
	w.Minute = (w.Minute + 1) % minutesPerDay
	return ""
}

// Phase names the part of the day: night, dawn/dusk or day.
func (w *Weather) Phase() string {
	hour := w.Minute / 60
	switch {
	case hour < 6 || hour > 20:
		return "night"
	case hour < 8 || hour > 18:
		return "dusk"
	default:
		return "day"
	}
}

// Summary reports the weather, the clock and the day phase.
func (w *Weather) Summary() string {
	return fmt.Sprintf("%s %02d:%02d (%s)", w.Kind, w.Minute/60, w.Minute%60, w.Phase())
}
