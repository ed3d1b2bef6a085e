// Package subsystem holds the optional world extensions a session composes
// when their feature flags are set: weather, quests, particles and dungeon
// layouts. Each is driven by frames and reports a one-line summary.
package subsystem

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// Trigger says why a frame was delivered.
type Trigger uint8

const (
	TriggerTick Trigger = iota
	TriggerMove
	TriggerEncounter
)

func (t Trigger) String() string {
	switch t {
	case TriggerMove:
		return "move"
	case TriggerEncounter:
		return "encounter"
	default:
		return "tick"
	}
}

// Frame is the input to one subsystem update.
type Frame struct {
	Trigger Trigger
	Player  *character.Player
	// Size is the world grid's edge length.
	Size int
}

// Subsystem is an optional world extension.
//
// Update returns a message for the player, or "" when there is nothing to say.
type Subsystem interface {
	Name() string
	Update(f Frame) string
	Summary() string
}

// Flags selects which subsystems Build composes.
type Flags struct {
	Dungeon   bool
	Quests    bool
	Weather   bool
	Particles bool
}

// Build composes the enabled subsystems in a fixed order: dungeon, quests,
// weather, particles. A dungeon that cannot fit the grid is skipped with a
// warning.
//
// Precondition: roller and p non-nil.
func Build(flags Flags, size int, p *character.Player, roller *dice.Roller, logger *zap.Logger) []Subsystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	var out []Subsystem
	if flags.Dungeon {
		d, err := NewDungeon(size, roller)
		if err != nil {
			logger.Warn("dungeon subsystem disabled", zap.Int("size", size), zap.Error(err))
		} else {
			out = append(out, d)
		}
	}
	if flags.Quests {
		out = append(out, NewQuests(p, roller, logger))
	}
	if flags.Weather {
		out = append(out, NewWeather(roller))
	}
	if flags.Particles {
		out = append(out, NewParticles(roller))
	}
	return out
}

// Summaries returns each subsystem's summary keyed by name.
func Summaries(subs []Subsystem) map[string]string {
	if len(subs) == 0 {
		return nil
	}
	out := make(map[string]string, len(subs))
	for _, s := range subs {
		out[s.Name()] = s.Summary()
	}
	return out
}
