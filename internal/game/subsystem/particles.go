package subsystem

import (
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

const (
	moveLifetime  = 10
	burstSize     = 8
	burstLifetime = 20
	burstMaxSpeed = 2
)

// Particle is a short-lived effect in grid coordinates.
type Particle struct {
	X, Y     int
	VX, VY   int
	Lifetime int
}

// Particles spawns a trail particle per move and a burst per encounter, and
// ages them on ticks.
type Particles struct {
	roller *dice.Roller
	live   []Particle
}

// NewParticles returns an empty particle system.
func NewParticles(roller *dice.Roller) *Particles {
	return &Particles{roller: roller}
}

// Name returns "particles".
func (ps *Particles) Name() string { return "particles" }

// Live returns the particles still alive.
func (ps *Particles) Live() []Particle { return ps.live }

// Update spawns or ages particles depending on the trigger.
func (ps *Particles) Update(f Frame) string {
	switch f.Trigger {
	case TriggerMove:
		ps.live = append(ps.live, Particle{X: f.Player.X, Y: f.Player.Y, VY: -1, Lifetime: moveLifetime})
	case TriggerEncounter:
		for range burstSize {
			ps.live = append(ps.live, Particle{
				X:        f.Player.X,
				Y:        f.Player.Y,
				VX:       ps.roller.Between("particle vx", -burstMaxSpeed, burstMaxSpeed),
				VY:       ps.roller.Between("particle vy", -burstMaxSpeed, burstMaxSpeed),
				Lifetime: burstLifetime,
			})
		}
	case TriggerTick:
		kept := ps.live[:0]
		for _, p := range ps.live {
			p.X += p.VX
			p.Y += p.VY
			p.Lifetime--
			if p.Lifetime > 0 {
				kept = append(kept, p)
			}
		}
		ps.live = kept
	}
	return ""
}

// Summary reports how many particles are live.
func (ps *Particles) Summary() string {
	return fmt.Sprintf("%d particles", len(ps.live))
}
