// Package character defines the player model: vitals, progression, gear,
// spells, and achievements.
package character

import (
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/ruleset"
)

// Starting values for a new player.
const (
	StartingMana      = 5
	StartingExpToNext = 10
	WeakenDuration    = 5
	bonusThreshold    = 3
)

// Player is the single protagonist of a session.
//
// Invariant: Health never exceeds MaxHealth after Heal returns.
// Invariant: Exp < ExpToNext after GainExp returns.
type Player struct {
	X, Y int

	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
	Gold      int

	Level     int
	Exp       int
	ExpToNext int

	SwordLevel  int
	ShieldLevel int
	BootsLevel  int

	// Confused is the number of moves left during which direction may be scrambled.
	Confused int
	// BlockNext negates the next boss counter-attack.
	BlockNext   bool
	BonusPoints int
	// WeakenTurns is the number of encounters left during which enemies hit softer.
	WeakenTurns int

	PotionsUsed     int
	BossesDefeated  int
	EnemiesDefeated int

	Difficulty ruleset.Difficulty

	unlocked     map[int]bool
	achievements map[Achievement]bool
	explored     map[[2]int]bool
}

// New creates a player at (x, y) with full health for the given difficulty.
//
// Precondition: diff must satisfy Validate.
// Postcondition: Health == MaxHealth == diff.MaxHealth; Mana == MaxMana == 5;
// Level == 1; spells 0, 1 and 2 unlocked; (x, y) is explored.
func New(diff ruleset.Difficulty, x, y int) *Player {
	p := &Player{
		X:            x,
		Y:            y,
		Health:       diff.MaxHealth,
		MaxHealth:    diff.MaxHealth,
		Mana:         StartingMana,
		MaxMana:      StartingMana,
		Level:        1,
		ExpToNext:    StartingExpToNext,
		Difficulty:   diff,
		unlocked:     map[int]bool{0: true, 1: true, 2: true},
		achievements: make(map[Achievement]bool),
		explored:     map[[2]int]bool{{x, y}: true},
	}
	return p
}

// Position returns the player's cell.
func (p *Player) Position() (int, int) { return p.X, p.Y }

// MoveTo places the player on (x, y).
func (p *Player) MoveTo(x, y int) { p.X, p.Y = x, y }

// ConfusedTurns returns the remaining confusion counter.
func (p *Player) ConfusedTurns() int { return p.Confused }

// SpendConfusion decrements the confusion counter toward zero.
func (p *Player) SpendConfusion() {
	if p.Confused > 0 {
		p.Confused--
	}
}

// ResistsConfusion reports whether the player owns boots.
func (p *Player) ResistsConfusion() bool { return p.BootsLevel > 0 }

// Alive reports whether Health is above zero.
func (p *Player) Alive() bool { return p.Health > 0 }

// TakeDamage subtracts n from Health unconditionally. Health may go negative.
func (p *Player) TakeDamage(n int) {
	p.Health -= n
}

// Heal restores n health and counts a potion use.
//
// Without the overheal penalty the result is clamped to MaxHealth. With the
// penalty, overshooting MaxHealth clamps and confuses the player for 2-5 moves.
//
// Postcondition: Health <= MaxHealth; PotionsUsed incremented.
func (p *Player) Heal(n int, roller *dice.Roller) {
	p.Health += n
	p.PotionsUsed++
	if p.PotionsUsed >= potionMasterUses {
		p.Unlock(PotionMaster)
	}
	if p.Health <= p.MaxHealth {
		return
	}
	p.Health = p.MaxHealth
	if p.Difficulty.OverhealPenalty {
		p.Confused = roller.Between("overheal confusion", 2, 5)
	}
}

// Confuse sets the confusion counter to at least turns when the difficulty
// enables confusion effects.
//
// Postcondition: returns true iff the counter was applied.
func (p *Player) Confuse(turns int) bool {
	if !p.Difficulty.ConfusionEnabled || turns <= 0 {
		return false
	}
	if turns > p.Confused {
		p.Confused = turns
	}
	return true
}

// RestoreMana adds n mana, capped at MaxMana.
func (p *Player) RestoreMana(n int) {
	p.Mana = min(p.MaxMana, p.Mana+n)
}

// AddGold adds n gold. Gold never drops below zero.
func (p *Player) AddGold(n int) {
	p.Gold = max(0, p.Gold+n)
}

// GainExp adds experience and applies every level-up it pays for. Each
// level raises MaxHealth by 2 and MaxMana by 1, refills both, grows
// ExpToNext by half, and unlocks the next locked spell.
//
// Postcondition: Exp < ExpToNext; returns true iff at least one level was gained.
func (p *Player) GainExp(n int) bool {
	p.Exp += n
	leveled := false
	for p.Exp >= p.ExpToNext {
		p.Exp -= p.ExpToNext
		p.Level++
		p.ExpToNext = p.ExpToNext * 3 / 2
		p.MaxHealth += 2
		p.Health = p.MaxHealth
		p.MaxMana++
		p.Mana = p.MaxMana
		p.unlockNextSpell()
		leveled = true
	}
	return leveled
}

// AddBonus awards a bonus point. The third point resets the counter and
// activates the weaken buff for five encounters.
func (p *Player) AddBonus() {
	p.BonusPoints++
	if p.BonusPoints >= bonusThreshold {
		p.BonusPoints = 0
		p.WeakenTurns = WeakenDuration
	}
}

// Weakened reports whether the weaken buff is active.
func (p *Player) Weakened() bool { return p.WeakenTurns > 0 }

// UpdateWeaken spends one turn of the weaken buff.
//
// Postcondition: WeakenTurns >= 0.
func (p *Player) UpdateWeaken() {
	if p.WeakenTurns > 0 {
		p.WeakenTurns--
	}
}

// Visit marks (x, y) explored. When the explored count reaches walkable the
// Explorer achievement unlocks.
//
// Postcondition: returns true iff Explorer was newly unlocked.
func (p *Player) Visit(x, y, walkable int) bool {
	p.explored[[2]int{x, y}] = true
	if walkable > 0 && len(p.explored) >= walkable {
		return p.Unlock(Explorer)
	}
	return false
}

// ExploredCount returns the number of distinct cells visited.
func (p *Player) ExploredCount() int { return len(p.explored) }

// String returns a short status line.
func (p *Player) String() string {
	return fmt.Sprintf("HP %d/%d  MP %d/%d  Gold %d  Lv %d (%d/%d)",
		p.Health, p.MaxHealth, p.Mana, p.MaxMana, p.Gold, p.Level, p.Exp, p.ExpToNext)
}
