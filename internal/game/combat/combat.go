// Package combat resolves simple enemy encounters and runs boss battles.
package combat

import "errors"

// ErrBattleOver is returned when an action is submitted to a finished battle.
var ErrBattleOver = errors.New("battle is over")

// ActionType identifies what the player does on a boss-battle turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionSpell
	ActionQuit
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSpell:
		return "spell"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Action is one player choice in a boss battle.
type Action struct {
	Type ActionType
	// Spell is the catalog index for ActionSpell.
	Spell int
}

// Outcome is the state of a boss battle.
type Outcome int

const (
	Active Outcome = iota
	Victory
	Defeat
	Aborted
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Terminal reports whether the battle has ended.
func (o Outcome) Terminal() bool { return o != Active }

// RoundEvent records one thing that happened during a round.
type RoundEvent struct {
	ActorName string
	// Damage is the damage dealt by this event, 0 if none.
	Damage    int
	Narrative string
}
