// Package event holds the world event catalog and the dispatcher that rolls
// events and encounters after each successful move.
package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// ErrInvalidEvent is returned when an event definition fails validation.
var ErrInvalidEvent = errors.New("invalid event")

// EffectKind selects what an event does to the player.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectGold
	EffectDamage
	EffectHeal
	EffectMana
	EffectConfuse
	EffectScript
)

var effectKindNames = [...]string{
	EffectNone:    "none",
	EffectGold:    "gold",
	EffectDamage:  "damage",
	EffectHeal:    "heal",
	EffectMana:    "mana",
	EffectConfuse: "confuse",
	EffectScript:  "script",
}

func (k EffectKind) String() string {
	if int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return fmt.Sprintf("effect(%d)", k)
}

// MarshalText encodes the kind by name.
func (k EffectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *EffectKind) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range effectKindNames {
		if n == name {
			*k = EffectKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event effect %q", string(b))
}

// Effect is the player-facing consequence of an event.
// Amount is a dice expression ("5", "1d3+1"); Hook names a Lua global.
type Effect struct {
	Kind   EffectKind `yaml:"kind"`
	Amount string     `yaml:"amount,omitempty"`
	Hook   string     `yaml:"hook,omitempty"`
}

// Event is an immutable catalog entry. A nil Effect means the event only
// shows its description.
type Event struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Effect      *Effect `yaml:"effect,omitempty"`
}

// Validate checks the event's fields.
//
// Postcondition: returns nil or an error wrapping ErrInvalidEvent.
func (e Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidEvent)
	}
	if e.Description == "" {
		return fmt.Errorf("%w: %s: description must not be empty", ErrInvalidEvent, e.Name)
	}
	if e.Effect == nil {
		return nil
	}
	switch e.Effect.Kind {
	case EffectNone:
	case EffectScript:
		if e.Effect.Hook == "" {
			return fmt.Errorf("%w: %s: script effect needs a hook", ErrInvalidEvent, e.Name)
		}
	default:
		if _, err := dice.Parse(e.Effect.Amount); err != nil {
			return fmt.Errorf("%w: %s: amount: %v", ErrInvalidEvent, e.Name, err)
		}
	}
	return nil
}

// DefaultEvents returns the built-in event table.
func DefaultEvents() []Event {
	return []Event{
		{
			Name:        "Treasure",
			Description: "You found a hidden stash! +5 gold.",
			Effect:      &Effect{Kind: EffectGold, Amount: "5"},
		},
		{
			Name:        "Trap",
			Description: "A trap! Lose 3 HP.",
			Effect:      &Effect{Kind: EffectDamage, Amount: "3"},
		},
		{
			Name:        "Wandering Merchant",
			Description: "A merchant offers a random item.",
		},
	}
}
