// Package npc provides adversary definitions: the enemy type table, live
// encounter enemies, the boss catalog, and live bosses.
package npc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/tilerpg/internal/game/condition"
)

// Effect is the closed set of special traits an enemy type may carry.
// Traits are labels only; none of them alters combat.
type Effect uint8

// Enemy traits.
const (
	EffectNone Effect = iota
	EffectRage
	EffectSplit
	EffectCurse
)

var effectNames = [...]string{
	EffectNone:  "none",
	EffectRage:  "rage",
	EffectSplit: "split",
	EffectCurse: "curse",
}

// String returns the trait name.
func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// ParseEffect returns the Effect named s. The empty string is EffectNone.
func ParseEffect(s string) (Effect, error) {
	if s == "" {
		return EffectNone, nil
	}
	for i, n := range effectNames {
		if n == s {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("unknown enemy effect %q", s)
}

// MarshalText encodes the effect by name.
func (e Effect) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText decodes an effect name.
func (e *Effect) UnmarshalText(b []byte) error {
	v, err := ParseEffect(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// EnemyType is an entry in the enemy type table.
type EnemyType struct {
	Name   string `yaml:"name"`
	HPMod  int    `yaml:"hp_mod"`
	DmgMod int    `yaml:"dmg_mod"`
	Effect Effect `yaml:"effect"`
}

// Validate checks that the type has a name.
func (t EnemyType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("enemy type: name must not be empty")
	}
	return nil
}

// DefaultEnemyTypes returns the built-in enemy table.
func DefaultEnemyTypes() []EnemyType {
	return []EnemyType{
		{Name: "Goblin", HPMod: 0, DmgMod: 0, Effect: EffectNone},
		{Name: "Orc", HPMod: 2, DmgMod: 1, Effect: EffectRage},
		{Name: "Slime", HPMod: -2, DmgMod: -1, Effect: EffectSplit},
		{Name: "Wraith", HPMod: 0, DmgMod: 0, Effect: EffectCurse},
	}
}

// Enemy is a short-lived adversary created for a single encounter.
type Enemy struct {
	ID         string
	Type       EnemyType
	Strength   int
	Health     int
	Conditions *condition.ActiveSet
}

// NewEnemy creates an enemy of type t from a base strength roll.
//
// Strength is base plus the type's damage modifier and may be zero or negative.
// Health is max(1, 2*base + hp_mod) scaled by healthScale, floored, minimum 1.
//
// Precondition: healthScale > 0.
// Postcondition: Health >= 1; ID is a fresh UUID.
func NewEnemy(t EnemyType, base int, healthScale float64) *Enemy {
	hp := max(1, 2*base+t.HPMod)
	hp = max(1, int(float64(hp)*healthScale))
	return &Enemy{
		ID:         uuid.New().String(),
		Type:       t,
		Strength:   base + t.DmgMod,
		Health:     hp,
		Conditions: condition.NewActiveSet(),
	}
}

// Name returns the enemy's type name.
func (e *Enemy) Name() string { return e.Type.Name }

// AttackCeiling returns the upper bound of the enemy's damage roll, never below 1.
func (e *Enemy) AttackCeiling() int { return max(1, e.Strength) }
