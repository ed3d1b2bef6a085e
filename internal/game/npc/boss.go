package npc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/tilerpg/internal/game/condition"
)

// AbilityKind is the special attack a boss triggers when its cooldown expires.
type AbilityKind uint8

// Boss abilities.
const (
	// AbilityMultiStrike hits twice: a full roll and half of it.
	AbilityMultiStrike AbilityKind = iota
	// AbilityShield halves the boss's next counter-attack.
	AbilityShield
	// AbilityBreath is a single heavy hit.
	AbilityBreath
)

var abilityNames = [...]string{
	AbilityMultiStrike: "multi_strike",
	AbilityShield:      "shield",
	AbilityBreath:      "breath",
}

// String returns the ability name.
func (a AbilityKind) String() string {
	if int(a) < len(abilityNames) {
		return abilityNames[a]
	}
	return fmt.Sprintf("AbilityKind(%d)", uint8(a))
}

// MarshalText encodes the ability by name.
func (a AbilityKind) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes an ability name.
func (a *AbilityKind) UnmarshalText(b []byte) error {
	for i, n := range abilityNames {
		if n == string(b) {
			*a = AbilityKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown boss ability %q", string(b))
}

// AbilityCooldown is the number of rounds between boss abilities.
const AbilityCooldown = 3

// BossTemplate is an entry in the boss catalog.
type BossTemplate struct {
	Name    string      `yaml:"name"`
	Ability AbilityKind `yaml:"ability"`
	// Health and Strength are the defaults used when a caller does not
	// supply its own.
	Health   int `yaml:"health"`
	Strength int `yaml:"strength"`
}

// Validate checks the template invariants.
func (t BossTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("boss: name must not be empty")
	}
	if t.Health < 1 {
		return fmt.Errorf("boss %q: health must be >= 1", t.Name)
	}
	if t.Strength < 0 {
		return fmt.Errorf("boss %q: strength must be >= 0", t.Name)
	}
	return nil
}

// DefaultBosses returns the built-in boss catalog.
func DefaultBosses() []BossTemplate {
	return []BossTemplate{
		{Name: "Dread Hydra", Ability: AbilityMultiStrike, Health: 10, Strength: 1},
		{Name: "Shadow Golem", Ability: AbilityShield, Health: 15, Strength: 2},
		{Name: "Chaos Drake", Ability: AbilityBreath, Health: 20, Strength: 3},
	}
}

// Boss is a live boss inside a battle.
//
// Invariant: 0 < AbilityCooldown <= 3 between rounds.
type Boss struct {
	ID              string
	Name            string
	Ability         AbilityKind
	CurrentHealth   int
	MaxHealth       int
	Strength        int
	AbilityCooldown int
	// Shielded is set by AbilityShield and consumed by the next counter-attack.
	Shielded   bool
	Conditions *condition.ActiveSet

	registry *condition.Registry
}

// NewBoss creates a boss from t with explicit strength and health.
//
// Precondition: health >= 1; reg non-nil.
// Postcondition: CurrentHealth == MaxHealth == health; AbilityCooldown == 3.
func NewBoss(t BossTemplate, strength, health int, reg *condition.Registry) *Boss {
	return &Boss{
		ID:              uuid.New().String(),
		Name:            t.Name,
		Ability:         t.Ability,
		CurrentHealth:   health,
		MaxHealth:       health,
		Strength:        strength,
		AbilityCooldown: AbilityCooldown,
		Conditions:      condition.NewActiveSet(),
		registry:        reg,
	}
}

// Scale multiplies v by f and rounds half away from zero, never below 1.
func Scale(v int, f float64) int {
	return max(1, int(math.Round(float64(v)*f)))
}

// TakeDamage subtracts n from CurrentHealth. Health may go negative.
func (b *Boss) TakeDamage(n int) { b.CurrentHealth -= n }

// Alive reports whether CurrentHealth is above zero.
func (b *Boss) Alive() bool { return b.CurrentHealth > 0 }

// ApplyCondition applies the registered condition id for turns rounds.
//
// Postcondition: returns an error when id is not registered.
func (b *Boss) ApplyCondition(id string, turns int) error {
	def, ok := b.registry.Get(id)
	if !ok {
		return fmt.Errorf("boss %q: unknown condition %q", b.Name, id)
	}
	return b.Conditions.Apply(def, 1, turns)
}
