package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tilerpg/internal/game/condition"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// Spell errors.
var (
	ErrSpellLocked      = errors.New("spell not unlocked")
	ErrInsufficientMana = errors.New("not enough mana")
	ErrUnknownSpell     = errors.New("unknown spell")
	ErrNoTarget         = errors.New("spell needs a target")
)

// SpellEffect identifies what a spell does when cast.
type SpellEffect uint8

// Spell effects.
const (
	EffectFireball SpellEffect = iota
	EffectHeal
	EffectBlock
	EffectStun
	EffectPoison
	EffectManaRegen
)

// Spell is an entry in the fixed spell catalog.
type Spell struct {
	Name        string
	Cost        int
	Description string
	Effect      SpellEffect
}

// Spells is the fixed catalog, indexed by spell number.
var Spells = []Spell{
	{Name: "Fireball", Cost: 2, Description: "Deal 4-7 damage", Effect: EffectFireball},
	{Name: "Heal", Cost: 2, Description: "Restore 4 HP", Effect: EffectHeal},
	{Name: "Shield Up", Cost: 3, Description: "Block next attack", Effect: EffectBlock},
	{Name: "Stun", Cost: 3, Description: "Stun enemy for 1 turn", Effect: EffectStun},
	{Name: "Poison", Cost: 2, Description: "Poison enemy (2 dmg/turn)", Effect: EffectPoison},
	{Name: "Mana Regen", Cost: 0, Description: "Restore 2 mana", Effect: EffectManaRegen},
}

const (
	fireballMin   = 4
	fireballMax   = 7
	healSpellHP   = 4
	stunTurns     = 1
	poisonTurns   = 3
	manaRegenGain = 2
)

// SpellTarget is the adversary a spell acts on.
type SpellTarget interface {
	TakeDamage(n int)
	ApplyCondition(id string, turns int) error
}

// SpellResult describes a successful cast.
type SpellResult struct {
	Spell   Spell
	Damage  int
	Message string
}

func (e SpellEffect) needsTarget() bool {
	switch e {
	case EffectFireball, EffectStun, EffectPoison:
		return true
	}
	return false
}

// SpellUnlocked reports whether spell index is available.
func (p *Player) SpellUnlocked(index int) bool { return p.unlocked[index] }

// UnlockedSpells returns the unlocked spell indices in ascending order.
func (p *Player) UnlockedSpells() []int {
	out := make([]int, 0, len(p.unlocked))
	for i := range Spells {
		if p.unlocked[i] {
			out = append(out, i)
		}
	}
	return out
}

// UnlockSpell makes spell index castable.
//
// Postcondition: returns ErrUnknownSpell for indices outside the catalog.
func (p *Player) UnlockSpell(index int) error {
	if index < 0 || index >= len(Spells) {
		return fmt.Errorf("%w: %d", ErrUnknownSpell, index)
	}
	p.unlocked[index] = true
	return nil
}

func (p *Player) unlockNextSpell() {
	for i := range Spells {
		if !p.unlocked[i] {
			p.unlocked[i] = true
			return
		}
	}
}

// UseSpell casts spell index against target.
//
// Checks run in order: catalog bounds, unlocked, mana, target. Mana is only
// spent when every check passes.
//
// Precondition: roller non-nil. target may be nil for self-only spells.
// Postcondition: on error no state has changed.
func (p *Player) UseSpell(index int, target SpellTarget, roller *dice.Roller) (SpellResult, error) {
	if index < 0 || index >= len(Spells) {
		return SpellResult{}, fmt.Errorf("%w: %d", ErrUnknownSpell, index)
	}
	spell := Spells[index]
	if !p.unlocked[index] {
		return SpellResult{}, fmt.Errorf("%s: %w", spell.Name, ErrSpellLocked)
	}
	if p.Mana < spell.Cost {
		return SpellResult{}, fmt.Errorf("%s costs %d, have %d: %w", spell.Name, spell.Cost, p.Mana, ErrInsufficientMana)
	}
	if target == nil && spell.Effect.needsTarget() {
		return SpellResult{}, fmt.Errorf("%s: %w", spell.Name, ErrNoTarget)
	}

	p.Mana -= spell.Cost
	res := SpellResult{Spell: spell}
	switch spell.Effect {
	case EffectFireball:
		res.Damage = roller.Between("fireball", fireballMin, fireballMax)
		target.TakeDamage(res.Damage)
		res.Message = fmt.Sprintf("You cast Fireball! %d damage.", res.Damage)
	case EffectHeal:
		p.Heal(healSpellHP, roller)
		res.Message = fmt.Sprintf("You cast Heal! +%d HP.", healSpellHP)
	case EffectBlock:
		p.BlockNext = true
		res.Message = "You cast Shield Up! Block next attack."
	case EffectStun:
		if err := target.ApplyCondition(condition.Stunned, stunTurns); err != nil {
			p.Mana += spell.Cost
			return SpellResult{}, fmt.Errorf("applying stun: %w", err)
		}
		res.Message = "You cast Stun! Enemy is stunned."
	case EffectPoison:
		if err := target.ApplyCondition(condition.Poisoned, poisonTurns); err != nil {
			p.Mana += spell.Cost
			return SpellResult{}, fmt.Errorf("applying poison: %w", err)
		}
		res.Message = "You cast Poison! Enemy is poisoned."
	case EffectManaRegen:
		p.RestoreMana(manaRegenGain)
		res.Message = fmt.Sprintf("You cast Mana Regen! +%d Mana.", manaRegenGain)
	}
	return res, nil
}
